package storage

import (
	"errors"
	"fmt"
)

// FieldMode 决定 RowBuilder 中一个字段在更新时扮演的角色
type FieldMode int

const (
	// NewValue 表示该字段是要写入的新值
	NewValue FieldMode = iota
	// SearchConstraint 表示该字段用于定位要更新的行
	SearchConstraint
)

var ErrNoSuchRow = errors.New("no such row")

// Field 是一行记录中的一个字段
type Field struct {
	Name  string
	Value any
	Mode  FieldMode
}

// Row 是一行记录，字段按位置访问
type Row []Field

// IntAt 按位置取出整型字段
func (r Row) IntAt(index int) (int, error) {
	if index < 0 || index >= len(r) {
		return 0, fmt.Errorf("field index %d out of range", index)
	}
	v, ok := r[index].Value.(int)
	if !ok {
		return 0, fmt.Errorf("field %s is not an int", r[index].Name)
	}
	return v, nil
}

// StringAt 按位置取出字符串字段
func (r Row) StringAt(index int) (string, error) {
	if index < 0 || index >= len(r) {
		return "", fmt.Errorf("field index %d out of range", index)
	}
	v, ok := r[index].Value.(string)
	if !ok {
		return "", fmt.Errorf("field %s is not a string", r[index].Name)
	}
	return v, nil
}

// RowStore 是面向行的表存储服务的抽象
type RowStore interface {
	RowCount(table string) (int, error)
	ReadRow(index int, table string) (Row, error)
	InsertRow(b *RowBuilder) error
	// UpdateRow 用 SearchConstraint 字段定位行，写入 NewValue 字段；
	// 没有任何行被命中时返回 ErrNoSuchRow
	UpdateRow(b *RowBuilder) error
}

// RowBuilder 逐个字段地积累一行数据
type RowBuilder struct {
	table  string
	fields []Field
}

func NewRowBuilder(table string) *RowBuilder {
	return &RowBuilder{table: table}
}

func (b *RowBuilder) AddField(name string, value any, mode FieldMode) {
	b.fields = append(b.fields, Field{Name: name, Value: value, Mode: mode})
}

func (b *RowBuilder) Clear() {
	b.fields = nil
}
