package storage

import (
	"fmt"
	"sync"
)

// MemStore 把所有表保存在内存里，用互斥锁保证并发安全
type MemStore struct {
	mutex  sync.Mutex
	tables map[string][]Row
}

func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string][]Row)}
}

// RowCount 返回表中的行数，表不存在时视为空表
func (s *MemStore) RowCount(table string) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.tables[table]), nil
}

func (s *MemStore) ReadRow(index int, table string) (Row, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	rows := s.tables[table]
	if index < 0 || index >= len(rows) {
		return nil, fmt.Errorf("row %d of table %s: %w", index, table, ErrNoSuchRow)
	}
	return rows[index], nil
}

func (s *MemStore) InsertRow(b *RowBuilder) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	row := make(Row, len(b.fields))
	copy(row, b.fields)
	s.tables[b.table] = append(s.tables[b.table], row)
	return nil
}

func (s *MemStore) UpdateRow(b *RowBuilder) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	updated := 0
	for _, row := range s.tables[b.table] {
		if !matchConstraints(row, b.fields) {
			continue
		}
		applyValues(row, b.fields)
		updated++
	}
	if updated == 0 {
		return fmt.Errorf("update table %s: %w", b.table, ErrNoSuchRow)
	}
	return nil
}

// matchConstraints 检查一行是否满足 builder 中所有的约束字段
func matchConstraints(row Row, fields []Field) bool {
	for _, f := range fields {
		if f.Mode != SearchConstraint {
			continue
		}
		found := false
		for _, rf := range row {
			if rf.Name == f.Name && rf.Value == f.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// applyValues 把 builder 中的新值字段写进一行
func applyValues(row Row, fields []Field) {
	for _, f := range fields {
		if f.Mode != NewValue {
			continue
		}
		for i := range row {
			if row[i].Name == f.Name {
				row[i].Value = f.Value
				break
			}
		}
	}
}
