package sequence

import (
	"godict/storage"
	"sync"
)

const (
	tableName  = "ak_sequence"
	recordName = "objectID"
	startValue = 100
)

// 序列记录中各字段的位置
const (
	objIDField = iota
	nameField
	currentValueField
	incrementField
)

// Generator 基于行存储中的单条序列记录生成对象 ID。
// 记录存在时读出 current_value，加上记录里的步长后用约束更新写回；
// 记录不存在时先初始化再返回起始值。记录不存在不是错误。
type Generator struct {
	mutex sync.Mutex
	store storage.RowStore
}

func NewGenerator(store storage.RowStore) *Generator {
	return &Generator{store: store}
}

// NextID 返回下一个对象 ID。持久化失败时返回错误，不做重试。
func (g *Generator) NextID() (int, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	n, err := g.store.RowCount(tableName)
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return g.initialize()
	}
	row, err := g.store.ReadRow(0, tableName)
	if err != nil {
		return 0, err
	}
	current, err := row.IntAt(currentValueField)
	if err != nil {
		return 0, err
	}
	increment, err := row.IntAt(incrementField)
	if err != nil {
		return 0, err
	}
	current += increment
	b := storage.NewRowBuilder(tableName)
	b.AddField("obj_id", 0, storage.SearchConstraint)
	b.AddField("current_value", current, storage.NewValue)
	if err := g.store.UpdateRow(b); err != nil {
		return 0, err
	}
	return current, nil
}

// initialize 写入初始的序列记录并返回起始值
func (g *Generator) initialize() (int, error) {
	b := storage.NewRowBuilder(tableName)
	b.AddField("obj_id", 0, storage.NewValue)
	b.AddField("name", recordName, storage.NewValue)
	b.AddField("current_value", startValue, storage.NewValue)
	b.AddField("increment", 1, storage.NewValue)
	if err := g.store.InsertRow(b); err != nil {
		return 0, err
	}
	return startValue, nil
}
