package dict

import (
	"io"
	"sync"
)

// SyncDict 用一把互斥锁把对 Dict 的所有操作串行化。
// Dict 内部状态的修改不是原子的，所以并发访问必须整体加锁，
// 而不能只保护单个步骤。
type SyncDict struct {
	mutex sync.Mutex
	d     *Dict
}

func NewSyncDict(sizeHint int) *SyncDict {
	return &SyncDict{d: NewDict(sizeHint)}
}

func (m *SyncDict) Get(key string, def []byte) []byte {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.d.Get(key, def)
}

func (m *SyncDict) Set(key string, val []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.d.Set(key, val)
}

func (m *SyncDict) Unset(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.d.Unset(key)
}

func (m *SyncDict) Dump(w io.Writer) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.d.Dump(w)
}

func (m *SyncDict) Destroy() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.d.Destroy()
}

func (m *SyncDict) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.d.Len()
}

func (m *SyncDict) Cap() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.d.Cap()
}
