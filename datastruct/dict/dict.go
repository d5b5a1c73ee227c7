package dict

import (
	"errors"
	"fmt"
	"io"
)

// minCapacity 是字典槽位数量的下限，构造时不足会被补齐
const minCapacity = 128

// undefMark 是 Dump 输出中表示“键存在但没有值”的标记
const undefMark = "UNDEF"

var (
	ErrNilDict   = errors.New("nil dictionary")
	ErrDestroyed = errors.New("dictionary destroyed")
)

// slot 是一个槽位，occupied 为 false 时槽位为空
type slot struct {
	key      string
	val      []byte
	hash     uint32
	occupied bool
}

// Dict 是 string 到 string 的关联容器，用于保存配置项之类的键值对。
// 值可以为空（nil），这与槽位为空是两回事：前者表示键存在但没有值。
// Dict 不是并发安全的，多个 goroutine 访问时应当使用 SyncDict。
type Dict struct {
	slots []slot
	count int
}

// Hash 计算 key 的哈希值。
// 逐字节累加并混淆，所有运算都在 uint32 上回绕，空串的哈希值为 0。
// 哈希相等不代表键相等，查找时必须再逐字节比较键本身。
func Hash(key string) uint32 {
	var hash uint32
	// 此处不用 for range 是因为不应考虑字符而是只考虑字节
	for i := 0; i < len(key); i++ {
		hash += uint32(key[i])
		hash += hash << 10
		hash ^= hash >> 6
	}
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash
}

// NewDict 创建一个字典，sizeHint 是预估的条目数量。
// 不知道条目数量时传 0 即可，容量不会低于 minCapacity。
func NewDict(sizeHint int) *Dict {
	if sizeHint < minCapacity {
		sizeHint = minCapacity
	}
	return &Dict{slots: make([]slot, sizeHint)}
}

// Get 查找 key 对应的值，找不到时返回 def。
// 返回的切片归字典所有，调用方不应该修改或长期持有它。
// 注意键存在但值为空时同样返回 nil，调用方无法区分这两种情况。
func (d *Dict) Get(key string, def []byte) []byte {
	if d == nil || d.slots == nil {
		return def
	}
	hash := Hash(key)
	for i := range d.slots {
		s := &d.slots[i]
		if !s.occupied || s.hash != hash {
			continue
		}
		// 哈希相同再比较键本身，避免碰撞
		if s.key == key {
			return s.val
		}
	}
	return def
}

// Set 写入一个键值对。键已存在时替换原值，count 不变；
// 否则插入新条目，容量不足时槽位数量翻倍。
// val 可以为 nil，表示键存在但没有值。
func (d *Dict) Set(key string, val []byte) error {
	if d == nil {
		return ErrNilDict
	}
	if d.slots == nil {
		return ErrDestroyed
	}
	hash := Hash(key)
	if d.count > 0 {
		for i := range d.slots {
			s := &d.slots[i]
			if s.occupied && s.hash == hash && s.key == key {
				s.val = copyValue(val)
				return nil
			}
		}
	}
	if d.count == len(d.slots) {
		// 翻倍扩容，旧槽位原样保留，不重新散列
		grown := make([]slot, 2*len(d.slots))
		copy(grown, d.slots)
		d.slots = grown
	}
	// 从 count 开始找第一个空槽位，到达末尾时回绕。
	// 此时 count < len(slots)，循环一定会终止。
	i := d.count
	for d.slots[i].occupied {
		if i++; i == len(d.slots) {
			i = 0
		}
	}
	d.slots[i] = slot{key: key, val: copyValue(val), hash: hash, occupied: true}
	d.count++
	return nil
}

// Unset 删除 key 对应的条目，键不存在时什么都不做。容量不会收缩。
func (d *Dict) Unset(key string) {
	if d == nil || d.slots == nil {
		return
	}
	hash := Hash(key)
	for i := range d.slots {
		s := &d.slots[i]
		if s.occupied && s.hash == hash && s.key == key {
			*s = slot{}
			d.count--
			return
		}
	}
}

// Dump 按槽位顺序把所有条目写进 w，每行一条。
// 条目顺序与插入顺序无关。字典为空时只输出一行提示。
func (d *Dict) Dump(w io.Writer) {
	if d == nil || w == nil {
		return
	}
	if d.count < 1 {
		_, _ = fmt.Fprintf(w, "empty dictionary\n")
		return
	}
	for i := range d.slots {
		s := &d.slots[i]
		if !s.occupied {
			continue
		}
		v := undefMark
		if s.val != nil {
			v = string(s.val)
		}
		_, _ = fmt.Fprintf(w, "%20s\t[%s]\n", s.key, v)
	}
}

// Destroy 释放所有条目和底层存储，之后字典不可再使用。
// 对 nil 调用是无害的。
func (d *Dict) Destroy() {
	if d == nil {
		return
	}
	d.slots = nil
	d.count = 0
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return d.count
}

func (d *Dict) Cap() int {
	if d == nil {
		return 0
	}
	return len(d.slots)
}

// copyValue 复制 val，保证字典独占所有权；nil 原样保留
func copyValue(val []byte) []byte {
	if val == nil {
		return nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp
}
