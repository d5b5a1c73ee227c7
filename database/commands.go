package database

import (
	"bytes"
	"godict/datastruct/dict"
	"godict/interface/resp"
	"godict/resp/protocol"
)

func execPing(db *DB, args [][]byte) resp.Reply {
	return protocol.PongReply()
}

// execSet 写入键值对。SET key 不带 value 表示键存在但没有值
func execSet(db *DB, args [][]byte) resp.Reply {
	if len(args) > 2 {
		return protocol.ArgumentCountErrorReply([]byte("set"))
	}
	var val []byte
	if len(args) == 2 {
		val = args[1]
	}
	if err := db.m.Set(string(args[0]), val); err != nil {
		return protocol.NewErrorReply([]byte("ERR " + err.Error()))
	}
	return protocol.OkReply()
}

// execGet 查找键对应的值。键缺失与键存在但没有值都回复 null bulk，
// 两者对客户端来说无法区分
func execGet(db *DB, args [][]byte) resp.Reply {
	val := db.m.Get(string(args[0]), nil)
	if val == nil {
		return protocol.NullBulkStringReply()
	}
	return protocol.BulkStringReply(val)
}

// execUnset 删除键，键不存在时同样回复 OK
func execUnset(db *DB, args [][]byte) resp.Reply {
	db.m.Unset(string(args[0]))
	return protocol.OkReply()
}

// execDump 把字典的全部内容按槽位顺序导出为一段文本
func execDump(db *DB, args [][]byte) resp.Reply {
	var buf bytes.Buffer
	db.m.Dump(&buf)
	return protocol.BulkStringReply(buf.Bytes())
}

func execHash(db *DB, args [][]byte) resp.Reply {
	return protocol.IntReply(int64(dict.Hash(string(args[0]))))
}

func execCount(db *DB, args [][]byte) resp.Reply {
	return protocol.IntReply(int64(db.m.Len()))
}

// execNewID 从序列生成器取下一个对象 ID
func execNewID(db *DB, args [][]byte) resp.Reply {
	id, err := db.ids.NextID()
	if err != nil {
		return protocol.NewErrorReply([]byte("ERR " + err.Error()))
	}
	return protocol.IntReply(int64(id))
}

func init() {
	registerCommand("ping", execPing, 1)
	registerCommand("set", execSet, -2)
	registerCommand("get", execGet, 2)
	registerCommand("unset", execUnset, 2)
	registerCommand("dump", execDump, 1)
	registerCommand("hash", execHash, 2)
	registerCommand("count", execCount, 1)
	registerCommand("newid", execNewID, 1)
}
