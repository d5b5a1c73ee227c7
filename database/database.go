package database

import (
	"godict/datastruct/dict"
	"godict/interface/resp"
	"godict/lib/logger"
	"godict/resp/protocol"
	"godict/sequence"
	"godict/storage"
	"runtime/debug"
)

// ExecFunc 执行一条命令，args 不含命令名
type ExecFunc func(db *DB, args [][]byte) resp.Reply

// DB 把一个串行化的字典和一个对象 ID 序列绑定在一起，
// 对外提供命令表驱动的执行入口
type DB struct {
	m   *dict.SyncDict
	ids *sequence.Generator
}

// NewDB 创建数据库实例。sizeHint 是字典的初始容量提示，
// 0 表示使用默认下限。
func NewDB(sizeHint int, store storage.RowStore) *DB {
	return &DB{
		m:   dict.NewSyncDict(sizeHint),
		ids: sequence.NewGenerator(store),
	}
}

// Exec 执行一条命令行。未知命令和参数个数错误都以错误回复返回，
// 执行过程中的意外 panic 被拦截并记录
func (db *DB) Exec(c resp.Connection, line resp.Line) (result resp.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logger.Warn("exec panic:", err, string(debug.Stack()))
			result = protocol.NewErrorReply([]byte("ERR internal error"))
		}
	}()
	cmdName := string(line.CommandName())
	cmd, ok := cmdMap[cmdName]
	if !ok {
		return protocol.UnknownCommandErrorReply(line.CommandName())
	}
	if invalidArity(len(line), cmd) {
		return protocol.ArgumentCountErrorReply(line.CommandName())
	}
	return cmd.executor(db, line.CommandContent())
}

// AfterClientClose 在一条连接关闭后做清理，目前没有连接级状态
func (db *DB) AfterClientClose(c resp.Connection) {
}

// Close 销毁字典，之后 DB 不可再使用
func (db *DB) Close() {
	db.m.Destroy()
}
