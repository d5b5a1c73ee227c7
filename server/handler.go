package server

import (
	"context"
	"godict/database"
	"godict/lib/logger"
	"godict/lib/sync/atomic"
	"godict/resp/connection"
	"godict/resp/parser"
	"godict/resp/protocol"
	"io"
	"net"
	"strings"
	"sync"
)

var syntaxErrBytes = []byte("-ERR syntax error\r\n")

// Handler 在一条 TCP 连接上解析命令并交给 database 执行
type Handler struct {
	activeConn sync.Map
	db         *database.DB
	closing    atomic.Boolean
}

func NewHandler(db *database.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Handle(_ context.Context, conn net.Conn) {
	// 关闭过程中拒绝建立新连接
	if h.closing.Get() {
		_ = conn.Close()
		return
	}
	c := connection.NewConn(conn)
	h.activeConn.Store(c, struct{}{})
	logger.Infof("Connection accepted: id=%s addr=%s", c.ID(), c.RemoteAddr())

	ch := parser.ParseStream(conn)
	for payload := range ch {
		if payload.Err != nil {
			if payload.Err == io.EOF ||
				payload.Err == io.ErrUnexpectedEOF ||
				strings.Contains(payload.Err.Error(), "use of closed network connection") {
				h.closeClient(c)
				logger.Infof("Connection closed: id=%s", c.ID())
				return
			}
			// 协议错误不断开连接，回复后继续解析
			errReply := protocol.NewErrorReply([]byte("ERR " + payload.Err.Error()))
			if err := c.Write(errReply.GetBytes()); err != nil {
				h.closeClient(c)
				logger.Infof("Connection closed: id=%s", c.ID())
				return
			}
			continue
		}
		if payload.Data == nil {
			logger.Warn("empty payload")
			continue
		}
		args, ok := protocol.FetchArrayArgs(payload.Data)
		if !ok {
			_ = c.Write(syntaxErrBytes)
			continue
		}
		result := h.db.Exec(c, args)
		if result == nil {
			_ = c.Write(syntaxErrBytes)
			continue
		}
		_ = c.Write(result.GetBytes())
	}
}

func (h *Handler) closeClient(c *connection.Conn) {
	_ = c.Close()
	h.db.AfterClientClose(c)
	h.activeConn.Delete(c)
}

func (h *Handler) Close() error {
	logger.Info("Handler shutting down...")
	h.closing.Set(true)
	h.activeConn.Range(func(key, _ any) bool {
		_ = key.(*connection.Conn).Close()
		return true
	})
	h.db.Close()
	return nil
}
