package resp

import (
	"bytes"
	"net"
)

// Line 是客户端发来的一条命令，第一个元素是命令名
type Line [][]byte

// Connection 是服务端视角下一条客户端连接的抽象
type Connection interface {
	Write([]byte) error
	ID() string
	RemoteAddr() net.Addr
	Close() error
}

func (l Line) CommandName() []byte {
	return bytes.ToLower(l[0])
}

func (l Line) CommandContent() [][]byte {
	return l[1:]
}
