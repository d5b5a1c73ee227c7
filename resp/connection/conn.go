package connection

import (
	"godict/lib/sync/wait"
	"net"
	"time"

	"github.com/google/uuid"
)

// Conn 是服务端持有的一条客户端连接
type Conn struct {
	conn         net.Conn
	waitingReply wait.Wait
	id           string
}

func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		id:   uuid.NewString(),
	}
}

// ID 返回连接的唯一标识，用于日志
func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close 等待正在写出的回复完成后关闭连接
func (c *Conn) Close() error {
	c.waitingReply.WaitWithTimeout(10 * time.Second)
	return c.conn.Close()
}

func (c *Conn) Write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	c.waitingReply.Add(1)
	defer c.waitingReply.Done()
	_, err := c.conn.Write(b)
	return err
}
