package client

import (
	"errors"
	"fmt"
	"godict/interface/resp"
	"godict/lib/sync/atomic"
	"godict/lib/utils"
	"godict/resp/parser"
	"godict/resp/protocol"
	"net"
	"sync"
	"time"
)

const (
	maxInflight  = 256
	replyTimeout = 3 * time.Second
)

// ErrClosed 在连接关闭之后继续使用客户端时返回
var ErrClosed = errors.New("client closed")

// call 是一条已写出的命令，回复按先进先出的顺序与之配对
type call struct {
	reply resp.Reply
	err   error
	done  chan struct{}
}

// Client 是带流水线的字典客户端。写出和入队在同一把锁下完成，
// 读协程把到达的回复依次交还给队首的等待者。
type Client struct {
	conn     net.Conn
	mutex    sync.Mutex
	inflight chan *call
	closing  atomic.Boolean
	readDone chan struct{}
}

// NewClient 建立连接并启动读协程
func NewClient(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn:     conn,
		inflight: make(chan *call, maxInflight),
		readDone: make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Close 关闭连接并等待读协程退出，所有在途命令以 ErrClosed 结束。
// 重复调用是无害的。
func (c *Client) Close() {
	c.closing.Set(true)
	_ = c.conn.Close()
	<-c.readDone
}

func (c *Client) readLoop() {
	defer close(c.readDone)
	ch := parser.ParseStream(c.conn)
	for payload := range ch {
		if payload.Err != nil {
			break
		}
		select {
		case pending := <-c.inflight:
			pending.reply = payload.Data
			close(pending.done)
		default:
			// 没有等待者的回复直接丢弃
		}
	}
	c.closing.Set(true)
	c.failPending()
}

// failPending 让所有还在排队的命令立刻出错返回
func (c *Client) failPending() {
	for {
		select {
		case pending := <-c.inflight:
			pending.err = ErrClosed
			close(pending.done)
		default:
			return
		}
	}
}

func (c *Client) send(line resp.Line) (resp.Reply, error) {
	if c.closing.Get() {
		return nil, ErrClosed
	}
	pending := &call{done: make(chan struct{})}
	c.mutex.Lock()
	c.inflight <- pending
	_, err := c.conn.Write(protocol.ArrayReply(line).GetBytes())
	c.mutex.Unlock()
	if err != nil {
		// 写失败说明连接已不可用
		c.Close()
		return nil, err
	}
	select {
	case <-pending.done:
	case <-time.After(replyTimeout):
		return nil, errors.New("server time out")
	}
	if pending.err != nil {
		return nil, pending.err
	}
	return pending.reply, nil
}

// exec 发送一条命令，把服务器的错误回复转换成 error
func (c *Client) exec(args ...string) (resp.Reply, error) {
	reply, err := c.send(utils.StringsToLine(args...))
	if err != nil {
		return nil, err
	}
	if errReply, ok := reply.(resp.ErrorReply); ok {
		return nil, errors.New(errReply.Error())
	}
	return reply, nil
}

func unexpectedReply(reply resp.Reply) error {
	return fmt.Errorf("unexpected reply: %q", reply.GetBytes())
}

// Ping 确认连接可用
func (c *Client) Ping() error {
	reply, err := c.exec("PING")
	if err != nil {
		return err
	}
	if status, ok := protocol.FetchStatus(reply); !ok || string(status) != "PONG" {
		return unexpectedReply(reply)
	}
	return nil
}

// Set 写入一个键值对。value 为 nil 时只登记键本身，不携带值。
func (c *Client) Set(key string, value []byte) error {
	var reply resp.Reply
	var err error
	if value == nil {
		reply, err = c.exec("SET", key)
	} else {
		reply, err = c.exec("SET", key, string(value))
	}
	if err != nil {
		return err
	}
	if !protocol.CheckOKReply(reply) {
		return unexpectedReply(reply)
	}
	return nil
}

// Get 读取键的值。键不存在或者键没有携带值时 ok 为 false。
func (c *Client) Get(key string) (value []byte, ok bool, err error) {
	reply, err := c.exec("GET", key)
	if err != nil {
		return nil, false, err
	}
	if protocol.CheckNullBulkReply(reply) {
		return nil, false, nil
	}
	v, isBulk := protocol.FetchBulkString(reply)
	if !isBulk {
		return nil, false, unexpectedReply(reply)
	}
	return v, true, nil
}

// Unset 删除键，键不存在时同样视为成功
func (c *Client) Unset(key string) error {
	reply, err := c.exec("UNSET", key)
	if err != nil {
		return err
	}
	if !protocol.CheckOKReply(reply) {
		return unexpectedReply(reply)
	}
	return nil
}

// Hash 返回键的散列值
func (c *Client) Hash(key string) (uint32, error) {
	reply, err := c.exec("HASH", key)
	if err != nil {
		return 0, err
	}
	code, ok := protocol.FetchCode(reply)
	if !ok {
		return 0, unexpectedReply(reply)
	}
	return uint32(code), nil
}

// Count 返回字典中键的数量
func (c *Client) Count() (int, error) {
	reply, err := c.exec("COUNT")
	if err != nil {
		return 0, err
	}
	code, ok := protocol.FetchCode(reply)
	if !ok {
		return 0, unexpectedReply(reply)
	}
	return int(code), nil
}

// NextID 申请下一个对象编号
func (c *Client) NextID() (int64, error) {
	reply, err := c.exec("NEWID")
	if err != nil {
		return 0, err
	}
	code, ok := protocol.FetchCode(reply)
	if !ok {
		return 0, unexpectedReply(reply)
	}
	return code, nil
}

// Dump 返回服务器端字典内容的文本快照
func (c *Client) Dump() (string, error) {
	reply, err := c.exec("DUMP")
	if err != nil {
		return "", err
	}
	v, ok := protocol.FetchBulkString(reply)
	if !ok {
		return "", unexpectedReply(reply)
	}
	return string(v), nil
}
