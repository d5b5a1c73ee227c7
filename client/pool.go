package client

import (
	"context"
	"errors"

	pool "github.com/jolestar/go-commons-pool/v2"
)

type connectionFactory struct {
	addr string
}

func (f *connectionFactory) MakeObject(_ context.Context) (*pool.PooledObject, error) {
	cli, err := NewClient(f.addr)
	if err != nil {
		return nil, err
	}
	return pool.NewPooledObject(cli), nil
}

func (f *connectionFactory) DestroyObject(_ context.Context, obj *pool.PooledObject) error {
	cli, ok := obj.Object.(*Client)
	if !ok {
		return errors.New("type mismatch")
	}
	cli.Close()
	return nil
}

// ValidateObject 通过一次 PING 往返确认连接仍然可用
func (f *connectionFactory) ValidateObject(_ context.Context, obj *pool.PooledObject) bool {
	cli, ok := obj.Object.(*Client)
	return ok && cli.Ping() == nil
}

func (f *connectionFactory) ActivateObject(_ context.Context, _ *pool.PooledObject) error {
	return nil
}

func (f *connectionFactory) PassivateObject(_ context.Context, _ *pool.PooledObject) error {
	return nil
}

// Pool 维护到同一个服务器的一组连接
type Pool struct {
	ctx     context.Context
	objPool *pool.ObjectPool
}

func NewPool(addr string, maxTotal int) *Pool {
	ctx := context.Background()
	cfg := pool.NewDefaultPoolConfig()
	cfg.MaxTotal = maxTotal
	cfg.TestOnBorrow = true
	return &Pool{
		ctx:     ctx,
		objPool: pool.NewObjectPool(ctx, &connectionFactory{addr: addr}, cfg),
	}
}

// Fetch 从池中借出一个客户端，用完必须调用 Return 归还
func (p *Pool) Fetch() (*Client, error) {
	obj, err := p.objPool.BorrowObject(p.ctx)
	if err != nil {
		return nil, err
	}
	cli, ok := obj.(*Client)
	if !ok {
		return nil, errors.New("type mismatch")
	}
	return cli, nil
}

func (p *Pool) Return(cli *Client) error {
	return p.objPool.ReturnObject(p.ctx, cli)
}

func (p *Pool) Close() {
	p.objPool.Close(p.ctx)
}
