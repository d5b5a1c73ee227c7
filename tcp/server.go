package tcp

import (
	"context"
	"godict/interface/tcp"
	"godict/lib/logger"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Config stores tcp server properties
type Config struct {
	Address    string        `cfg:"address"`
	MaxConnect uint32        `cfg:"max-connect"`
	Timeout    time.Duration `cfg:"timeout"`
}

// ListenAndServeWithSignal 监听中断信号，并且通过 closeChan 通知服务器关闭
func ListenAndServeWithSignal(cfg *Config, handler tcp.Handler) error {
	closeChan := make(chan struct{})
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		switch sig {
		case syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT:
			closeChan <- struct{}{}
		}
	}()
	lr, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return err
	}
	logger.Infof("Bound %s, start listening...", cfg.Address)
	ListenAndServe(lr, handler, closeChan)
	return nil
}

// ListenAndServe 接受连接并交给 handler，直到 closeChan 收到关闭通知
func ListenAndServe(lr net.Listener, handler tcp.Handler, closeChan <-chan struct{}) {
	go func() {
		<-closeChan
		logger.Info("Shutting down...")
		_ = lr.Close()
		_ = handler.Close()
	}()
	defer func() {
		_ = lr.Close()
		_ = handler.Close()
	}()
	ctx := context.Background()
	var waitDone sync.WaitGroup
	for {
		conn, err := lr.Accept()
		if err != nil {
			break
		}
		waitDone.Add(1)
		go func() {
			defer func() {
				waitDone.Done()
			}()
			handler.Handle(ctx, conn)
		}()
	}
	waitDone.Wait()
}
