package wait

import (
	"sync"
	"time"
)

// Wait 是带超时的 sync.WaitGroup
type Wait struct {
	wg sync.WaitGroup
}

func (w *Wait) Add(delta int) {
	w.wg.Add(delta)
}

func (w *Wait) Done() {
	w.wg.Done()
}

func (w *Wait) Wait() {
	w.wg.Wait()
}

// WaitWithTimeout 等待计数归零，超时则返回 true
func (w *Wait) WaitWithTimeout(waitTime time.Duration) bool {
	c := make(chan struct{})
	go func() {
		w.wg.Wait()
		// 用 close 而不是发送，保证接收方一定能收到通知
		close(c)
	}()
	timer := time.NewTimer(waitTime)
	defer timer.Stop()
	select {
	case <-c:
		return false
	case <-timer.C:
		return true
	}
}
