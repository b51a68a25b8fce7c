package lock

import (
	"context"
	"sync/atomic"
)

// Resource limits how many heavy report builds (xlsx/pdf) run at once.
var Resource = NewResourceLock(2)

func InitResourceLock(size int) {
	Resource = NewResourceLock(size)
}

type ResourceLock struct {
	slots     chan struct{}
	waitCount int32
}

func NewResourceLock(size int) *ResourceLock {
	if size < 1 {
		size = 1
	}
	return &ResourceLock{
		slots: make(chan struct{}, size),
	}
}

// Acquire blocks until a slot is free. False means ctx ended first.
func (c *ResourceLock) Acquire(ctx context.Context) bool {
	atomic.AddInt32(&c.waitCount, 1)
	defer atomic.AddInt32(&c.waitCount, -1)
	select {
	case c.slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *ResourceLock) Release() {
	select {
	case <-c.slots:
	default:
	}
}

func (c *ResourceLock) WaitCount() int {
	return int(atomic.LoadInt32(&c.waitCount))
}
