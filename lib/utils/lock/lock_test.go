package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`code runs exclusively`, func(t *testing.T) {
		var inside, maxInside, failed int32
		wg := sync.WaitGroup{}
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := WithDelay(context.Background(), "key-1", 5*time.Second, func() error {
					current := atomic.AddInt32(&inside, 1)
					if current > atomic.LoadInt32(&maxInside) {
						atomic.StoreInt32(&maxInside, current)
					}
					time.Sleep(5 * time.Millisecond)
					atomic.AddInt32(&inside, -1)
					return nil
				})
				if !ok || err != nil {
					atomic.AddInt32(&failed, 1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(0), failed)
		require.Equal(t, int32(1), maxInside)
	})

	t.Run(`timeout while locked`, func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "key-2", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "key-2", 100*time.Millisecond, func() error {
			return nil
		})
		close(release)
		require.False(t, ok)
		require.Nil(t, err)
	})

	t.Run(`error is returned`, func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "key-3", time.Second, func() error {
			return errors.New("failed")
		})
		require.True(t, ok)
		require.EqualError(t, err, "failed")
	})

	t.Run(`permit key`, func(t *testing.T) {
		require.Equal(t, "permit:PTW:42", PermitKey("PTW", "42"))
	})
}

func TestResourceLock(t *testing.T) {
	t.Run(`acquire respects size and context`, func(t *testing.T) {
		r := NewResourceLock(1)
		require.True(t, r.Acquire(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		require.False(t, r.Acquire(ctx))

		r.Release()
		require.True(t, r.Acquire(context.Background()))
		r.Release()
		require.Equal(t, 0, r.WaitCount())
	})
}
