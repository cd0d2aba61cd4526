package concurrency

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/QuizDuel_Go/internal/metrics"
)

// Locker serialises work on a key. The returned function releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type namedLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager handles named in-process locks.
// Entries are dropped once no goroutine holds or waits on them.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*namedLock
	poll  time.Duration
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[string]*namedLock),
		poll:  DefaultPollInterval,
	}
}

func (lm *LockManager) acquireRef(key string) *namedLock {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l, ok := lm.locks[key]
	if !ok {
		l = &namedLock{}
		lm.locks[key] = l
	}
	l.refs++
	return l
}

func (lm *LockManager) releaseRef(key string, l *namedLock) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
}

// Lock blocks until the named lock is held or ctx is done
func (lm *LockManager) Lock(ctx context.Context, key string) (func(), error) {
	l := lm.acquireRef(key)

	if !l.mu.TryLock() {
		metrics.LockContention.Inc()
		ticker := time.NewTicker(lm.poll)
		defer ticker.Stop()
		for !l.mu.TryLock() {
			select {
			case <-ctx.Done():
				lm.releaseRef(key, l)
				return nil, ctx.Err()
			case <-ticker.C:
			}
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			lm.releaseRef(key, l)
		})
	}, nil
}

// Size reports how many keys currently have holders or waiters
func (lm *LockManager) Size() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
