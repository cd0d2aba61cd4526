// Package leaktest checks that goroutines started by a test have exited.
package leaktest

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// DefaultTimeout bounds how long Settled waits for goroutines to exit
const DefaultTimeout = time.Second

// Snapshot is the goroutine count taken before the code under test ran
type Snapshot struct {
	t      testing.TB
	before int
}

// Take records the current goroutine count
func Take(t testing.TB) *Snapshot {
	t.Helper()
	runtime.Gosched()
	return &Snapshot{t: t, before: runtime.NumGoroutine()}
}

// Settled fails the test unless the goroutine count drops back to within
// tolerance of the snapshot before timeout.
func (s *Snapshot) Settled(tolerance int, timeout time.Duration) bool {
	s.t.Helper()
	var after int
	ok := assert.Eventually(s.t, func() bool {
		after = runtime.NumGoroutine()
		return after-s.before <= tolerance
	}, timeout, 10*time.Millisecond)
	if !ok {
		s.t.Logf("goroutines before=%d after=%d tolerance=%d", s.before, after, tolerance)
	}
	return ok
}

// Run runs fn and requires every goroutine it started to be gone afterwards
func Run(t testing.TB, fn func()) {
	t.Helper()
	snap := Take(t)
	fn()
	snap.Settled(0, DefaultTimeout)
}
