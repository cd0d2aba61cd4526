package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_NoLeak(t *testing.T) {
	Run(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(time.Millisecond)
			}()
		}
		wg.Wait()
	})
}

func TestSettled_DetectsLeak(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	snap := Take(t)
	go func() { <-release }()

	rec := &recorder{}
	snap.t = rec
	assert.False(t, snap.Settled(0, 50*time.Millisecond))
	assert.True(t, rec.failed)
}

func TestSettled_Tolerance(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	snap := Take(t)
	go func() { <-release }()

	assert.True(t, snap.Settled(1, 50*time.Millisecond))
}

// recorder captures failures without failing the enclosing test
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Errorf(format string, a ...any) { r.failed = true }
func (r *recorder) Logf(format string, a ...any)   {}
