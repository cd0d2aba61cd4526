package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type blockingSweeper struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	entered chan struct{}
	err     error
}

func (s *blockingSweeper) SweepExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return 1, s.err
}

func TestSweepJob_PropagatesError(t *testing.T) {
	sweeper := &blockingSweeper{err: errors.New("db down")}
	job := NewSweepJob(sweeper)

	err := job.Process(context.Background())
	assert.EqualError(t, err, "db down")
	assert.Equal(t, 1, sweeper.calls)
}

func TestSweepJob_SkipsOverlappingRun(t *testing.T) {
	sweeper := &blockingSweeper{release: make(chan struct{}), entered: make(chan struct{}, 1)}
	job := NewSweepJob(sweeper)

	done := make(chan error, 1)
	go func() { done <- job.Process(context.Background()) }()
	<-sweeper.entered

	assert.NoError(t, job.Process(context.Background()), "second run is skipped, not failed")

	close(sweeper.release)
	assert.NoError(t, <-done)

	sweeper.mu.Lock()
	defer sweeper.mu.Unlock()
	assert.Equal(t, 1, sweeper.calls)
}
