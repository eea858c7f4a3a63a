package scheduler

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Defaults(t *testing.T) {
	s := New("", nil)
	require.NotNil(t, s)
	assert.Equal(t, DefaultSchedule, s.schedule)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.cron)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New("@every 1h", testLogger())
	s.Register("noop", SweeperFunc(func() int { return 0 }))

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New("not a schedule", testLogger())
	s.Register("noop", SweeperFunc(func() int { return 0 }))

	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noop")
}

func TestScheduler_RunNow(t *testing.T) {
	var states, limiters atomic.Int32
	s := New("", testLogger())
	s.Register("states", SweeperFunc(func() int { states.Add(1); return 3 }))
	s.Register("limiters", SweeperFunc(func() int { limiters.Add(1); return 0 }))

	s.RunNow()

	assert.Equal(t, int32(1), states.Load())
	assert.Equal(t, int32(1), limiters.Load())
}

func TestScheduler_RecoversFromPanic(t *testing.T) {
	var after atomic.Bool
	s := New("", testLogger())
	s.Register("broken", SweeperFunc(func() int { panic("boom") }))
	s.Register("after", SweeperFunc(func() int { after.Store(true); return 0 }))

	assert.NotPanics(t, s.RunNow)
	assert.True(t, after.Load())
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	ran := make(chan struct{}, 1)
	s := New("@every 1s", testLogger())
	s.Register("tick", SweeperFunc(func() int {
		select {
		case ran <- struct{}{}:
		default:
		}
		return 0
	}))
	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("sweep did not run within 3s")
	}
}
