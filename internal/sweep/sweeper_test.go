package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubArchiver struct {
	calls int
	days  int
	err   error
}

func (s *stubArchiver) ArchiveStale(ctx context.Context, olderThanDays int) (int64, error) {
	s.calls++
	s.days = olderThanDays
	return 2, s.err
}

type stubExpirer struct {
	calls int
	days  int
}

func (s *stubExpirer) ExpireStale(ctx context.Context, olderThanDays int) (int64, error) {
	s.calls++
	s.days = olderThanDays
	return 1, nil
}

type stubNotifier struct {
	calls int
	days  int
}

func (s *stubNotifier) NotifyAging(ctx context.Context, olderThanDays int) (int, error) {
	s.calls++
	s.days = olderThanDays
	return 0, nil
}

func TestRunOnceRunsAllJobs(t *testing.T) {
	archiver := &stubArchiver{}
	expirer := &stubExpirer{}
	notifier := &stubNotifier{}
	s := New(archiver, expirer, notifier, Config{
		Interval:         time.Minute,
		ArchiveAfterDays: 30,
		CartExpiryDays:   7,
		AgingNoticeDays:  3,
	})

	s.RunOnce(context.Background())

	assert.Equal(t, 1, archiver.calls)
	assert.Equal(t, 30, archiver.days)
	assert.Equal(t, 1, expirer.calls)
	assert.Equal(t, 7, expirer.days)
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, 3, notifier.days)
}

func TestRunOnceContinuesPastFailures(t *testing.T) {
	archiver := &stubArchiver{err: errors.New("db down")}
	expirer := &stubExpirer{}
	notifier := &stubNotifier{}
	s := New(archiver, expirer, notifier, Config{
		Interval:         time.Minute,
		ArchiveAfterDays: 30,
		CartExpiryDays:   7,
		AgingNoticeDays:  3,
	})

	s.RunOnce(context.Background())

	assert.Equal(t, 1, expirer.calls)
	assert.Equal(t, 1, notifier.calls)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	archiver := &stubArchiver{}
	expirer := &stubExpirer{}
	notifier := &stubNotifier{}
	s := New(archiver, expirer, notifier, Config{
		Interval:         time.Hour,
		ArchiveAfterDays: 30,
		CartExpiryDays:   7,
		AgingNoticeDays:  3,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
	assert.Equal(t, 1, archiver.calls)
}
