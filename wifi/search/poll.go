package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shazow/wifisearch/wifi"
)

// DefaultInterval is the pause between scan passes while polling.
const DefaultInterval = time.Second

// Clock is the time source for polling.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d, or until ctx is done in which case it returns
	// ctx.Err().
	Sleep(ctx context.Context, d time.Duration) error
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WaitForAccessPoint scans repeatedly until an access point matching pattern
// shows up or timeout elapses. It returns nil if nothing matched in time.
//
// Each pass scans once and returns straight away on a match. Otherwise it
// sleeps for the interval and starts another pass only if the deadline has
// not passed by the time it wakes, so a zero timeout scans exactly once.
// The call blocks for up to timeout plus one interval.
func (s *Searcher) WaitForAccessPoint(ctx context.Context, pattern string, timeout time.Duration, strongest bool) (*wifi.AccessPoint, error) {
	if timeout < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeTimeout, timeout)
	}
	p, err := s.compile(pattern)
	if p == nil {
		return nil, err
	}
	if s.scanner == nil {
		return nil, nil
	}

	logger := s.logger.With("search", uuid.NewString(), "pattern", pattern)
	m := s.matcher(logger)
	deadline := s.clock.Now().Add(timeout)

	for pass := 1; ; pass++ {
		logger.Debug("scanning access points", "pass", pass)
		if ap := m.FirstAccessPoint(s.scan(logger), p, strongest); ap != nil {
			logger.Info("access point found", "ssid", ap.SSID, "bssid", ap.BSSID, "signal", ap.Signal, "pass", pass)
			return ap, nil
		}

		if !s.clock.Now().Before(deadline) {
			break
		}
		if err := s.clock.Sleep(ctx, s.interval); err != nil {
			return nil, err
		}

		now := s.clock.Now()
		logger.Debug("no match yet", "pass", pass, "now", now, "deadline", deadline)
		if !now.Before(deadline) {
			break
		}
	}

	logger.Info("timed out waiting for access point", "timeout", timeout)
	return nil, nil
}
