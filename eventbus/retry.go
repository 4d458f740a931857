package eventbus

import (
	"context"
	"errors"
	"time"

	"blog-server/logger"
)

const (
	// MaxHandleAttempts bounds how often Subscribe runs a handler for one
	// event before it goes to the DLQ.
	MaxHandleAttempts = 3
	RetryDelay        = 500 * time.Millisecond
)

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks a handler error that retrying cannot fix. Subscribe sends
// such events to the DLQ without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// handleWithRetry runs handler up to attempts times, waiting n*delay after
// the n-th failure. It stops early on permanent errors and when ctx is done.
func handleWithRetry(ctx context.Context, handler EventHandler, evt Event, attempts int, delay time.Duration) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = handler(ctx, evt); err == nil {
			return nil
		}
		if IsPermanent(err) || i == attempts {
			return err
		}
		logger.Log.Warnf("event %s attempt %d/%d failed, retrying: %v", evt.ID, i, attempts, err)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(i) * delay):
		}
	}
	return err
}
