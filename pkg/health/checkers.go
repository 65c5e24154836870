package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// Pinger is satisfied by pgxpool.Pool and anything else that can probe its
// backing connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseCheck probes database connectivity.
func DatabaseCheck(db Pinger) Check {
	return func(ctx context.Context) error {
		if err := db.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping database")
		}
		return nil
	}
}

// GoroutineCountCheck flags a goroutine leak once the count exceeds the
// threshold.
func GoroutineCountCheck(threshold int) Check {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}
