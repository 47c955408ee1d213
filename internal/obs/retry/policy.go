package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying. Policies built here stop on it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// DefaultPublishPolicy backs off outbox publishing to the broker.
func DefaultPublishPolicy(log *zap.Logger) Policy {
	return Policy{
		Name:     "outbox_publish",
		Attempts: 6,
		Backoff:  ExpoJitter{Base: 200 * time.Millisecond, Max: 30 * time.Second, Jitter: 0.2},
		Retryable: Transient,
		OnAttempt: func(i int, err error) {
			if log != nil {
				log.Warn("outbox retry", zap.Int("attempt", i+1), zap.Error(err))
			}
		},
		OnExhaust: func(err error) {
			if log != nil && !errors.Is(err, context.Canceled) {
				log.Error("outbox retries exhausted", zap.Error(err))
			}
		},
	}
}

// DefaultMailPolicy is used by the notifier around SMTP delivery.
func DefaultMailPolicy(log *zap.Logger) Policy {
	return Policy{
		Name:     "order_mail",
		Attempts: 3,
		Backoff:  ExpoJitter{Base: 500 * time.Millisecond, Max: 5 * time.Second, Jitter: 0.1},
		Retryable: Transient,
		OnAttempt: func(i int, err error) {
			if log != nil {
				log.Warn("mail retry", zap.Int("attempt", i+1), zap.Error(err))
			}
		},
	}
}
