package retry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/segmentio/kafka-go"
)

// Postgres SQLSTATE classes worth another attempt.
var transientPgClasses = map[string]bool{
	"08": true, // connection exception
	"40": true, // serialization failure, deadlock
	"53": true, // insufficient resources
	"57": true, // operator intervention (admin shutdown, cancel)
}

// Transient reports whether err may go away on its own. Permanent-marked
// errors, cancellation, Postgres data/integrity errors and non-temporary
// broker errors are final; anything unclassified is retried.
func Transient(err error) bool {
	if err == nil || IsPermanent(err) || errors.Is(err, context.Canceled) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) >= 2 && transientPgClasses[pgErr.Code[:2]]
	}
	var kErr kafka.Error
	if errors.As(err, &kErr) {
		return kErr.Temporary()
	}
	return true
}
