package db

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unavailable reports whether err means the database could not be reached in
// time rather than that the statement itself was rejected. Adapters use it to
// map driver failures onto their service's ErrUnavailable sentinel so the
// transport can answer 503 instead of a generic 500.
func Unavailable(err error) bool {
	if err == nil {
		return false
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
