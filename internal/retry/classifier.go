package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Transient SQLSTATE classes and codes.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
var (
	transientClasses = []string{
		"08", // connection exception
		"53", // insufficient resources
		"57", // operator intervention
	}
	transientCodes = map[string]bool{
		"40001": true, // serialization_failure
		"40P01": true, // deadlock_detected
		"55P03": true, // lock_not_available
	}
)

// PostgresClassifier classifies errors returned by pgx.
type PostgresClassifier struct{}

func NewPostgresClassifier() *PostgresClassifier {
	return &PostgresClassifier{}
}

// IsTransient reports whether retrying err may succeed.
func (c *PostgresClassifier) IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if transientCodes[pgErr.Code] {
			return true
		}
		for _, class := range transientClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var _ genmeta.ErrorClassifier = (*PostgresClassifier)(nil)
