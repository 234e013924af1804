package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
)

// isUniqueViolation checks whether an error is a unique constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapErr wraps a storage error with the operation name. Connectivity-class
// failures additionally wrap ErrStorageUnavailable so handlers can answer 503
// and callers know a retry may succeed.
func wrapErr(op string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isTransient reports whether the error is a connectivity-class failure:
// broken or refused connections, timeouts, server shutdown, pool exhaustion.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 = connection exceptions; 57P01 admin shutdown,
		// 57P03 cannot connect now, 53300 too many connections.
		return strings.HasPrefix(pgErr.Code, "08") ||
			pgErr.Code == "57P01" || pgErr.Code == "57P03" || pgErr.Code == "53300"
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
