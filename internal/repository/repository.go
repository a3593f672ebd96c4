// Package repository implements PostgreSQL persistence for mentor
// profiles, availability templates, sessions, feedback and notifications.
// Repositories return sentinel-wrapped errors from pkg/errors so the
// service layer can branch on them without knowing about pgx.
package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. Used to close create races behind UNIQUE indexes.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// timer records one db_client_operation_duration_seconds observation.
// Call it at method entry and invoke the returned func with the final
// error before returning.
func timer(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(metrics.MeasureDuration(start))
	}
}

// notFoundIfNoRows maps pgx.ErrNoRows onto the application NotFound
// sentinel, leaving other errors untouched.
func notFoundIfNoRows(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundError(resource)
	}
	return err
}
