package repository

import (
	"errors"
	"strings"
	"time"

	chat_errors "leo-chat/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isConstraintViolation reports Postgres integrity constraint violations (SQLSTATE class 23).
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

// mapStorageError translates gorm/driver errors into the service error kinds.
func mapStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return chat_errors.ErrNotFound
	case isConstraintViolation(err):
		return chat_errors.Invalid("%s", err.Error())
	default:
		return chat_errors.Storage(err)
	}
}

// betweenUsers matches rows exchanged by a and b in either direction.
func betweenUsers(a, b string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"((sender_username = ? AND receiver_username = ?) OR (sender_username = ? AND receiver_username = ?))",
			a, b, b, a,
		)
	}
}

// chronological orders rows oldest first; equal timestamps fall back to the id.
func chronological(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// stamp returns the creation time stored for new rows. Postgres keeps microseconds,
// so the value handed back to callers is truncated to match what a re-read returns.
func stamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}
