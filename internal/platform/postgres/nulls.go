package postgres

import (
	"database/sql"
	"time"
)

// nullableTime maps the zero time onto SQL NULL. Used for last_reviewed_at,
// which is unset until the first graded review.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
