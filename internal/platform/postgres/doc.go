// Package postgres implements the store interfaces on PostgreSQL via
// database/sql and the pgx stdlib driver. Array-ish fields (peak hours,
// performance history) are stored as JSONB.
package postgres
