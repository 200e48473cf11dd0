// Package mocks provides in-memory implementations of the store interfaces
// for testing services and handlers without a database.
//
// Each mock follows the same pattern: optional function fields override
// individual methods, and a map-backed default implementation covers the
// common cases. Mocks are not safe for concurrent use unless a test
// serializes access itself.
package mocks
