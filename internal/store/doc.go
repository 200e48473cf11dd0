// Package store defines the persistence interfaces the scheduling core
// depends on: learner profiles, the append-only review log, per-topic
// repetition state, and optional analytics snapshots. Concrete
// implementations live under internal/platform; the core never imports
// them directly.
package store
