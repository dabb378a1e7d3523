// Package visit counts unique visitor sessions with a daily breakdown.
//
// The counter is durable and monotonically increasing: a session is
// counted at most once per day, and repeated increments for the same
// session are no-ops. The storage backend sits behind the Store
// interface so it stays interchangeable.
package visit

import "context"

// Stats is a snapshot of the visit counters.
type Stats struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
}

// Store persists visit counters.
type Store interface {
	// IncrementIfFirstVisit counts the session once for the current
	// day and returns the updated totals. Calling it again with the
	// same session on the same day returns identical totals.
	IncrementIfFirstVisit(ctx context.Context, sessionID string) (Stats, error)

	// Totals returns the counters without incrementing anything.
	Totals(ctx context.Context) (Stats, error)

	Close() error
}
