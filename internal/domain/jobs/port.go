package jobs

import "context"

// Store port (interface untuk job records)
//
// Implementations must be safe for concurrent use: a Get racing an Update on
// the same id observes either the previous or the next state, never a torn
// record. Records live for the process lifetime; there is no eviction.
type Store interface {
	// Create inserts a new record. ErrDuplicateID if the id exists.
	Create(ctx context.Context, j *Job) error
	// Get returns a snapshot of the record. ErrNotFound if absent.
	Get(ctx context.Context, id JobID) (*Job, error)
	// Update applies mutate to the stored record under the store's write
	// lock. mutate must not block. ErrNotFound if absent.
	Update(ctx context.Context, id JobID, mutate func(*Job)) error
}
