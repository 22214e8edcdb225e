package jobs

import "errors"

// ErrNotFound indicates the job id was never submitted (or belongs to a
// previous process: the store does not survive restarts).
var ErrNotFound = errors.New("job not found")

// ErrDuplicateID indicates an insert for an id that already exists. Ids are
// generated, so this surfacing means an invariant was broken.
var ErrDuplicateID = errors.New("duplicate job id")
