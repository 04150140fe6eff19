package syncer

import (
	"errors"
	"fmt"
)

// ErrConflict is returned when the local watermark is stale relative to the
// store at write time. The pending write is aborted without sending data;
// the caller must reconcile manually, typically by calling Reload. Conflicts
// are never retried automatically.
var ErrConflict = errors.New("snapshot write conflict")

// TransientError wraps a network or storage failure during fetch or write.
// The in-memory aggregate is left untouched and the operation may be retried
// explicitly by the caller.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient store error during %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether the error is a retryable store failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
