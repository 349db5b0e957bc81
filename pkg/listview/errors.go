package listview

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleLoad is returned by Load when a newer load was started before
	// this one completed; its result was discarded.
	ErrStaleLoad = errors.New("listview: stale load discarded")
	// ErrNoUpdater is returned by UpdateStatus when the controller was built
	// without a StatusUpdater.
	ErrNoUpdater = errors.New("listview: no status updater configured")
)

// LoadError reports a failed collection fetch. The controller is left in the
// error phase with an empty collection.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load collection: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MutationError reports a failed create, edit or status change. No local
// state is changed and the collection is not reloaded.
type MutationError struct {
	Op  string
	ID  string
	Err error
}

func (e *MutationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
