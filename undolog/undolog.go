package undolog

// Logs is a sink for undo events of type T.
type Logs[T any] interface {
	// NumOpenSnapshots returns the number of snapshots that have been
	// started but not yet rolled back or committed.
	NumOpenSnapshots() int
	// InSnapshot reports whether NumOpenSnapshots() > 0.
	InSnapshot() bool
	// Push records one undo event.
	Push(undo T)
	// Clear drops all events and open snapshots. Snapshots started before
	// Clear must not be used afterwards.
	Clear()
}

// Snapshots is a log which can mark positions and later roll back to or
// commit them.
type Snapshots[T any] interface {
	Logs[T]

	// HasChanges reports whether events were pushed since s was started.
	HasChanges(s Snapshot) bool
	// ActionsSinceSnapshot returns the events pushed since s was started,
	// oldest first. The result must not be modified.
	ActionsSinceSnapshot(s Snapshot) []T
	// StartSnapshot opens a snapshot at the current log position.
	StartSnapshot() Snapshot
	// RollbackTo consumes s, undoing every event pushed since it was
	// started. values is called at most once, and only if there is
	// something to undo.
	RollbackTo(values func() Rollback[T], s Snapshot)
	// Commit consumes s, keeping the events pushed since it was started.
	Commit(s Snapshot)
}

// Rollback is implemented by hosts which can undo events of type T.
//
// Reverse is called exactly once per event, newest first, and must not
// fail.
type Rollback[T any] interface {
	Reverse(undo T)
}

// RollbackFunc adapts a function to a Rollback.
type RollbackFunc[T any] func(undo T)

func (f RollbackFunc[T]) Reverse(undo T) {
	f(undo)
}

// Target returns a constructor yielding r, for callers of RollbackTo whose
// reversal target already exists.
func Target[T any](r Rollback[T]) func() Rollback[T] {
	return func() Rollback[T] { return r }
}

// InSnapshot reports whether l has an open snapshot.
func InSnapshot[T any](l Logs[T]) bool {
	return l.NumOpenSnapshots() > 0
}

// Extend pushes undos to l in order.
func Extend[T any](l Logs[T], undos ...T) {
	for _, u := range undos {
		l.Push(u)
	}
}

// NoUndo is a log which discards everything pushed to it.
type NoUndo[T any] struct{}

func (NoUndo[T]) NumOpenSnapshots() int { return 0 }
func (NoUndo[T]) InSnapshot() bool      { return false }
func (NoUndo[T]) Push(T)                {}
func (NoUndo[T]) Clear()                {}
