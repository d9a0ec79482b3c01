package undolog

// Ref forwards every call to a log owned elsewhere, so that a host can be
// written once against Snapshots and used both with its own log and with
// one it shares.
type Ref[T any] struct {
	l Snapshots[T]
}

func NewRef[T any](l Snapshots[T]) Ref[T] {
	return Ref[T]{l: l}
}

var _ Snapshots[int] = Ref[int]{}

func (r Ref[T]) NumOpenSnapshots() int {
	return r.l.NumOpenSnapshots()
}

func (r Ref[T]) InSnapshot() bool {
	return r.l.InSnapshot()
}

func (r Ref[T]) Push(undo T) {
	r.l.Push(undo)
}

func (r Ref[T]) Clear() {
	r.l.Clear()
}

func (r Ref[T]) Extend(undos ...T) {
	Extend(r.l, undos...)
}

func (r Ref[T]) HasChanges(s Snapshot) bool {
	return r.l.HasChanges(s)
}

func (r Ref[T]) ActionsSinceSnapshot(s Snapshot) []T {
	return r.l.ActionsSinceSnapshot(s)
}

func (r Ref[T]) StartSnapshot() Snapshot {
	return r.l.StartSnapshot()
}

func (r Ref[T]) RollbackTo(values func() Rollback[T], s Snapshot) {
	r.l.RollbackTo(values, s)
}

func (r Ref[T]) Commit(s Snapshot) {
	r.l.Commit(s)
}
