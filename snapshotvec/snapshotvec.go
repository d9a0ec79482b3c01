package snapshotvec

import (
	"fmt"

	"github.com/Kobzol/ena/debug"
	"github.com/Kobzol/ena/undolog"
)

type UndoKind int

const (
	// NewElem undoes a Push by popping the element at Index.
	NewElem UndoKind = iota
	// SetElem undoes a Set by restoring Old at Index.
	SetElem
	// Other carries a host defined event, see SnapshotVec.ReverseOther.
	Other
)

func (k UndoKind) String() string {
	switch k {
	case NewElem:
		return "new-elem"
	case SetElem:
		return "set-elem"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("UndoKind(%d)", int(k))
	}
}

type UndoEntry[T any] struct {
	Kind  UndoKind
	Index int
	Old   T
	Other any
}

// SnapshotVec is a growable vector of T with snapshot support.
type SnapshotVec[T any] struct {
	values []T
	undo   undolog.Snapshots[UndoEntry[T]]

	// ReverseOther, if set, is called to undo events recorded with Record.
	ReverseOther func(v *SnapshotVec[T], other any)
}

func New[T any]() *SnapshotVec[T] {
	return NewWithLog[T](undolog.NewVecLog[UndoEntry[T]]())
}

// NewWithLog creates a vector recording its edits to log.
func NewWithLog[T any](log undolog.Snapshots[UndoEntry[T]]) *SnapshotVec[T] {
	return &SnapshotVec[T]{undo: log}
}

func (v *SnapshotVec[T]) Len() int {
	return len(v.values)
}

func (v *SnapshotVec[T]) Get(i int) T {
	return v.values[i]
}

// Values returns the elements. The result must not be modified.
func (v *SnapshotVec[T]) Values() []T {
	return v.values
}

func (v *SnapshotVec[T]) InSnapshot() bool {
	return v.undo.InSnapshot()
}

// Push appends x and returns its index.
func (v *SnapshotVec[T]) Push(x T) int {
	i := len(v.values)
	v.values = append(v.values, x)
	if v.undo.InSnapshot() {
		v.undo.Push(UndoEntry[T]{Kind: NewElem, Index: i})
	}
	return i
}

func (v *SnapshotVec[T]) Extend(xs ...T) {
	for _, x := range xs {
		v.Push(x)
	}
}

func (v *SnapshotVec[T]) Set(i int, x T) {
	old := v.values[i]
	v.values[i] = x
	if v.undo.InSnapshot() {
		v.undo.Push(UndoEntry[T]{Kind: SetElem, Index: i, Old: old})
	}
}

// Update applies f to the element at i.
func (v *SnapshotVec[T]) Update(i int, f func(*T)) {
	if v.undo.InSnapshot() {
		v.undo.Push(UndoEntry[T]{Kind: SetElem, Index: i, Old: v.values[i]})
	}
	f(&v.values[i])
}

// Record logs a host defined event, undone by ReverseOther.
func (v *SnapshotVec[T]) Record(other any) {
	if v.undo.InSnapshot() {
		v.undo.Push(UndoEntry[T]{Kind: Other, Other: other})
	}
}

func (v *SnapshotVec[T]) StartSnapshot() undolog.Snapshot {
	return v.undo.StartSnapshot()
}

func (v *SnapshotVec[T]) HasChanges(s undolog.Snapshot) bool {
	return v.undo.HasChanges(s)
}

func (v *SnapshotVec[T]) ActionsSinceSnapshot(s undolog.Snapshot) []UndoEntry[T] {
	return v.undo.ActionsSinceSnapshot(s)
}

func (v *SnapshotVec[T]) RollbackTo(s undolog.Snapshot) {
	v.undo.RollbackTo(undolog.Target[UndoEntry[T]](v), s)
}

func (v *SnapshotVec[T]) Commit(s undolog.Snapshot) {
	v.undo.Commit(s)
}

// Reverse undoes one entry. It is called by the undo log during rollback.
func (v *SnapshotVec[T]) Reverse(u UndoEntry[T]) {
	if debug.Host() {
		debug.Logf("snapshotvec: reverse %s at %d\n", u.Kind, u.Index)
	}
	switch u.Kind {
	case NewElem:
		n := len(v.values) - 1
		if u.Index != n {
			panic(fmt.Sprintf("snapshotvec: undoing push of %d but length is %d", u.Index, len(v.values)))
		}
		var zero T
		v.values[n] = zero
		v.values = v.values[:n]
	case SetElem:
		v.values[u.Index] = u.Old
	case Other:
		if v.ReverseOther != nil {
			v.ReverseOther(v, u.Other)
		}
	}
}
