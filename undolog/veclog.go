package undolog

import (
	"fmt"

	"github.com/Kobzol/ena/debug"
)

// VecLog is a basic undo log backed by a slice. The zero value is an empty
// log ready for use.
type VecLog[T any] struct {
	log []T
	// ids of the open snapshots, innermost last
	open   []uint64
	nextID uint64
}

var (
	_ Snapshots[int] = (*VecLog[int])(nil)
	_ Logs[int]      = NoUndo[int]{}
)

func NewVecLog[T any]() *VecLog[T] {
	return &VecLog[T]{}
}

func (l *VecLog[T]) NumOpenSnapshots() int {
	return len(l.open)
}

func (l *VecLog[T]) InSnapshot() bool {
	return len(l.open) > 0
}

func (l *VecLog[T]) Push(undo T) {
	l.log = append(l.log, undo)
}

func (l *VecLog[T]) Extend(undos ...T) {
	l.log = append(l.log, undos...)
}

func (l *VecLog[T]) Clear() {
	l.log = nil
	l.open = l.open[:0]
}

// Len returns the number of events in the log.
func (l *VecLog[T]) Len() int {
	return len(l.log)
}

// At returns the i'th event pushed since the log was last cleared.
func (l *VecLog[T]) At(i int) T {
	return l.log[i]
}

func (l *VecLog[T]) HasChanges(s Snapshot) bool {
	return len(l.log) > s.undoLen
}

func (l *VecLog[T]) ActionsSinceSnapshot(s Snapshot) []T {
	n := len(l.log)
	return l.log[s.undoLen:n:n]
}

func (l *VecLog[T]) StartSnapshot() Snapshot {
	l.nextID++
	l.open = append(l.open, l.nextID)
	s := Snapshot{undoLen: len(l.log), id: l.nextID}
	if debug.Snapshot() {
		debug.Logf("start_snapshot(%d) depth %d\n", s.undoLen, len(l.open))
	}
	return s
}

func (l *VecLog[T]) RollbackTo(values func() Rollback[T], s Snapshot) {
	if debug.Undo() {
		debug.Logf("rollback_to(%d)\n", s.undoLen)
	}
	l.assertOpenSnapshot(s)

	if len(l.log) > s.undoLen {
		r := values()
		var zero T
		for len(l.log) > s.undoLen {
			n := len(l.log) - 1
			undo := l.log[n]
			l.log[n] = zero
			l.log = l.log[:n]
			r.Reverse(undo)
		}
	}

	l.open = l.open[:len(l.open)-1]
}

func (l *VecLog[T]) Commit(s Snapshot) {
	if debug.Undo() {
		debug.Logf("commit(%d)\n", s.undoLen)
	}
	l.assertOpenSnapshot(s)

	if len(l.open) == 1 {
		// The root snapshot: no snapshot further out can roll back, so
		// the events are no longer needed.
		if s.undoLen != 0 {
			panic(fmt.Sprintf("undolog: root %s does not start at 0", s))
		}
		l.log = nil
	}

	l.open = l.open[:len(l.open)-1]
}

// Failures here indicate a failure to follow stack discipline.
func (l *VecLog[T]) assertOpenSnapshot(s Snapshot) {
	if len(l.log) < s.undoLen {
		panic(fmt.Sprintf("undolog: %s is past the end of the log (len %d)", s, len(l.log)))
	}
	if len(l.open) == 0 {
		panic(fmt.Sprintf("undolog: %s consumed with no open snapshot", s))
	}
	if top := l.open[len(l.open)-1]; top != s.id {
		panic(fmt.Sprintf("undolog: %s is not the innermost open snapshot (snapshot#%d)", s, top))
	}
}
