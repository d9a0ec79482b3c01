package undolog

import "fmt"

// Snapshot marks a position in a log. It is returned by StartSnapshot and
// must be passed to exactly one of RollbackTo or Commit.
//
// The zero Snapshot is never valid.
type Snapshot struct {
	// length of the log when the snapshot was started
	undoLen int
	// identity among the snapshots of one log, starting at 1
	id uint64
}

// UndoLen returns the length of the log when s was started.
func (s Snapshot) UndoLen() int {
	return s.undoLen
}

func (s Snapshot) String() string {
	return fmt.Sprintf("snapshot#%d@%d", s.id, s.undoLen)
}
