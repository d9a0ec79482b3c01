// Package ena is a collection of undo logs and data structures built on
// them.
//
//   - github.com/Kobzol/ena/undolog - undo logs with nested snapshots
//   - github.com/Kobzol/ena/snapshotvec - a vector with rollback
//   - github.com/Kobzol/ena/jsondoc - a JSON document with rollback
//   - github.com/Kobzol/ena/satsearch - backtracking search over a SAT problem
package ena
