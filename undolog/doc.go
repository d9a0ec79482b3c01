// Package undolog provides undo logs with nested snapshots.
//
// A host data structure records one undo event per forward mutation in a
// log. A snapshot marks a position in that log; rolling back to it replays
// the events pushed since, newest first, through the host's [Rollback]
// implementation, and committing it keeps the changes.
//
// # Snapshots
//
// Snapshots nest in stack order: the innermost open snapshot must be
// consumed first, and each snapshot is consumed exactly once, by either
// [Snapshots.RollbackTo] or [Snapshots.Commit]. Committing an inner snapshot
// leaves the log intact so that an outer snapshot can still roll back past
// it. Only committing the root snapshot clears the log.
//
// Violating stack order is a programming error and panics.
//
// # Implementations
//
//   - [VecLog] is the slice backed log.
//   - [NoUndo] discards every event, for hosts that never roll back.
//   - [Ref] forwards to a log owned elsewhere.
//
// Setting ENA_DEBUG_UNDO=1 traces rollbacks and commits to stderr and
// ENA_DEBUG_SNAPSHOT=1 traces snapshot creation.
package undolog
