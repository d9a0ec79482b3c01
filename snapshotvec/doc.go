// Package snapshotvec provides a vector whose edits can be rolled back.
//
// Edits made while a snapshot is open are recorded in an undo log; edits
// made outside any snapshot are not recorded, since nothing could roll them
// back.
package snapshotvec
