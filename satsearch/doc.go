// Package satsearch provides a speculative boolean assignment trail over a
// CNF problem, checked with the gini SAT solver.
//
// Assignments and clauses added while a snapshot is open are recorded in an
// undo log, so a search can try a decision, find out it leads nowhere, and
// roll it back without copying the problem. Search is a depth first
// backtracking search built this way: each decision is a nested snapshot.
package satsearch
