package satsearch

import (
	"fmt"
	"maps"

	"github.com/Kobzol/ena/debug"
	"github.com/Kobzol/ena/undolog"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

type EventKind int

const (
	// Assigned undoes Assign, restoring the previous value of Var if any.
	Assigned EventKind = iota
	// ClauseAdded undoes AddClause by dropping the last clause.
	ClauseAdded
)

// Event is one undo event of a Problem.
type Event struct {
	Kind    EventKind
	Var     z.Var
	Prev    bool
	HadPrev bool
}

// Stats counts work done by Consistent and Search.
type Stats struct {
	Checks    int
	Decisions int
	Rollbacks int
}

// Problem is a set of clauses together with a partial assignment.
type Problem struct {
	c       *logic.C
	vars    []z.Lit
	clauses [][]z.Lit
	assign  map[z.Var]bool
	log     undolog.Snapshots[Event]
	stats   Stats
}

func New() *Problem {
	return NewWithLog(undolog.NewVecLog[Event]())
}

// NewWithLog creates a problem recording its undo events in log.
func NewWithLog(log undolog.Snapshots[Event]) *Problem {
	return &Problem{
		c:      logic.NewC(),
		assign: make(map[z.Var]bool),
		log:    log,
	}
}

// NewVar creates a decision variable and returns its positive literal.
// Variables are never removed, even by rollback.
func (p *Problem) NewVar() z.Lit {
	m := p.c.Lit()
	p.vars = append(p.vars, m)
	return m
}

// Circuit returns the circuit variables are allocated in. Gates built with
// it are part of the problem once required with AddClause.
func (p *Problem) Circuit() *logic.C {
	return p.c
}

// AddClause adds the disjunction of ms.
func (p *Problem) AddClause(ms ...z.Lit) {
	p.clauses = append(p.clauses, append([]z.Lit(nil), ms...))
	if p.log.InSnapshot() {
		p.log.Push(Event{Kind: ClauseAdded})
	}
}

// Assign sets the variable of m so that m is true.
func (p *Problem) Assign(m z.Lit) {
	v := m.Var()
	prev, had := p.assign[v]
	p.assign[v] = m.IsPos()
	if debug.Host() {
		debug.Logf("satsearch: assign %v\n", m)
	}
	if p.log.InSnapshot() {
		p.log.Push(Event{Kind: Assigned, Var: v, Prev: prev, HadPrev: had})
	}
}

// Value returns the assigned value of v, if any.
func (p *Problem) Value(v z.Var) (val, ok bool) {
	val, ok = p.assign[v]
	return
}

// Assignment returns a copy of the current partial assignment.
func (p *Problem) Assignment() map[z.Var]bool {
	return maps.Clone(p.assign)
}

func (p *Problem) Stats() Stats {
	return p.stats
}

// Consistent reports whether the clauses are satisfiable under the current
// partial assignment.
func (p *Problem) Consistent() bool {
	p.stats.Checks++
	g := gini.New()
	p.c.ToCnf(g)
	for _, cl := range p.clauses {
		for _, m := range cl {
			g.Add(m)
		}
		g.Add(0)
	}
	// unit clauses for the partial assignment
	for v, val := range p.assign {
		m := v.Pos()
		if !val {
			m = m.Not()
		}
		g.Add(m)
		g.Add(0)
	}
	return g.Solve() == 1
}

func (p *Problem) StartSnapshot() undolog.Snapshot {
	return p.log.StartSnapshot()
}

func (p *Problem) Commit(s undolog.Snapshot) {
	p.log.Commit(s)
}

func (p *Problem) RollbackTo(s undolog.Snapshot) {
	p.stats.Rollbacks++
	p.log.RollbackTo(undolog.Target[Event](p), s)
}

// Reverse undoes one event. It is called by the undo log during rollback.
func (p *Problem) Reverse(e Event) {
	switch e.Kind {
	case Assigned:
		if e.HadPrev {
			p.assign[e.Var] = e.Prev
		} else {
			delete(p.assign, e.Var)
		}
	case ClauseAdded:
		n := len(p.clauses) - 1
		p.clauses[n] = nil
		p.clauses = p.clauses[:n]
	default:
		panic(fmt.Sprintf("satsearch: unknown event kind %d", e.Kind))
	}
}
