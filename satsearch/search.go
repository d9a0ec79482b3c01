package satsearch

import "github.com/go-air/gini/z"

// Search extends the current assignment to every variable created with
// NewVar such that all clauses hold. On success the assignment is kept and
// returned. On failure the assignment is left as it was.
//
// Search opens its own snapshot: called outside any snapshot, the undo
// log is empty again when it returns.
func (p *Problem) Search() (map[z.Var]bool, bool) {
	s := p.StartSnapshot()
	if p.search(0) {
		p.Commit(s)
		return p.Assignment(), true
	}
	p.RollbackTo(s)
	return nil, false
}

func (p *Problem) search(i int) bool {
	if !p.Consistent() {
		return false
	}
	for i < len(p.vars) {
		if _, ok := p.assign[p.vars[i].Var()]; !ok {
			break
		}
		i++
	}
	if i == len(p.vars) {
		return true
	}
	m := p.vars[i]
	for _, d := range [2]z.Lit{m, m.Not()} {
		p.stats.Decisions++
		s := p.StartSnapshot()
		p.Assign(d)
		if p.search(i + 1) {
			p.Commit(s)
			return true
		}
		p.RollbackTo(s)
	}
	return false
}
