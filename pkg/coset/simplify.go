package coset

import (
	"github.com/igarnier/cosetta/pkg/group"
)

// simplify trims e from both ends using known table entries: as long as the
// window is non-empty it resolves the first generator forward from lhs, then
// the inverse of the last generator backward from rhs, stopping when neither
// end makes progress. Each resolved generator shrinks the window by one, so
// an equation over a fully resolvable word reaches minimality in at most
// len(word) steps. Reports whether the equation became minimal (window of at
// most one generator) and whether anything changed.
func simplify(t *Table, e *equation, w group.Word) (minimal, changed bool) {
	for e.right > e.left {
		if d, ok := t.Lookup(e.lhs, w[e.left]); ok {
			e.lhs = d
			e.left++
			changed = true
			continue
		}
		if d, ok := t.Lookup(e.rhs, w[e.right-1].Inverse()); ok {
			e.rhs = d
			e.right--
			changed = true
			continue
		}
		break
	}
	return e.right-e.left <= 1, changed
}

// discharge installs a minimal equation as a table deduction. An empty
// window means lhs and rhs denote the same coset; a single remaining
// generator g yields the elementary fact lhs·g = rhs, installed in both
// directions so the row symmetry invariant holds after every discharge.
func discharge(t *Table, e *equation, w group.Word) {
	if e.right == e.left {
		t.Union(e.lhs, e.rhs)
		return
	}
	g := w[e.left]
	t.Define(e.lhs, g, e.rhs)
	t.Define(e.rhs, g.Inverse(), e.lhs)
}

// simplifyPass runs simplify over every live equation once, discharging the
// ones that became minimal. Reports whether any equation changed or was
// discharged.
func (s *equationStore) simplifyPass(t *Table) bool {
	changed := false
	kept := s.eqs[:0]
	for i := range s.eqs {
		e := s.eqs[i]
		w := s.words[e.word]
		minimal, ch := simplify(t, &e, w)
		if minimal {
			discharge(t, &e, w)
			changed = true
			continue
		}
		if ch {
			changed = true
		}
		kept = append(kept, e)
	}
	s.eqs = kept
	return changed
}

// simplifyToFixedPoint drives all equation stores to quiescence: passes
// repeat while any equation shrank or discharged in the previous pass, and
// stop on the first pass that changes nothing. Discharges feed deductions
// back into the table, which may unify cosets and unlock further trimming
// in the next pass.
func simplifyToFixedPoint(t *Table, stores ...*equationStore) {
	for {
		changed := false
		for _, s := range stores {
			if s.simplifyPass(t) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
