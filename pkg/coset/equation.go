package coset

import (
	"github.com/igarnier/cosetta/pkg/group"
)

// equation asserts that applying the window w[left:right) of its backing
// word to coset lhs reaches coset rhs. Equations for the same word share one
// immutable backing slice; only the window bounds and endpoint cosets move.
type equation struct {
	word        int // index into the store's backing words
	left, right int32
	lhs, rhs    Coset
}

// equationStore holds the live equations derived from one family of words
// (all relators, or all subgroup generator words).
type equationStore struct {
	words []group.Word
	eqs   []equation
}

func newEquationStore(words []group.Word) *equationStore {
	return &equationStore{words: words}
}

// seed adds one equation per backing word, anchored at c: the word fixes c,
// so c · w = c. Relator families are seeded for every allocated coset;
// subgroup words are seeded once, at the identity coset.
func (s *equationStore) seed(c Coset) {
	for i, w := range s.words {
		s.eqs = append(s.eqs, equation{
			word:  i,
			left:  0,
			right: int32(len(w)),
			lhs:   c,
			rhs:   c,
		})
	}
}

func (s *equationStore) pending() int { return len(s.eqs) }
