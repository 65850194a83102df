package group

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoGenerators is returned by [NewAlphabet] and [Presentation.Compile]
	// when the generator list is empty. A presentation needs at least one
	// generator to mean anything.
	ErrNoGenerators = errors.New("presentation has no generators")

	// ErrInvalidGenerator is returned when a generator name is empty or is
	// not a valid identifier (letters, digits, underscores, not starting
	// with a digit).
	ErrInvalidGenerator = errors.New("invalid generator name")

	// ErrDuplicateGenerator is returned when the same name appears twice in
	// the generator list. Generator names must be pairwise distinct.
	ErrDuplicateGenerator = errors.New("duplicate generator")

	// ErrUnknownGenerator is returned when a word references a generator
	// that is not part of the alphabet.
	ErrUnknownGenerator = errors.New("unknown generator")

	// ErrEmptyRelator is returned by [Presentation.Compile] when a relator
	// expression denotes the empty word. Empty relators carry no constraint
	// and almost always indicate a typo in the manifest.
	ErrEmptyRelator = errors.New("empty relator word")
)

// Gen is a concrete generator in the dense alphabet [0, 2k) for k abstract
// generators. Generator i occupies id 2i and its formal inverse id 2i+1, so
// inversion is a single XOR.
type Gen int32

// Inverse returns the formal inverse of g.
func (g Gen) Inverse() Gen { return g ^ 1 }

// IsInverse reports whether g is the formal inverse of an abstract generator.
func (g Gen) IsInverse() bool { return g&1 == 1 }

// Abstract returns the zero-based index of the abstract generator g belongs to.
func (g Gen) Abstract() int { return int(g >> 1) }

// Word is a sequence of concrete generators.
type Word []Gen

// Inverse returns the formal inverse of w: the reversed word with every
// generator inverted. The receiver is not modified.
func (w Word) Inverse() Word {
	inv := make(Word, len(w))
	for i, g := range w {
		inv[len(w)-1-i] = g.Inverse()
	}
	return inv
}

// Alphabet translates between abstract generator names and the dense
// concrete alphabet. It is immutable after construction and safe for
// concurrent use.
type Alphabet struct {
	names []string
	index map[string]Gen // name -> even concrete id
}

// NewAlphabet builds the dense alphabet for the given generator names, in
// declaration order. Returns ErrNoGenerators, ErrInvalidGenerator, or
// ErrDuplicateGenerator on bad input.
func NewAlphabet(names []string) (*Alphabet, error) {
	if len(names) == 0 {
		return nil, ErrNoGenerators
	}
	a := &Alphabet{
		names: make([]string, len(names)),
		index: make(map[string]Gen, len(names)),
	}
	for i, name := range names {
		if !isIdent(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidGenerator, name)
		}
		if _, exists := a.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGenerator, name)
		}
		a.names[i] = name
		a.index[name] = Gen(2 * i)
	}
	return a, nil
}

// Size returns the number of abstract generators k.
func (a *Alphabet) Size() int { return len(a.names) }

// Width returns the concrete alphabet size 2k: one id per generator plus one
// per formal inverse. Coset table rows have exactly this many columns.
func (a *Alphabet) Width() int { return 2 * len(a.names) }

// Gen returns the concrete id of the named generator and true, or 0 and
// false if the name is not part of the alphabet.
func (a *Alphabet) Gen(name string) (Gen, bool) {
	g, ok := a.index[name]
	return g, ok
}

// Names returns the abstract generator names in declaration order.
// The returned slice must not be modified.
func (a *Alphabet) Names() []string { return a.names }

// Name spells a single concrete generator, e.g. "a" or "a^-1".
func (a *Alphabet) Name(g Gen) string {
	name := a.names[g.Abstract()]
	if g.IsInverse() {
		return name + "^-1"
	}
	return name
}

// Spell renders a word as a '*'-joined expression, e.g. "a*b^-1*a".
// The empty word is spelled "1".
func (a *Alphabet) Spell(w Word) string {
	if len(w) == 0 {
		return "1"
	}
	parts := make([]string, len(w))
	for i, g := range w {
		parts[i] = a.Name(g)
	}
	return strings.Join(parts, "*")
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
