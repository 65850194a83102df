package group

import (
	"encoding/json"
	"fmt"
)

// Presentation is the textual form of a finitely presented group and a
// finitely generated subgroup: generator names plus word expressions.
// This is what manifests, CLI flags, and API requests carry; call Compile
// to obtain the concrete form consumed by the enumeration algorithms.
type Presentation struct {
	Name       string   `json:"name,omitempty"`
	Generators []string `json:"generators"`
	Relators   []string `json:"relators"`
	Subgroup   []string `json:"subgroup,omitempty"`
}

// Compiled is a presentation translated to the dense concrete alphabet.
type Compiled struct {
	Alphabet *Alphabet
	Relators []Word
	Subgroup []Word

	source Presentation
}

// Compile validates the presentation and encodes every relator and subgroup
// word against the dense alphabet. All input validation happens here, before
// any enumeration state exists: empty generator lists, bad names, unknown
// generators, and empty relator words are all rejected.
func (p Presentation) Compile() (*Compiled, error) {
	alphabet, err := NewAlphabet(p.Generators)
	if err != nil {
		return nil, err
	}

	c := &Compiled{
		Alphabet: alphabet,
		Relators: make([]Word, 0, len(p.Relators)),
		Subgroup: make([]Word, 0, len(p.Subgroup)),
		source:   p,
	}

	for i, expr := range p.Relators {
		w, err := alphabet.ParseWord(expr)
		if err != nil {
			return nil, fmt.Errorf("relator %d: %w", i, err)
		}
		if len(w) == 0 {
			return nil, fmt.Errorf("relator %d (%q): %w", i, expr, ErrEmptyRelator)
		}
		c.Relators = append(c.Relators, w)
	}

	for i, expr := range p.Subgroup {
		w, err := alphabet.ParseWord(expr)
		if err != nil {
			return nil, fmt.Errorf("subgroup word %d: %w", i, err)
		}
		// An empty subgroup word generates the identity; drop it.
		if len(w) == 0 {
			continue
		}
		c.Subgroup = append(c.Subgroup, w)
	}

	return c, nil
}

// Source returns the presentation this compiled form was built from.
func (c *Compiled) Source() Presentation { return c.source }

// CanonicalBytes returns a canonical byte encoding of the compiled
// presentation, suitable for content-addressed cache keys. Two textually
// different but token-identical presentations (e.g. relators "a^2" and
// "a*a") produce the same encoding because words are spelled back from
// their compiled form.
func (c *Compiled) CanonicalBytes() []byte {
	canon := struct {
		Generators []string `json:"generators"`
		Relators   []string `json:"relators"`
		Subgroup   []string `json:"subgroup"`
	}{
		Generators: c.Alphabet.Names(),
		Relators:   make([]string, len(c.Relators)),
		Subgroup:   make([]string, len(c.Subgroup)),
	}
	for i, w := range c.Relators {
		canon.Relators[i] = c.Alphabet.Spell(w)
	}
	for i, w := range c.Subgroup {
		canon.Subgroup[i] = c.Alphabet.Spell(w)
	}
	data, _ := json.Marshal(canon)
	return data
}
