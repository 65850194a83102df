package group

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// Word expression grammar. Factors are generators or parenthesized
// sub-words, optionally raised to an integer power; '*' between factors is
// optional. "a^-1" is the formal inverse, "a^0" the empty word.
type wordExpr struct {
	Factors []*factorExpr `parser:"@@ ( \"*\"? @@ )*"`
}

type factorExpr struct {
	Base *baseExpr `parser:"@@"`
	Exp  *expExpr  `parser:"( \"^\" @@ )?"`
}

type expExpr struct {
	Neg   bool `parser:"@\"-\"?"`
	Value int  `parser:"@Int"`
}

type baseExpr struct {
	Name string    `parser:"  @Ident"`
	Sub  *wordExpr `parser:"| \"(\" @@ \")\""`
}

var wordParser = participle.MustBuild[wordExpr]()

// ParseWord parses a word expression against the alphabet and returns the
// encoded word. Unknown generator names yield ErrUnknownGenerator; malformed
// expressions yield a participle parse error. An expression denoting the
// empty word (e.g. "a^0") returns an empty Word and no error.
func (a *Alphabet) ParseWord(expr string) (Word, error) {
	ast, err := wordParser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("parse word %q: %w", expr, err)
	}
	w, err := a.compileWord(ast)
	if err != nil {
		return nil, fmt.Errorf("word %q: %w", expr, err)
	}
	return w, nil
}

func (a *Alphabet) compileWord(e *wordExpr) (Word, error) {
	var w Word
	for _, f := range e.Factors {
		fw, err := a.compileFactor(f)
		if err != nil {
			return nil, err
		}
		w = append(w, fw...)
	}
	return w, nil
}

func (a *Alphabet) compileFactor(f *factorExpr) (Word, error) {
	base, err := a.compileBase(f.Base)
	if err != nil {
		return nil, err
	}

	exp := 1
	if f.Exp != nil {
		exp = f.Exp.Value
		if f.Exp.Neg {
			exp = -exp
		}
	}
	if exp < 0 {
		base = base.Inverse()
		exp = -exp
	}

	w := make(Word, 0, len(base)*exp)
	for range exp {
		w = append(w, base...)
	}
	return w, nil
}

func (a *Alphabet) compileBase(b *baseExpr) (Word, error) {
	if b.Sub != nil {
		return a.compileWord(b.Sub)
	}
	g, ok := a.Gen(b.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, b.Name)
	}
	return Word{g}, nil
}
