package schreier

import (
	"context"
	"strings"
	"testing"

	"github.com/igarnier/cosetta/pkg/coset"
	"github.com/igarnier/cosetta/pkg/group"
)

func z3Snapshot(t *testing.T) *coset.Snapshot {
	t.Helper()
	p := group.Presentation{
		Name:       "Z3",
		Generators: []string{"a"},
		Relators:   []string{"a^3"},
	}
	compiled, err := p.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r, err := coset.Enumerate(context.Background(), compiled, coset.Options{})
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	return r.Snapshot()
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(z3Snapshot(t), Options{})

	for _, want := range []string{
		"digraph schreier",
		`label="Z3"`,
		`"0" [shape=doublecircle]`,
		`"0" -> "1"`,
		`"1" -> "2"`,
		`"2" -> "0"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	if strings.Contains(dot, `label="a"`) {
		t.Error("edge labels present without Labels option")
	}
}

func TestToDOT_Labels(t *testing.T) {
	dot := ToDOT(z3Snapshot(t), Options{Labels: true})
	if !strings.Contains(dot, `label="a"`) {
		t.Errorf("expected labeled edges:\n%s", dot)
	}
}

func TestToDOT_OneEdgePerGeneratorPerCoset(t *testing.T) {
	dot := ToDOT(z3Snapshot(t), Options{})
	if got := strings.Count(dot, "->"); got != 3 {
		t.Errorf("expected 3 edges, got %d:\n%s", got, dot)
	}
}
