package group

import (
	"errors"
	"slices"
	"testing"
)

func TestNewAlphabet_DenseIDs(t *testing.T) {
	a, err := NewAlphabet([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Size() != 3 {
		t.Errorf("expected size 3, got %d", a.Size())
	}
	if a.Width() != 6 {
		t.Errorf("expected width 6, got %d", a.Width())
	}

	for i, name := range []string{"a", "b", "c"} {
		g, ok := a.Gen(name)
		if !ok {
			t.Fatalf("generator %q not found", name)
		}
		if g != Gen(2*i) {
			t.Errorf("generator %q: expected id %d, got %d", name, 2*i, g)
		}
	}
}

func TestGen_InverseIsXOR(t *testing.T) {
	for g := Gen(0); g < 8; g++ {
		if g.Inverse() != g^1 {
			t.Errorf("inverse of %d: expected %d, got %d", g, g^1, g.Inverse())
		}
		if g.Inverse().Inverse() != g {
			t.Errorf("double inverse of %d is not the identity", g)
		}
		if g.Inverse().Abstract() != g.Abstract() {
			t.Errorf("inverse of %d changed abstract generator", g)
		}
	}
}

func TestNewAlphabet_Errors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  error
	}{
		{"empty list", nil, ErrNoGenerators},
		{"empty name", []string{"a", ""}, ErrInvalidGenerator},
		{"leading digit", []string{"1a"}, ErrInvalidGenerator},
		{"punctuation", []string{"a-b"}, ErrInvalidGenerator},
		{"duplicate", []string{"a", "b", "a"}, ErrDuplicateGenerator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAlphabet(tt.names)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestWord_Inverse(t *testing.T) {
	a, _ := NewAlphabet([]string{"x", "y"})
	w, err := a.ParseWord("x*y^-1*x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := w.Inverse()
	want, _ := a.ParseWord("x^-1*y*x^-1")
	if !slices.Equal(inv, want) {
		t.Errorf("expected %v, got %v", want, inv)
	}

	if !slices.Equal(inv.Inverse(), w) {
		t.Errorf("double inverse is not the original word")
	}
}

func TestAlphabet_Spell(t *testing.T) {
	a, _ := NewAlphabet([]string{"a", "b"})
	w, _ := a.ParseWord("a*b^-1*a^2")

	if got := a.Spell(w); got != "a*b^-1*a*a" {
		t.Errorf("expected %q, got %q", "a*b^-1*a*a", got)
	}
	if got := a.Spell(nil); got != "1" {
		t.Errorf("expected empty word to spell %q, got %q", "1", got)
	}
}
