package group

import (
	"errors"
	"slices"
	"testing"
)

func TestParseWord_Expressions(t *testing.T) {
	a, err := NewAlphabet([]string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ia, _ := a.Gen("a")
	ib, _ := a.Gen("b")

	tests := []struct {
		expr string
		want Word
	}{
		{"a", Word{ia}},
		{"a^-1", Word{ia.Inverse()}},
		{"a^3", Word{ia, ia, ia}},
		{"a*b", Word{ia, ib}},
		{"a b", Word{ia, ib}},
		{"ab", nil}, // single unknown identifier, handled below
		{"(a*b)^2", Word{ia, ib, ia, ib}},
		{"(a*b)^-1", Word{ib.Inverse(), ia.Inverse()}},
		{"(a*b^-1)^2", Word{ia, ib.Inverse(), ia, ib.Inverse()}},
		{"a^0", Word{}},
		{"a^2*b^2", Word{ia, ia, ib, ib}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			w, err := a.ParseWord(tt.expr)
			if tt.want == nil {
				if !errors.Is(err, ErrUnknownGenerator) {
					t.Fatalf("expected ErrUnknownGenerator, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(w, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, w)
			}
		})
	}
}

func TestParseWord_SyntaxErrors(t *testing.T) {
	a, _ := NewAlphabet([]string{"a", "b"})

	for _, expr := range []string{"", "*a", "a^", "(a", "a^b", "^2"} {
		t.Run(expr, func(t *testing.T) {
			if _, err := a.ParseWord(expr); err == nil {
				t.Errorf("expected parse error for %q", expr)
			}
		})
	}
}

func TestParseWord_NestedGroups(t *testing.T) {
	a, _ := NewAlphabet([]string{"a", "b"})

	w, err := a.ParseWord("((a*b)^2*a)^-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, _ := a.ParseWord("a^-1*(b^-1*a^-1)^2")
	if !slices.Equal(w, want) {
		t.Errorf("expected %v, got %v", want, w)
	}
}
