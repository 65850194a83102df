package coset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/igarnier/cosetta/pkg/group"
)

func compile(t *testing.T, p group.Presentation) *group.Compiled {
	t.Helper()
	c, err := p.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return c
}

func enumerate(t *testing.T, p group.Presentation) *Result {
	t.Helper()
	r, err := Enumerate(context.Background(), compile(t, p), Options{MaxCosets: 10000})
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	return r
}

func TestEnumerate_CyclicOrder3(t *testing.T) {
	r := enumerate(t, group.Presentation{
		Generators: []string{"a"},
		Relators:   []string{"a^3"},
	})

	if r.Index() != 3 {
		t.Fatalf("expected index 3, got %d", r.Index())
	}

	// The table must be a 3-cycle under a.
	snap := r.Snapshot()
	a := group.Gen(0)
	seen := map[int]bool{}
	c := 0
	for range 3 {
		seen[c] = true
		c = snap.Act(c, a)
	}
	if c != 0 || len(seen) != 3 {
		t.Errorf("expected a single 3-cycle under a, visited %v", seen)
	}
}

func TestEnumerate_SymmetricGroupS3(t *testing.T) {
	r := enumerate(t, group.Presentation{
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^2", "(a*b)^3"},
	})

	if r.Index() != 6 {
		t.Errorf("expected index 6, got %d", r.Index())
	}
}

func TestEnumerate_S3ModSubgroup(t *testing.T) {
	r := enumerate(t, group.Presentation{
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^2", "(a*b)^3"},
		Subgroup:   []string{"a"},
	})

	if r.Index() != 3 {
		t.Errorf("expected index 3, got %d", r.Index())
	}
}

func TestEnumerate_KnownIndices(t *testing.T) {
	tests := []struct {
		name string
		p    group.Presentation
		want int
	}{
		{
			"trivial group",
			group.Presentation{Generators: []string{"a"}, Relators: []string{"a"}},
			1,
		},
		{
			"Z6 as direct product",
			group.Presentation{
				Generators: []string{"a", "b"},
				Relators:   []string{"a^2", "b^3", "a*b*a^-1*b^-1"},
			},
			6,
		},
		{
			"dihedral D4",
			group.Presentation{
				Generators: []string{"r", "s"},
				Relators:   []string{"r^4", "s^2", "(r*s)^2"},
			},
			8,
		},
		{
			"quaternion Q8",
			group.Presentation{
				Generators: []string{"i", "j"},
				Relators:   []string{"i^4", "j^2*i^-2", "j^-1*i*j*i"},
			},
			8,
		},
		{
			"S4",
			group.Presentation{
				Generators: []string{"a", "b"},
				Relators:   []string{"a^2", "b^3", "(a*b)^4"},
			},
			24,
		},
		{
			"Z mod 5Z via subgroup only",
			group.Presentation{
				Generators: []string{"a"},
				Subgroup:   []string{"a^5"},
			},
			5,
		},
		{
			"A4 mod Z3 subgroup",
			group.Presentation{
				Generators: []string{"a", "b"},
				Relators:   []string{"a^2", "b^3", "(a*b)^3"},
				Subgroup:   []string{"b"},
			},
			4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := enumerate(t, tt.p)
			if r.Index() != tt.want {
				t.Errorf("expected index %d, got %d", tt.want, r.Index())
			}
			if r.Table.Allocated() < r.Index() {
				t.Errorf("allocated %d below index %d", r.Table.Allocated(), r.Index())
			}
		})
	}
}

func TestEnumerate_RowSymmetry(t *testing.T) {
	r := enumerate(t, group.Presentation{
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^2", "(a*b)^3"},
	})

	snap := r.Snapshot()
	for c := range snap.Index {
		for g := group.Gen(0); int(g) < 2*len(snap.Generators); g++ {
			d := snap.Act(c, g)
			if back := snap.Act(d, g.Inverse()); back != c {
				t.Errorf("symmetry violated: %d·%d = %d but %d·%d = %d",
					c, g, d, d, g.Inverse(), back)
			}
		}
	}
}

func TestEnumerate_CosetLimit(t *testing.T) {
	free := compile(t, group.Presentation{Generators: []string{"a", "b"}})

	_, err := Enumerate(context.Background(), free, Options{MaxCosets: 50})
	if !errors.Is(err, ErrCosetLimit) {
		t.Fatalf("expected ErrCosetLimit, got %v", err)
	}
}

func TestEnumerate_Cancellation(t *testing.T) {
	free := compile(t, group.Presentation{Generators: []string{"a"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Enumerate(ctx, free, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEnumerate_ProgressMonotonicity(t *testing.T) {
	var infos []ProgressInfo
	c := compile(t, group.Presentation{
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^3", "(a*b)^4"},
	})

	_, err := Enumerate(context.Background(), c, Options{
		MaxCosets: 10000,
		Progress:  func(info ProgressInfo) { infos = append(infos, info) },
	})
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}

	for i := 1; i < len(infos); i++ {
		if infos[i].Allocated < infos[i-1].Allocated {
			t.Errorf("allocated count decreased at step %d: %d → %d",
				i, infos[i-1].Allocated, infos[i].Allocated)
		}
		if infos[i].Live > infos[i].Allocated {
			t.Errorf("live %d exceeds allocated %d at step %d",
				infos[i].Live, infos[i].Allocated, i)
		}
	}
	t.Logf("progress samples: %d, final: %+v", len(infos), infos[len(infos)-1])
}

func TestSnapshot_Rendering(t *testing.T) {
	r := enumerate(t, group.Presentation{
		Name:       "Z3",
		Generators: []string{"a"},
		Relators:   []string{"a^3"},
	})

	snap := r.Snapshot()
	if snap.Name != "Z3" || snap.Index != 3 || len(snap.Action) != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	out := snap.String()
	if !strings.Contains(out, "coset") || !strings.Contains(out, "a^-1") {
		t.Errorf("table rendering missing headers:\n%s", out)
	}
	t.Logf("table:\n%s", out)
}

func BenchmarkEnumerateS4(b *testing.B) {
	p := group.Presentation{
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^3", "(a*b)^4"},
	}
	c, err := p.Compile()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		if _, err := Enumerate(context.Background(), c, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
