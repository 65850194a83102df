package coset

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/igarnier/cosetta/pkg/group"
)

// Snapshot is the serializable form of a completed enumeration. Live cosets
// are renumbered densely, in ascending order of their canonical ids, so the
// identity coset is always 0 and the table is independent of how many
// intermediate cosets the run allocated and merged away.
type Snapshot struct {
	Name       string   `json:"name,omitempty"`
	Generators []string `json:"generators"`
	Relators   []string `json:"relators"`
	Subgroup   []string `json:"subgroup,omitempty"`

	// Index is the subgroup index [G:H], the number of rows in Action.
	Index int `json:"index"`
	// Allocated is the total number of cosets the run allocated, merged
	// ones included. A measure of enumeration effort, not of the answer.
	Allocated int `json:"allocated"`
	// Action[c][g] is the coset reached from coset c under concrete
	// generator g (even ids are generators, odd ids their inverses).
	Action [][]int `json:"action"`
}

// Snapshot renders the result into its serializable form.
func (r *Result) Snapshot() *Snapshot {
	roots := r.Table.Roots()
	dense := make(map[Coset]int, len(roots))
	for i, c := range roots {
		dense[c] = i
	}

	action := make([][]int, len(roots))
	for i, c := range roots {
		row := r.Table.row(c)
		out := make([]int, len(row))
		for g, d := range row {
			out[g] = dense[r.Table.Canon(d)]
		}
		action[i] = out
	}

	return &Snapshot{
		Name:       r.pres.Name,
		Generators: r.Alphabet.Names(),
		Relators:   r.pres.Relators,
		Subgroup:   r.pres.Subgroup,
		Index:      len(roots),
		Allocated:  r.Table.Allocated(),
		Action:     action,
	}
}

// Act returns the coset reached from coset c under the generator with the
// given concrete id.
func (s *Snapshot) Act(c int, g group.Gen) int { return s.Action[c][g] }

// Format writes the coset table as an aligned text listing, one row per
// coset with a column per concrete generator. This is a diagnostic
// rendering; the algorithmic output is the Action matrix itself.
func (s *Snapshot) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "coset")
	for g := range 2 * len(s.Generators) {
		name := s.Generators[g>>1]
		if g&1 == 1 {
			name += "^-1"
		}
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)

	for c, row := range s.Action {
		fmt.Fprintf(tw, "%d", c)
		for _, d := range row {
			fmt.Fprintf(tw, "\t%d", d)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// String returns the Format rendering as a string.
func (s *Snapshot) String() string {
	var b strings.Builder
	_ = s.Format(&b)
	return b.String()
}
