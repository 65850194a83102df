package coset

import (
	"github.com/igarnier/cosetta/pkg/group"
)

// Coset is a dense coset identifier, allocated in increasing order starting
// from the identity coset 0. A coset id stays valid after its class merges
// into another; it then resolves through the union–find to a representative.
type Coset int32

// undefined marks a table cell that has not been filled yet.
const undefined Coset = -1

// Table is the coset table: one fixed-width row per allocated coset plus a
// union–find over coset ids. The authoritative row of an equivalence class
// is always stored at the class's minimal coset id, so the canonical row
// stays reachable from that id no matter how union-by-rank shapes the tree.
// Coset 0 anchors the subgroup-generator words, which makes this placement
// rule load-bearing rather than cosmetic.
//
// The zero value is not usable; use NewTable.
type Table struct {
	width  int
	rows   [][]Coset // indexed by coset id; non-nil exactly at each live class's minimal id
	parent []Coset
	rank   []int8
	min    []Coset // per union-find root: minimal coset id in its class
	live   int
	queue  [][2]Coset // pending unifications
}

// NewTable creates an empty table with the given row width (the concrete
// alphabet size 2k). Panics if width is not a positive even number, since
// every generator must sit next to its formal inverse.
func NewTable(width int) *Table {
	if width <= 0 || width%2 != 0 {
		panic("coset: internal error: table width must be positive and even")
	}
	return &Table{width: width}
}

// Width returns the number of generator columns per row.
func (t *Table) Width() int { return t.width }

// Allocated returns the total number of cosets ever allocated, including
// ones that have since merged into others. Non-decreasing.
func (t *Table) Allocated() int { return len(t.parent) }

// Live returns the number of live equivalence classes. Increases by one per
// Allocate and never increases across a unification.
func (t *Table) Live() int { return t.live }

// Allocate creates a fresh coset with an all-undefined row and returns its
// id. Ids are dense and increasing; the first allocation returns the
// identity coset 0.
func (t *Table) Allocate() Coset {
	c := Coset(len(t.parent))
	row := make([]Coset, t.width)
	for i := range row {
		row[i] = undefined
	}
	t.rows = append(t.rows, row)
	t.parent = append(t.parent, c)
	t.rank = append(t.rank, 0)
	t.min = append(t.min, c)
	t.live++
	if len(t.rows) != len(t.parent) || len(t.parent) != len(t.min) {
		panic("coset: internal error: row arena out of sync with union-find")
	}
	return c
}

// Find returns the union-find root of c's class, compressing the path.
func (t *Table) Find(c Coset) Coset {
	root := c
	for t.parent[root] != root {
		root = t.parent[root]
	}
	for t.parent[c] != root {
		c, t.parent[c] = t.parent[c], root
	}
	return root
}

// Canon returns the canonical (minimal) coset id of c's class. Canonical
// ids are the ones that appear in Roots and in lookup results.
func (t *Table) Canon(c Coset) Coset { return t.min[t.Find(c)] }

// Lookup resolves c to its class and returns the canonical coset reached
// from it under g, if that entry is defined.
func (t *Table) Lookup(c Coset, g group.Gen) (Coset, bool) {
	d := t.rows[t.Canon(c)][g]
	if d == undefined {
		return 0, false
	}
	return t.Canon(d), true
}

// Define records the fact c·g = d. If the entry is already defined to a
// coset in a different class, the two targets are unified instead of
// overwritten; direct overwrites never happen. Any unifications this
// triggers are processed to completion before Define returns.
func (t *Table) Define(c Coset, g group.Gen, d Coset) {
	t.set(c, g, d)
	t.drain()
}

// Union unifies the classes of a and b and processes all consequent
// unifications to completion.
func (t *Table) Union(a, b Coset) {
	t.queue = append(t.queue, [2]Coset{a, b})
	t.drain()
}

// Roots returns the canonical ids of all live classes in ascending order.
// Once enumeration completes this is the coset table's row set and its
// length is the index [G:H].
func (t *Table) Roots() []Coset {
	roots := make([]Coset, 0, t.live)
	for c, row := range t.rows {
		if row != nil {
			roots = append(roots, Coset(c))
		}
	}
	return roots
}

// row returns the authoritative row for c's class.
func (t *Table) row(c Coset) []Coset { return t.rows[t.Canon(c)] }

// set is Define without the worklist drain, for use inside merge.
func (t *Table) set(c Coset, g group.Gen, d Coset) {
	row := t.rows[t.Canon(c)]
	cur := row[g]
	switch {
	case cur == undefined:
		row[g] = d
	case t.Find(cur) != t.Find(d):
		t.queue = append(t.queue, [2]Coset{cur, d})
	}
}

// drain processes pending unifications until the worklist empties. Each
// merge reduces the live class count by one, so the loop terminates even
// though a merge may queue further pairs.
func (t *Table) drain() {
	for len(t.queue) > 0 {
		pair := t.queue[len(t.queue)-1]
		t.queue = t.queue[:len(t.queue)-1]
		t.merge(pair[0], pair[1])
	}
}

// merge unifies the classes of a and b. Union by rank governs the tree
// shape; the class containing the smaller minimal coset id keeps its row.
// The two rows are then reconciled entrywise: entries defined on exactly
// one side carry over, entries defined on both sides to different classes
// queue a further unification.
func (t *Table) merge(a, b Coset) {
	ra, rb := t.Find(a), t.Find(b)
	if ra == rb {
		return
	}

	winMin, loseMin := t.min[ra], t.min[rb]
	if loseMin < winMin {
		winMin, loseMin = loseMin, winMin
	}

	switch {
	case t.rank[ra] < t.rank[rb]:
		ra, rb = rb, ra
	case t.rank[ra] == t.rank[rb]:
		t.rank[ra]++
	}
	t.parent[rb] = ra
	t.min[ra] = winMin

	winRow, loseRow := t.rows[winMin], t.rows[loseMin]
	for g := range loseRow {
		d := loseRow[g]
		if d == undefined {
			continue
		}
		switch {
		case winRow[g] == undefined:
			winRow[g] = d
		case t.Find(winRow[g]) != t.Find(d):
			t.queue = append(t.queue, [2]Coset{winRow[g], d})
		}
	}
	t.rows[loseMin] = nil
	t.live--
}

// nextUndefined scans allocated cosets oldest-first from *fill and reports
// the first live coset with an undefined column, advancing the fill pointer
// past aliased and completed rows. Cosets behind the fill pointer stay
// complete forever: merges only ever add entries to a surviving row.
func (t *Table) nextUndefined(fill *Coset) (Coset, group.Gen, bool) {
	for ; int(*fill) < len(t.rows); *fill++ {
		row := t.rows[*fill]
		if row == nil {
			continue
		}
		for g, d := range row {
			if d == undefined {
				return *fill, group.Gen(g), true
			}
		}
	}
	return 0, 0, false
}
