// Package coset implements Todd–Coxeter coset enumeration: given a finite
// presentation of a group G and a finitely generated subgroup H, it computes
// the index [G:H] and the full right-coset table describing the action of
// every generator on every coset.
//
// # Architecture
//
// The central structure is [Table], a partial function from (coset,
// generator) to coset stored as one row per coset, with an embedded
// union–find over coset ids. Rows discovered to denote the same coset are
// merged transparently; a "collision" when defining a table entry is never
// an overwrite, it is a unification of the two targets. Merging two rows can
// expose further collisions column by column, so pending unifications are
// processed through an explicit worklist rather than recursion.
//
// Around the table, coset equations track partially processed relator and
// subgroup-word instances: an equation asserts that applying a window of a
// word to one coset reaches another. Equations shrink from both ends as
// table entries become known and are discharged as elementary deductions
// (coset · generator = coset) once at most one generator remains. [Enumerate]
// alternates between allocating a coset to fill the oldest undefined table
// cell and driving all equations to a fixed point, until every live row is
// total.
//
// # Termination
//
// Enumeration is a semi-decision procedure: it terminates exactly when
// [G:H] is finite. Callers must bound runs on presentations they do not
// trust via [Options.MaxCosets] or context cancellation; a breached bound
// reports [ErrCosetLimit], an inconclusive outcome rather than an answer.
//
// The package is synchronous and single-threaded; a Table must not be
// shared between goroutines without external locking.
package coset
