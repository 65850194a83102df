package coset

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/igarnier/cosetta/pkg/group"
)

// ErrCosetLimit is returned by [Enumerate] when the MaxCosets bound is
// breached. It means the run was inconclusive, not that the presentation is
// bad: the index may be finite but larger than the bound, or infinite.
var ErrCosetLimit = errors.New("coset limit exceeded")

// ProgressInfo carries enumeration counters for progress reporting.
type ProgressInfo struct {
	Allocated int // total cosets ever allocated
	Live      int // current live classes
}

// Options configures a single enumeration run.
type Options struct {
	// MaxCosets bounds the total number of cosets ever allocated.
	// Enumeration of an infinite-index presentation never terminates on its
	// own, so untrusted presentations should always carry a bound. 0 means
	// unbounded.
	MaxCosets int

	// Logger receives debug-level trace output. Defaults to log.Default().
	Logger *log.Logger

	// Progress, if non-nil, is called after every allocation-and-closure
	// round with the current counters. It runs on the enumerating goroutine
	// and should return quickly.
	Progress func(ProgressInfo)
}

// Result holds a completed enumeration: the closed coset table and the
// alphabet it is indexed by. Every live row is total.
type Result struct {
	Table    *Table
	Alphabet *group.Alphabet
	pres     group.Presentation
}

// Index returns the subgroup index [G:H], the number of live cosets.
func (r *Result) Index() int { return r.Table.Live() }

// Enumerate runs Todd–Coxeter coset enumeration for the compiled
// presentation: the group generated by p's alphabet modulo its relators,
// against the subgroup generated by p's subgroup words.
//
// The driver allocates the identity coset, seeds its relator equations and
// the subgroup equations, and then repeatedly fills the oldest undefined
// table cell with a fresh coset, defining the entry in both directions and
// driving all equations to a fixed point before looking for the next hole.
// It terminates when every live row is total; the result's Index is [G:H].
//
// Enumerate returns ErrCosetLimit when opts.MaxCosets is breached and the
// context error when ctx is cancelled. In both cases no table is returned:
// a partial table is not a meaningful answer.
func Enumerate(ctx context.Context, p *group.Compiled, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	t := NewTable(p.Alphabet.Width())
	relators := newEquationStore(p.Relators)
	subgroup := newEquationStore(p.Subgroup)

	identity := t.Allocate()
	relators.seed(identity)
	subgroup.seed(identity)
	simplifyToFixedPoint(t, relators, subgroup)

	fill := identity
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("enumeration aborted: %w", ctx.Err())
		default:
		}

		c, g, ok := t.nextUndefined(&fill)
		if !ok {
			break
		}

		if opts.MaxCosets > 0 && t.Allocated() >= opts.MaxCosets {
			return nil, fmt.Errorf("%w: %d cosets allocated without closing the table",
				ErrCosetLimit, t.Allocated())
		}

		d := t.Allocate()
		relators.seed(d)
		t.Define(c, g, d)
		t.Define(d, g.Inverse(), c)
		simplifyToFixedPoint(t, relators, subgroup)

		if opts.Progress != nil {
			opts.Progress(ProgressInfo{Allocated: t.Allocated(), Live: t.Live()})
		}
	}

	if n := relators.pending() + subgroup.pending(); n != 0 {
		panic(fmt.Sprintf("coset: internal error: table closed with %d equations pending", n))
	}

	logger.Debug("enumeration complete",
		"index", t.Live(),
		"allocated", t.Allocated())

	return &Result{Table: t, Alphabet: p.Alphabet, pres: p.Source()}, nil
}
