package catalog

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/igarnier/cosetta/pkg/cache"
	"github.com/igarnier/cosetta/pkg/coset"
	"github.com/igarnier/cosetta/pkg/group"
)

func s3Result(t *testing.T) (*coset.Snapshot, []byte) {
	t.Helper()
	p := group.Presentation{
		Name:       "S3",
		Generators: []string{"a", "b"},
		Relators:   []string{"a^2", "b^2", "(a*b)^3"},
	}
	compiled, err := p.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r, err := coset.Enumerate(context.Background(), compiled, coset.Options{})
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	return r.Snapshot(), compiled.CanonicalBytes()
}

func TestNewEntry(t *testing.T) {
	snap, canonical := s3Result(t)
	e := NewEntry(snap, canonical)

	if e.ID == "" {
		t.Error("expected generated entry id")
	}
	if e.Name != "S3" || e.Index != 6 {
		t.Errorf("unexpected entry: name=%q index=%d", e.Name, e.Index)
	}
	if e.Hash != cache.Hash(canonical) {
		t.Errorf("entry hash does not match canonical presentation hash")
	}
	if len(e.Action) != e.Index {
		t.Errorf("expected %d action rows, got %d", e.Index, len(e.Action))
	}
	if e.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}

	// Two entries for the same run share the hash but not the id.
	other := NewEntry(snap, canonical)
	if other.ID == e.ID {
		t.Error("expected fresh id per entry")
	}
	if other.Hash != e.Hash {
		t.Error("expected identical hash for identical presentation")
	}
}

func TestEntryBSONRoundtrip(t *testing.T) {
	snap, canonical := s3Result(t)
	e := NewEntry(snap, canonical)

	data, err := bson.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Entry
	if err := bson.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != e.ID || got.Hash != e.Hash || got.Index != e.Index {
		t.Errorf("roundtrip mismatch: %+v vs %+v", got, e)
	}
	if len(got.Action) != len(e.Action) {
		t.Fatalf("expected %d action rows, got %d", len(e.Action), len(got.Action))
	}
	for c, row := range e.Action {
		for g, d := range row {
			if got.Action[c][g] != d {
				t.Fatalf("action[%d][%d] mismatch: %d vs %d", c, g, got.Action[c][g], d)
			}
		}
	}
}
