// Package catalog persists finished enumerations in MongoDB.
//
// The catalog is the server's long-term record: every enumeration that
// closes gets an entry keyed by the hash of its canonical presentation, so
// repeated requests for the same group resolve without re-running the
// enumeration and past runs stay browsable via the CLI and the HTTP API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/igarnier/cosetta/pkg/cache"
	"github.com/igarnier/cosetta/pkg/coset"
)

// ErrNotFound is returned when no entry matches the query.
var ErrNotFound = errors.New("not found")

// Entry is one recorded enumeration.
type Entry struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Hash       string    `bson:"hash" json:"hash"`
	Generators []string  `bson:"generators" json:"generators"`
	Relators   []string  `bson:"relators" json:"relators"`
	Subgroup   []string  `bson:"subgroup,omitempty" json:"subgroup,omitempty"`
	Index      int       `bson:"index" json:"index"`
	Allocated  int       `bson:"allocated" json:"allocated"`
	Action     [][]int   `bson:"action" json:"action"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// NewEntry builds a catalog entry from a finished enumeration. The hash is
// the SHA-256 of the canonical presentation, the same value the cache keys
// tables by.
func NewEntry(s *coset.Snapshot, canonical []byte) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Name:       s.Name,
		Hash:       cache.Hash(canonical),
		Generators: s.Generators,
		Relators:   s.Relators,
		Subgroup:   s.Subgroup,
		Index:      s.Index,
		Allocated:  s.Allocated,
		Action:     s.Action,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store is a MongoDB-backed catalog.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a catalog store. The URI is a standard MongoDB connection
// string (mongodb://host:port). The connection is verified before returning
// and the hash index is created if it doesn't exist.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}

	coll := client.Database(database).Collection("enumerations")
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hash", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Store{client: client, coll: coll}, nil
}

// Save records an entry, replacing any previous entry with the same
// presentation hash. Transient failures are retried with backoff.
func (s *Store) Save(ctx context.Context, e Entry) error {
	return cache.RetryWithBackoff(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx,
			bson.M{"hash": e.Hash},
			e,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return cache.Retryable(fmt.Errorf("save entry: %w", err))
		}
		return nil
	})
}

// FindByHash returns the entry for a presentation hash.
func (s *Store) FindByHash(ctx context.Context, hash string) (*Entry, error) {
	var e Entry
	err := s.coll.FindOne(ctx, bson.M{"hash": hash}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return &e, nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

// Delete removes the entry for a presentation hash.
func (s *Store) Delete(ctx context.Context, hash string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"hash": hash})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
