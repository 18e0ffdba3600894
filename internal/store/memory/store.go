// Package memory is a RecordStore that keeps the collection in process. It
// backs the tests and the memory backend used for local development.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"countries-inquiry-service/internal/query"
	"countries-inquiry-service/internal/store/inproc"
)

type Store struct {
	mu      sync.RWMutex
	docs    []query.Document
	matcher inproc.Matcher
}

// New returns a store holding docs in the given order. Records without an
// _id are assigned a UUID.
func New(docs ...query.Document) *Store {
	s := &Store{matcher: inproc.Matcher{IDs: inproc.MatchUUID}}
	s.docs = withIDs(docs)
	return s
}

func (s *Store) snapshot() []query.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs
}

func (s *Store) Find(ctx context.Context, opts query.FindOptions) ([]query.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.matcher.Apply(s.snapshot(), opts), nil
}

func (s *Store) Count(ctx context.Context, p query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.matcher.Count(s.snapshot(), p), nil
}

func (s *Store) Distinct(ctx context.Context, path string) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return inproc.Distinct(s.snapshot(), path), nil
}

// NativeID recognizes the UUIDs this store assigns.
func (s *Store) NativeID(v any) (string, bool) {
	return inproc.UUIDString(v)
}

// ReplaceAll swaps the whole collection.
func (s *Store) ReplaceAll(ctx context.Context, docs []query.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fresh := withIDs(docs)
	s.mu.Lock()
	s.docs = fresh
	s.mu.Unlock()
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.ReplaceAll(ctx, nil)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(context.Context) error {
	return nil
}

func withIDs(docs []query.Document) []query.Document {
	out := make([]query.Document, len(docs))
	for i, d := range docs {
		if _, ok := d[query.FieldID]; ok {
			out[i] = d
			continue
		}
		cp := make(query.Document, len(d)+1)
		for k, v := range d {
			cp[k] = v
		}
		cp[query.FieldID] = uuid.New()
		out[i] = cp
	}
	return out
}
