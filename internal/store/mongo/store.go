// Package mongo is the MongoDB RecordStore. Predicates, projections and sorts
// are pushed down to the server; documents come back with ObjectID
// identifiers, which NativeID reports to the normalizer.
package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"countries-inquiry-service/internal/query"
)

type Store struct {
	coll *mongo.Collection
}

func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Connect opens a client, verifies it and binds the store to one collection.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return New(client.Database(database).Collection(collection)), nil
}

func (s *Store) Find(ctx context.Context, opts query.FindOptions) ([]query.Document, error) {
	findOpts := options.Find()
	if proj := Projection(opts.Projection); proj != nil {
		findOpts.SetProjection(proj)
	}
	if opts.Sort != nil {
		findOpts.SetSort(Sort(*opts.Sort))
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := s.coll.Find(ctx, Compile(opts.Filter), findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	docs := make([]query.Document, len(raw))
	for i, r := range raw {
		docs[i] = plain(r).(map[string]any)
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, p query.Predicate) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, Compile(p))
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

func (s *Store) Distinct(ctx context.Context, path string) ([]any, error) {
	values, err := s.coll.Distinct(ctx, path, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch distinct %s: %w", path, err)
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		out = append(out, plain(v))
	}
	return out, nil
}

// NativeID reports ObjectIDs as their hex form.
func (s *Store) NativeID(v any) (string, bool) {
	oid, ok := v.(primitive.ObjectID)
	if !ok {
		return "", false
	}
	return oid.Hex(), true
}

// ReplaceAll inserts docs into a staging collection of its own and renames it
// over the live collection, dropping the old one. Documents without an _id get
// an ObjectID from the server. An empty docs drops the live collection.
func (s *Store) ReplaceAll(ctx context.Context, docs []query.Document) error {
	if len(docs) == 0 {
		if err := s.coll.Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop records: %w", err)
		}
		return nil
	}

	db := s.coll.Database()
	staging := db.Collection(fmt.Sprintf("%s_loading_%s", s.coll.Name(), uuid.NewString()))

	batch := make([]interface{}, len(docs))
	for i, d := range docs {
		batch[i] = d
	}
	if _, err := staging.InsertMany(ctx, batch); err != nil {
		_ = staging.Drop(context.WithoutCancel(ctx))
		return fmt.Errorf("failed to insert records: %w", err)
	}

	rename := bson.D{
		{Key: "renameCollection", Value: db.Name() + "." + staging.Name()},
		{Key: "to", Value: db.Name() + "." + s.coll.Name()},
		{Key: "dropTarget", Value: true},
	}
	if err := db.Client().Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		_ = staging.Drop(context.WithoutCancel(ctx))
		return fmt.Errorf("failed to publish records: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.coll.Database().Client().Disconnect(ctx)
}

// plain rewrites the driver's document and array types into the plain maps
// and slices the rest of the engine works with.
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = plain(x)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = plain(x)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = plain(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = plain(x)
		}
		return out
	default:
		return v
	}
}
