// Package redis stores the country collection as JSON documents in a Redis
// list. Every read is a single LRANGE, so each scan observes one snapshot of
// the list; filtering, sorting and projection then run in process.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	goredis "github.com/redis/go-redis/v9"

	"countries-inquiry-service/internal/query"
	"countries-inquiry-service/internal/store/inproc"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const batchSize = 1000

type Store struct {
	client      *goredis.Client
	recordsKey  string
	metadataKey string
	matcher     inproc.Matcher
}

// New wraps an already connected client. Keys live under prefix.
func New(client *goredis.Client, prefix string) *Store {
	return &Store{
		client:      client,
		recordsKey:  fmt.Sprintf("%s:records", prefix),
		metadataKey: fmt.Sprintf("%s:import:metadata", prefix),
		matcher:     inproc.Matcher{IDs: inproc.MatchUUID},
	}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, opts *goredis.Options, prefix string) (*Store, error) {
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return New(client, prefix), nil
}

func (s *Store) load(ctx context.Context) ([]query.Document, error) {
	raw, err := s.client.LRange(ctx, s.recordsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	docs := make([]query.Document, 0, len(raw))
	for _, r := range raw {
		var doc query.Document
		if err := json.UnmarshalFromString(r, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		if str, ok := doc[query.FieldID].(string); ok {
			if id, err := uuid.Parse(str); err == nil {
				doc[query.FieldID] = id
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) Find(ctx context.Context, opts query.FindOptions) ([]query.Document, error) {
	docs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.matcher.Apply(docs, opts), nil
}

func (s *Store) Count(ctx context.Context, p query.Predicate) (int64, error) {
	if query.IsMatchAll(p) {
		n, err := s.client.LLen(ctx, s.recordsKey).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to count records: %w", err)
		}
		return n, nil
	}
	docs, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return s.matcher.Count(docs, p), nil
}

func (s *Store) Distinct(ctx context.Context, path string) ([]any, error) {
	docs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return inproc.Distinct(docs, path), nil
}

// NativeID recognizes the UUIDs records are stored under.
func (s *Store) NativeID(v any) (string, bool) {
	return inproc.UUIDString(v)
}

// ReplaceAll writes docs to a staging list of its own in batches and renames
// it over the live list, so readers see either the old or the new collection.
// Concurrent calls never share a staging list; the last rename wins.
func (s *Store) ReplaceAll(ctx context.Context, docs []query.Document) (err error) {
	loadingKey := fmt.Sprintf("%s:loading:%s", s.recordsKey, uuid.NewString())
	defer func() {
		if err != nil {
			_ = s.client.Del(context.WithoutCancel(ctx), loadingKey).Err()
		}
	}()

	pipeline := s.client.Pipeline()
	count := 0
	for _, doc := range docs {
		record := make(query.Document, len(doc)+1)
		for k, v := range doc {
			record[k] = v
		}
		if _, ok := record[query.FieldID]; !ok {
			record[query.FieldID] = uuid.NewString()
		}

		jsonData, err := json.MarshalToString(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		pipeline.RPush(ctx, loadingKey, jsonData)
		count++

		if count%batchSize == 0 {
			if _, err := pipeline.Exec(ctx); err != nil {
				return fmt.Errorf("failed to execute pipeline: %w", err)
			}
			pipeline = s.client.Pipeline()
		}
	}
	if count%batchSize != 0 {
		if _, err := pipeline.Exec(ctx); err != nil {
			return fmt.Errorf("failed to execute final pipeline: %w", err)
		}
	}

	metadata := map[string]interface{}{
		"total_records": count,
		"status":        "completed",
		"timestamp":     time.Now().Unix(),
	}
	metadataJSON, _ := json.Marshal(metadata)

	_, err = s.client.TxPipelined(ctx, func(tx goredis.Pipeliner) error {
		if count == 0 {
			tx.Del(ctx, s.recordsKey)
		} else {
			tx.Rename(ctx, loadingKey, s.recordsKey)
		}
		tx.Set(ctx, s.metadataKey, metadataJSON, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish records: %w", err)
	}
	return nil
}

// Clear removes the collection and its import metadata. Staging lists of
// imports still in flight are left to their owners.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.recordsKey, s.metadataKey).Err(); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close(context.Context) error {
	return s.client.Close()
}
