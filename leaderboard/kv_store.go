package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// DefaultBucket is the JetStream key-value bucket holding leaderboards
	DefaultBucket = "VI_INVADERS"

	// DefaultKey is the key of the shared leaderboard inside the bucket
	DefaultKey = "leaderboard"

	maxUpdateAttempts = 5
)

// KVStore persists the leaderboard in a NATS JetStream key-value bucket
// Update uses the entry revision as an optimistic lock so concurrent
// writers from several hosts never lose each other's entries
type KVStore struct {
	kv  jetstream.KeyValue
	key string
	nc  *nats.Conn // Owned connection, nil when constructed from an existing bucket
}

// NewKVStore wraps an existing bucket
func NewKVStore(kv jetstream.KeyValue, key string) *KVStore {
	if key == "" {
		key = DefaultKey
	}
	return &KVStore{kv: kv, key: key}
}

// ConnectKVStore dials url and opens (or creates) bucket
func ConnectKVStore(ctx context.Context, url, bucket, key string) (*KVStore, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	nc, err := nats.Connect(url, nats.Name("vi-invaders"))
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "vi-invaders leaderboard",
		History:     5,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("open bucket %s: %w", bucket, err)
	}

	s := NewKVStore(kv, key)
	s.nc = nc
	return s, nil
}

// Close releases the owned connection, if any
func (s *KVStore) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}

// Load implements Store; a missing key is an empty leaderboard
func (s *KVStore) Load(ctx context.Context) ([]Entry, error) {
	entries, _, err := s.get(ctx)
	return entries, err
}

// Save implements Store with a blind put
func (s *KVStore) Save(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if _, err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("put %s: %w", s.key, err)
	}
	return nil
}

// Update implements Updater with revision-checked writes and bounded retries
func (s *KVStore) Update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, revision, err := s.get(ctx)
		if err != nil {
			return nil, err
		}

		next := fn(current)
		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encode leaderboard: %w", err)
		}

		if revision == 0 {
			_, err = s.kv.Create(ctx, s.key, data)
		} else {
			_, err = s.kv.Update(ctx, s.key, data, revision)
		}
		if err == nil {
			return next, nil
		}
		if !isRevisionConflict(err) {
			return nil, fmt.Errorf("update %s: %w", s.key, err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("update %s: too many conflicts: %w", s.key, lastErr)
}

func (s *KVStore) get(ctx context.Context) ([]Entry, uint64, error) {
	entry, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("get %s: %w", s.key, err)
	}

	var entries []Entry
	if len(entry.Value()) > 0 {
		if err := json.Unmarshal(entry.Value(), &entries); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", s.key, err)
		}
	}
	return entries, entry.Revision(), nil
}

func isRevisionConflict(err error) bool {
	if errors.Is(err, jetstream.ErrKeyExists) {
		return true
	}
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}
