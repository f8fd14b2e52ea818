// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nats-io/nats.go/jetstream"
)

// ensure KVStore implements Store at compile time.
var _ Store = (*KVStore)(nil)

// marshalJSON is swapped in tests.
var marshalJSON = json.Marshal

// KVStore implements Store backed by a NATS JetStream KeyValue bucket.
// Entry IDs are UUIDv7 so key order is time order.
type KVStore struct {
	kv     jetstream.KeyValue
	logger *slog.Logger
}

// NewKVStore creates a new KVStore.
func NewKVStore(
	logger *slog.Logger,
	kv jetstream.KeyValue,
) *KVStore {
	return &KVStore{
		kv:     kv,
		logger: logger,
	}
}

// Write persists an entry to the KV bucket.
func (s *KVStore) Write(
	ctx context.Context,
	entry Entry,
) error {
	data, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	if _, err := s.kv.Put(ctx, entry.ID, data); err != nil {
		return fmt.Errorf("put audit entry: %w", err)
	}

	return nil
}

// Get retrieves a single entry by ID.
func (s *KVStore) Get(
	ctx context.Context,
	id string,
) (*Entry, error) {
	kve, err := s.kv.Get(ctx, id)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("get audit entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(kve.Value(), &entry); err != nil {
		return nil, fmt.Errorf("unmarshal audit entry: %w", err)
	}

	return &entry, nil
}

// List retrieves entries newest first with pagination.
func (s *KVStore) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]Entry, int, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := len(keys)

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	if offset >= total {
		return []Entry{}, total, nil
	}

	end := min(offset+limit, total)

	entries := make([]Entry, 0, end-offset)
	for _, key := range keys[offset:end] {
		kve, err := s.kv.Get(ctx, key)
		if err != nil {
			s.logger.Warn(
				"failed to get audit entry",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		var entry Entry
		if err := json.Unmarshal(kve.Value(), &entry); err != nil {
			s.logger.Warn(
				"failed to unmarshal audit entry",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		entries = append(entries, entry)
	}

	return entries, total, nil
}

// Ping reads the bucket status.
func (s *KVStore) Ping(
	ctx context.Context,
) error {
	if _, err := s.kv.Status(ctx); err != nil {
		return fmt.Errorf("audit bucket status: %w", err)
	}

	return nil
}

func (s *KVStore) keys(
	ctx context.Context,
) ([]string, error) {
	lister, err := s.kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list audit keys: %w", err)
	}
	defer func() { _ = lister.Stop() }()

	keys := make([]string, 0)
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	return keys, nil
}
