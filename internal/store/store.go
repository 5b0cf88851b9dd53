// Package store implements the server's shared in-memory keyspaces: a
// string keyspace, a hash keyspace, and a set keyspace, partitioned into
// fixed shards so unrelated keys are never serialized behind one lock.
package store

import (
	"context"

	"github.com/marmos91/respkv/internal/resp"
)

// DefaultShardCount is used by New when the caller does not override it.
// A power of two keeps shardIndex's masking exact.
const DefaultShardCount = 32

// Store is the set of concurrent string/hash/set keyspaces shared by every
// connection. All methods are safe for concurrent use; the store is
// intended to be held by reference and passed to every connection task.
type Store struct {
	shards []*shard
	mask   uint64
}

// New builds a Store with shardCount shards, rounded up to the next power
// of two. shardCount <= 0 selects DefaultShardCount.
func New(shardCount int) *Store {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	n := nextPowerOfTwo(shardCount)

	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = newShard()
	}
	return &Store{shards: shards, mask: uint64(n - 1)}
}

func (s *Store) shardFor(key string) *shard {
	return s.shards[shardIndex(key, s.mask)]
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Get returns the string-keyspace value stored at key, if any.
func (s *Store) Get(ctx context.Context, key string) (resp.Frame, bool) {
	if err := ctx.Err(); err != nil {
		return resp.Frame{}, false
	}
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	v, ok := sh.strings[key]
	return v, ok
}

// Set overwrites the string-keyspace value stored at key.
func (s *Store) Set(ctx context.Context, key string, value resp.Frame) {
	if err := ctx.Err(); err != nil {
		return
	}
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.strings[key] = value
}

// HGet returns a single field from the hash stored at key.
func (s *Store) HGet(ctx context.Context, key, field string) (resp.Frame, bool) {
	if err := ctx.Err(); err != nil {
		return resp.Frame{}, false
	}
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	inner, ok := sh.hashes[key]
	if !ok {
		return resp.Frame{}, false
	}
	v, ok := inner[field]
	return v, ok
}

// HSet creates the hash at key if absent and sets field within it.
func (s *Store) HSet(ctx context.Context, key, field string, value resp.Frame) {
	if err := ctx.Err(); err != nil {
		return
	}
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	inner, ok := sh.hashes[key]
	if !ok {
		inner = make(map[string]resp.Frame)
		sh.hashes[key] = inner
	}
	inner[field] = value
}

// HGetAll returns a copy of the entire hash stored at key.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]resp.Frame, bool) {
	if err := ctx.Err(); err != nil {
		return nil, false
	}
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	inner, ok := sh.hashes[key]
	if !ok {
		return nil, false
	}
	out := make(map[string]resp.Frame, len(inner))
	for k, v := range inner {
		out[k] = v
	}
	return out, true
}

// HMGet returns one frame per requested field, in order. A missing outer
// key or inner field yields resp.NewNullBulkString() at that position.
func (s *Store) HMGet(ctx context.Context, key string, fields []string) []resp.Frame {
	out := make([]resp.Frame, len(fields))
	for i := range out {
		out[i] = resp.NewNullBulkString()
	}
	if err := ctx.Err(); err != nil {
		return out
	}

	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	inner, ok := sh.hashes[key]
	if !ok {
		return out
	}
	for i, field := range fields {
		if v, ok := inner[field]; ok {
			out[i] = v
		}
	}
	return out
}

// SAdd inserts member into the set stored at key, returning 1 if it was
// newly inserted and 0 if it was already a member. The membership check
// and the insert happen under the same write lock, so two concurrent
// SAdd calls for the same key and member can never both report 1.
func (s *Store) SAdd(ctx context.Context, key string, member resp.Frame) int64 {
	if err := ctx.Err(); err != nil {
		return 0
	}
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	set, ok := sh.sets[key]
	if !ok {
		set = resp.NewSet()
	}
	before := set.Len()
	set = resp.NewSet(append(set.Members(), member)...)
	sh.sets[key] = set
	if set.Len() > before {
		return 1
	}
	return 0
}

// SIsMember reports whether member is present in the set stored at key.
func (s *Store) SIsMember(ctx context.Context, key string, member resp.Frame) int64 {
	if err := ctx.Err(); err != nil {
		return 0
	}
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	set, ok := sh.sets[key]
	if !ok {
		return 0
	}
	for _, m := range set.Members() {
		if resp.Equal(m, member) {
			return 1
		}
	}
	return 0
}
