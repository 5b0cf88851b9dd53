package store

import (
	"hash/fnv"
	"sync"

	"github.com/marmos91/respkv/internal/resp"
)

// shard owns one partition of every keyspace, guarded by its own lock so
// unrelated keys in different shards never contend.
type shard struct {
	mu sync.RWMutex

	strings map[string]resp.Frame
	hashes  map[string]map[string]resp.Frame
	sets    map[string]resp.Frame // always Kind == resp.KindSet
}

func newShard() *shard {
	return &shard{
		strings: make(map[string]resp.Frame),
		hashes:  make(map[string]map[string]resp.Frame),
		sets:    make(map[string]resp.Frame),
	}
}

// shardIndex hashes key with FNV-1a and masks it down to one of count
// shards, where count is a power of two.
func shardIndex(key string, mask uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64() & mask
}
