// Package db defines the storage contract of the external vector index: FT
// index lifecycle, hash writes, KNN search and a small TTL key-value space
// used by the embedding cache.
package db

import (
	"context"
	"time"
)

// Store is everything roadbook needs from a Redis-compatible search server.
type Store interface {
	Pinger
	HashWriter
	KVStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem is one hash written by HSetMulti.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashWriter stores documents as hashes picked up by FT indexes.
type HashWriter interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
}

// KVStore is a byte-valued key space with expiry.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}
