// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package session

import (
	"context"
	"sync"
	"time"
)

// Storage is the durable key/value store behind the session store. Values
// carry an expiry so stale identities age out without explicit cleanup.
//
// Implementations:
//   - RedisStorage (storage_redis.go)
//   - MemoryStorage (below, used by tests and single-process deployments)
type Storage interface {
	// Get returns the value and whether the key exists and has not expired.
	Get(context context.Context, key string) (string, bool, error)

	// Set writes a value with a time-to-live.
	Set(context context.Context, key string, value string, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(context context.Context, keys ...string) error
}

// # In-memory storage

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage is a process-local Storage with per-key expiry.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]memoryEntry)}
}

func (storage *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	entry, ok := storage.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(storage.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (storage *MemoryStorage) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	storage.entries[key] = entry
	return nil
}

func (storage *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	for _, key := range keys {
		delete(storage.entries, key)
	}
	return nil
}
