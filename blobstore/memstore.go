package blobstore

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Store used by this repository's own tests to
// exercise the orchestrator without filesystem-backed buckets. Objects live
// in memory; Download and Upload still write and read the local paths they
// are given. Keys are scoped per bucket.
type MemStore struct {
	mu      sync.Mutex
	objects map[string]map[string][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string]map[string][]byte)}
}

// Put seeds bucket/key with content, for use in test setup.
func (m *MemStore) Put(bucket, key string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string][]byte)
	}
	m.objects[bucket][key] = content
}

// Get returns the content written to bucket/key, for use in test assertions.
func (m *MemStore) Get(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[bucket][key]
	return b, ok
}

func (m *MemStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.objects[bucket] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemStore) Download(ctx context.Context, bucket, key, localPath string) error {
	m.mu.Lock()
	content, ok := m.objects[bucket][key]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("blobstore: no object %q in bucket %q", key, bucket)
	}
	return os.WriteFile(localPath, content, 0o644)
}

func (m *MemStore) Upload(ctx context.Context, bucket, localPath, key string) error {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	m.Put(bucket, key, content)
	return nil
}
