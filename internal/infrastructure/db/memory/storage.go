// Package memory holds the in-process variants of the repositories and of
// client storage. They back the mock data mode and the tests.
package memory

import (
	"context"
	"sync"

	"github.com/meetdesk/dashboard/internal/core/ports"
)

// StorageProvider keeps every client's keys in one map.
type StorageProvider struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func NewStorageProvider() *StorageProvider {
	return &StorageProvider{data: make(map[string]map[string]string)}
}

func (p *StorageProvider) ForClient(clientID string) ports.KeyValueStore {
	return &clientStore{p: p, id: clientID}
}

type clientStore struct {
	p  *StorageProvider
	id string
}

func (s *clientStore) Get(_ context.Context, key string) (string, bool, error) {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	v, ok := s.p.data[s.id][key]
	return v, ok, nil
}

func (s *clientStore) Set(_ context.Context, key, value string) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	m, ok := s.p.data[s.id]
	if !ok {
		m = make(map[string]string)
		s.p.data[s.id] = m
	}
	m[key] = value
	return nil
}

func (s *clientStore) Delete(_ context.Context, keys ...string) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	for _, k := range keys {
		delete(s.p.data[s.id], k)
	}
	return nil
}

// KV is a standalone key/value store, handy in tests.
type KV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	return v, ok, nil
}

func (k *KV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
	return nil
}

func (k *KV) Delete(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.data, key)
	}
	return nil
}
