package memory

import (
	"bytes"
	"context"
	"sync"

	"farm-records/internal/ports/kv"
)

type kvStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKV() kv.Store {
	return &kvStore{data: make(map[string][]byte)}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (s *kvStore) Put(ctx context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = bytes.Clone(payload)
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Update trabaja sobre un overlay y lo aplica solo si fn no falla.
func (s *kvStore) Update(ctx context.Context, fn func(tx kv.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &kvTx{base: s.data, writes: map[string][]byte{}, deletes: map[string]struct{}{}}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for k := range tx.deletes {
		delete(s.data, k)
	}
	for k, v := range tx.writes {
		s.data[k] = v
	}
	return nil
}

type kvTx struct {
	base    map[string][]byte
	writes  map[string][]byte
	deletes map[string]struct{}
}

func (t *kvTx) Get(ctx context.Context, key string) ([]byte, error) {
	if _, gone := t.deletes[key]; gone {
		return nil, kv.ErrNotFound
	}
	if v, ok := t.writes[key]; ok {
		return bytes.Clone(v), nil
	}
	if v, ok := t.base[key]; ok {
		return bytes.Clone(v), nil
	}
	return nil, kv.ErrNotFound
}

func (t *kvTx) Put(ctx context.Context, key string, payload []byte) error {
	delete(t.deletes, key)
	t.writes[key] = bytes.Clone(payload)
	return nil
}

func (t *kvTx) Delete(ctx context.Context, key string) error {
	delete(t.writes, key)
	t.deletes[key] = struct{}{}
	return nil
}
