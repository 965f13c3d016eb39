package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/kv"
)

// Store es el Keyed Record Store: lista ordenada (más reciente primero) por key,
// persistida completa en cada escritura.
//
// No hay coordinación entre procesos: dos writers sobre la misma key pierden
// el append del otro (last writer wins). El mutex solo ordena writers locales.
type Store struct {
	kv  kv.Store
	log logger.Logger
	mu  sync.Mutex
}

func NewStore(store kv.Store, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: store, log: log.With(map[string]any{"module": "records"})}
}

// KV expone el almacenamiento para módulos que necesitan escrituras atómicas.
func (s *Store) KV() kv.Store { return s.kv }

// Load nunca falla: key ausente o payload corrupto => colección vacía.
func (s *Store) Load(ctx context.Context, key Key) []Entry {
	return s.loadFrom(ctx, s.kv, key)
}

func (s *Store) loadFrom(ctx context.Context, r kv.Reader, key Key) []Entry {
	items, err := Read[Entry](ctx, r, key)
	if err != nil {
		s.log.Warn("record collection unreadable, using empty", map[string]any{
			"key": string(key),
			"err": err,
		})
		return []Entry{}
	}

	out := items[:0]
	for _, e := range items {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Append escribe [entry, ...existentes] y devuelve la nueva secuencia.
func (s *Store) Append(ctx context.Context, key Key, entry Entry) ([]Entry, error) {
	return s.Prepend(ctx, key, entry)
}

// Prepend escribe [entries..., ...existentes] en una sola reescritura.
func (s *Store) Prepend(ctx context.Context, key Key, entries ...Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append(make([]Entry, 0, len(entries)), entries...), s.loadFrom(ctx, s.kv, key)...)
	if err := Write(ctx, s.kv, key, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Read decodifica la colección bajo key. Key ausente => vacío sin error;
// JSON inválido o de otra forma (objeto, escalar) => error.
func Read[T any](ctx context.Context, r kv.Reader, key Key) ([]T, error) {
	raw, err := r.Get(ctx, string(key))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("records: read %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("records: decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ReadOrEmpty es Read con la política de lectura del store: corrupto => vacío.
func ReadOrEmpty[T any](ctx context.Context, r kv.Reader, key Key) []T {
	items, err := Read[T](ctx, r, key)
	if err != nil {
		return []T{}
	}
	return items
}

// Write reemplaza la colección completa bajo key.
func Write[T any](ctx context.Context, w kv.Writer, key Key, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("records: encode %s: %w", key, err)
	}
	if err := w.Put(ctx, string(key), b); err != nil {
		return fmt.Errorf("records: write %s: %w", key, err)
	}
	return nil
}
