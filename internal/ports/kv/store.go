package kv

import (
	"context"
	"errors"
)

// ErrNotFound: la key no existe.
var ErrNotFound = errors.New("kv: not found")

// Reader lee payloads crudos por key.
type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Writer reemplaza o borra el payload de una key.
type Writer interface {
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// Tx es la vista de lectura/escritura dentro de Update.
type Tx interface {
	Reader
	Writer
}

// Store es el almacenamiento local de colecciones: una key -> un payload (JSON).
// Update aplica fn de forma atómica: o se confirman todas las escrituras o ninguna.
type Store interface {
	Reader
	Writer
	Update(ctx context.Context, fn func(tx Tx) error) error
}
