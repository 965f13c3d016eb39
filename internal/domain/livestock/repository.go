package livestock

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateTag = errors.New("tag_id already exists")
)

type AnimalRepository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByTag(ctx context.Context, tagID string) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
}

// SaleRepository lista por fecha descendente.
type SaleRepository interface {
	Create(ctx context.Context, s Sale) error
	List(ctx context.Context) ([]Sale, error)
}
