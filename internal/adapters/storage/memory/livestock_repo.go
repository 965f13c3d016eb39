package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"farm-records/internal/domain/livestock"
)

type animalRepo struct {
	mu    sync.RWMutex
	byID  map[string]livestock.Animal
	byTag map[string]string // tag -> id
}

func NewAnimalRepo() livestock.AnimalRepository {
	return &animalRepo{
		byID:  make(map[string]livestock.Animal),
		byTag: make(map[string]string),
	}
}

func (r *animalRepo) Create(ctx context.Context, a livestock.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	if _, taken := r.byTag[a.TagID]; taken {
		return livestock.ErrDuplicateTag
	}
	r.byID[a.ID] = cloneAnimal(a)
	r.byTag[a.TagID] = a.ID
	return nil
}

func (r *animalRepo) Update(ctx context.Context, a livestock.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[a.ID]
	if !exists {
		return livestock.ErrNotFound
	}
	// tag_id es inmutable
	a.TagID = cur.TagID
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (livestock.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return livestock.Animal{}, livestock.ErrNotFound
	}
	return cloneAnimal(a), nil
}

func (r *animalRepo) GetByTag(ctx context.Context, tagID string) (livestock.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byTag[tagID]
	if !ok {
		return livestock.Animal{}, livestock.ErrNotFound
	}
	return cloneAnimal(r.byID[id]), nil
}

func (r *animalRepo) List(ctx context.Context) ([]livestock.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]livestock.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneAnimal(a))
	}

	// Orden estable por created_at asc
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].TagID < out[j].TagID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneAnimal(a livestock.Animal) livestock.Animal {
	if a.Temperature != nil {
		t := *a.Temperature
		a.Temperature = &t
	}
	return a
}

type saleRepo struct {
	mu    sync.RWMutex
	items []livestock.Sale
}

func NewSaleRepo() livestock.SaleRepository {
	return &saleRepo{}
}

func (r *saleRepo) Create(ctx context.Context, s livestock.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("sale id required")
	}
	r.items = append(r.items, s)
	return nil
}

// List: fecha desc; mismo día => la más nueva primero.
func (r *saleRepo) List(ctx context.Context) ([]livestock.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]livestock.Sale, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
