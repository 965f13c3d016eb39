package livestock

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"farm-records/internal/platform/logger"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	animals AnimalRepository
	sales   SaleRepository
	log     logger.Logger
	now     func() time.Time
}

func NewService(animals AnimalRepository, sales SaleRepository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		animals: animals,
		sales:   sales,
		log:     log.With(map[string]any{"module": "livestock"}),
		now:     time.Now,
	}
}

type CreateAnimalInput struct {
	TagID        string
	Species      string
	Breed        string
	AgeMonths    int
	WeightKg     float64
	HealthStatus string
	Temperature  *float64
	Notes        string
}

func (s *Service) CreateAnimal(ctx context.Context, in CreateAnimalInput) (Animal, error) {
	tag := strings.TrimSpace(in.TagID)
	if tag == "" {
		return Animal{}, fmt.Errorf("%w: tag_id required", ErrInvalidInput)
	}
	if in.AgeMonths < 0 || in.WeightKg < 0 {
		return Animal{}, fmt.Errorf("%w: age/weight must be >= 0", ErrInvalidInput)
	}

	health, err := parseHealth(in.HealthStatus)
	if err != nil {
		return Animal{}, err
	}

	species := strings.TrimSpace(in.Species)
	if species == "" {
		species = DefaultSpecies
	}

	temp := DefaultTemperature
	if in.Temperature != nil {
		if !finite(*in.Temperature) {
			return Animal{}, fmt.Errorf("%w: temperature", ErrInvalidInput)
		}
		temp = *in.Temperature
	}

	if _, err := s.animals.GetByTag(ctx, tag); err == nil {
		return Animal{}, ErrDuplicateTag
	} else if !errors.Is(err, ErrNotFound) {
		return Animal{}, err
	}

	now := s.now()
	a := Animal{
		ID:           uuid.NewString(),
		TagID:        tag,
		Species:      species,
		Breed:        strings.TrimSpace(in.Breed),
		AgeMonths:    in.AgeMonths,
		WeightKg:     in.WeightKg,
		HealthStatus: health,
		Temperature:  &temp,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.animals.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	s.log.Info("animal created", map[string]any{"tag_id": a.TagID, "species": a.Species})
	return a, nil
}

// UpdateAnimalInput: punteros nil = no tocar.
type UpdateAnimalInput struct {
	Species      *string
	Breed        *string
	AgeMonths    *int
	WeightKg     *float64
	HealthStatus *string
	Temperature  *float64
	Notes        *string
}

func (s *Service) UpdateAnimal(ctx context.Context, id string, in UpdateAnimalInput) (Animal, error) {
	a, err := s.animals.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Animal{}, err
	}

	if in.Species != nil {
		if v := strings.TrimSpace(*in.Species); v != "" {
			a.Species = v
		}
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.AgeMonths != nil {
		if *in.AgeMonths < 0 {
			return Animal{}, fmt.Errorf("%w: age_months must be >= 0", ErrInvalidInput)
		}
		a.AgeMonths = *in.AgeMonths
	}
	if in.WeightKg != nil {
		if *in.WeightKg < 0 {
			return Animal{}, fmt.Errorf("%w: weight_kg must be >= 0", ErrInvalidInput)
		}
		a.WeightKg = *in.WeightKg
	}
	if in.HealthStatus != nil {
		h, err := parseHealth(*in.HealthStatus)
		if err != nil {
			return Animal{}, err
		}
		a.HealthStatus = h
	}
	if in.Temperature != nil {
		if !finite(*in.Temperature) {
			return Animal{}, fmt.Errorf("%w: temperature", ErrInvalidInput)
		}
		t := *in.Temperature
		a.Temperature = &t
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	a.UpdatedAt = s.now()
	if err := s.animals.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetAnimal(ctx context.Context, id string) (Animal, error) {
	return s.animals.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) GetAnimalByTag(ctx context.Context, tagID string) (Animal, error) {
	return s.animals.GetByTag(ctx, strings.TrimSpace(tagID))
}

func (s *Service) ListAnimals(ctx context.Context) ([]Animal, error) {
	return s.animals.List(ctx)
}

type CreateSaleInput struct {
	Description string
	Amount      *float64
	Quantity    *float64
	Date        *time.Time
}

func (s *Service) CreateSale(ctx context.Context, in CreateSaleInput) (Sale, error) {
	if in.Amount == nil || !finite(*in.Amount) {
		return Sale{}, fmt.Errorf("%w: amount required", ErrInvalidInput)
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = DefaultSaleDescription
	}

	qty := DefaultSaleQuantity
	if in.Quantity != nil {
		if !finite(*in.Quantity) || *in.Quantity <= 0 {
			return Sale{}, fmt.Errorf("%w: quantity must be > 0", ErrInvalidInput)
		}
		qty = *in.Quantity
	}

	now := s.now()
	date := truncateDay(now)
	if in.Date != nil {
		date = truncateDay(*in.Date)
	}

	sale := Sale{
		ID:          uuid.NewString(),
		Description: desc,
		Amount:      *in.Amount,
		Quantity:    qty,
		Date:        date,
		CreatedAt:   now,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return Sale{}, err
	}
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]Sale, error) {
	return s.sales.List(ctx)
}

func parseHealth(raw string) (HealthStatus, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return HealthHealthy, nil
	}
	h := HealthStatus(v)
	if !h.Valid() {
		return "", fmt.Errorf("%w: health_status %q", ErrInvalidInput, raw)
	}
	return h, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
