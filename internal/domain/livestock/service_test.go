package livestock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/domain/livestock"
	"farm-records/internal/platform/logger"
)

func newService() *livestock.Service {
	return livestock.NewService(memory.NewAnimalRepo(), memory.NewSaleRepo(), logger.Nop())
}

func TestCreateAnimal_Defaults(t *testing.T) {
	a, err := newService().CreateAnimal(context.Background(), livestock.CreateAnimalInput{TagID: " T-1 "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.TagID != "T-1" || a.Species != livestock.DefaultSpecies || a.HealthStatus != livestock.HealthHealthy {
		t.Fatalf("unexpected defaults: %+v", a)
	}
	if a.Temperature == nil || *a.Temperature != livestock.DefaultTemperature {
		t.Fatalf("expected default temperature, got %v", a.Temperature)
	}
}

func TestCreateAnimal_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	if _, err := svc.CreateAnimal(ctx, livestock.CreateAnimalInput{}); !errors.Is(err, livestock.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing tag, got %v", err)
	}
	if _, err := svc.CreateAnimal(ctx, livestock.CreateAnimalInput{TagID: "X", HealthStatus: "zombie"}); !errors.Is(err, livestock.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad health, got %v", err)
	}
	if _, err := svc.CreateAnimal(ctx, livestock.CreateAnimalInput{TagID: "X"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateAnimal(ctx, livestock.CreateAnimalInput{TagID: "X"}); !errors.Is(err, livestock.ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}
}

func TestUpdateAnimal_Partial(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	a, _ := svc.CreateAnimal(ctx, livestock.CreateAnimalInput{TagID: "T", Breed: "Leghorn"})

	sick := "SICK"
	temp := 42.5
	got, err := svc.UpdateAnimal(ctx, a.ID, livestock.UpdateAnimalInput{HealthStatus: &sick, Temperature: &temp})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.HealthStatus != livestock.HealthSick || *got.Temperature != 42.5 || got.Breed != "Leghorn" {
		t.Fatalf("unexpected update result: %+v", got)
	}

	if _, err := svc.UpdateAnimal(ctx, "missing", livestock.UpdateAnimalInput{}); !errors.Is(err, livestock.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSale_DefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	if _, err := svc.CreateSale(ctx, livestock.CreateSaleInput{}); !errors.Is(err, livestock.ErrInvalidInput) {
		t.Fatalf("expected amount required, got %v", err)
	}

	amount := 99.5
	s, err := svc.CreateSale(ctx, livestock.CreateSaleInput{Amount: &amount})
	if err != nil {
		t.Fatal(err)
	}
	if s.Description != livestock.DefaultSaleDescription || s.Quantity != livestock.DefaultSaleQuantity {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.Date.Format("2006-01-02") != time.Now().Format("2006-01-02") {
		t.Fatalf("expected today, got %v", s.Date)
	}

	zero := 0.0
	if _, err := svc.CreateSale(ctx, livestock.CreateSaleInput{Amount: &amount, Quantity: &zero}); !errors.Is(err, livestock.ErrInvalidInput) {
		t.Fatalf("expected quantity error, got %v", err)
	}
}

func TestSnapshots(t *testing.T) {
	temp := 39.0
	snap := livestock.ToSnapshot(livestock.Animal{TagID: "T", HealthStatus: livestock.HealthCritical, Temperature: &temp})
	if snap.HealthStatus != "critical" || *snap.Temperature != 39.0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	temp = 1
	if *snap.Temperature != 39.0 {
		t.Fatalf("snapshot must not alias the model")
	}

	sale := livestock.SaleSnapshot(livestock.Sale{Date: time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)})
	if sale.Date != "2024-07-04" {
		t.Fatalf("unexpected date: %q", sale.Date)
	}
}
