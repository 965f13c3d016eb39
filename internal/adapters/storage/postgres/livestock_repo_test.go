package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"farm-records/internal/domain/livestock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var animalCols = []string{
	"id", "tag_id", "species", "breed", "age_months", "weight_kg",
	"health_status", "temperature", "notes", "created_at", "updated_at",
}

func TestAnimalsRepo_CreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	temp := 40.0
	a := livestock.Animal{ID: "a1", TagID: "T-1", Species: "Chicken", HealthStatus: livestock.HealthHealthy, Temperature: &temp, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO animals")).
		WithArgs("a1", "T-1", "Chicken", "", 0, 0.0, "healthy", sqlmock.AnyArg(), "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO animals")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewAnimalsRepo(db)
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(context.Background(), a); !errors.Is(err, livestock.ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnimalsRepo_GetByTagScansNullTemperature(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM animals WHERE tag_id = $1")).
		WithArgs("T-9").
		WillReturnRows(sqlmock.NewRows(animalCols).
			AddRow("a9", "T-9", "Duck", "Pekin", 3, 1.5, "sick", nil, "", now, now))

	a, err := NewAnimalsRepo(db).GetByTag(context.Background(), " T-9 ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Species != "Duck" || a.HealthStatus != livestock.HealthSick || a.Temperature != nil {
		t.Fatalf("unexpected animal: %+v", a)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnimalsRepo_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM animals WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(animalCols))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE animals")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewAnimalsRepo(db)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, livestock.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(context.Background(), livestock.Animal{ID: "missing"}); !errors.Is(err, livestock.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "  "); !errors.Is(err, livestock.ErrNotFound) {
		t.Fatalf("blank id should be ErrNotFound without query, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSalesRepo_ListOrdersByDateDesc(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	d1 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sale_date DESC, created_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description", "amount", "quantity", "sale_date", "created_at"}).
			AddRow("s2", "Eggs", 120.5, 30.0, d1, d1).
			AddRow("s1", "Sale", 50.0, 1.0, d2, d2))

	items, err := NewSalesRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != "s2" || items[1].Amount != 50.0 {
		t.Fatalf("unexpected sales: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
