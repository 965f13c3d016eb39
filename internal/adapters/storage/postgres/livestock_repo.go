package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"farm-records/internal/domain/livestock"

	"github.com/jackc/pgx/v5/pgconn"
)

// código de Postgres para unique_violation
const uniqueViolation = "23505"

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, tag_id,
	species, breed, age_months, weight_kg,
	health_status, temperature, notes,
	created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a livestock.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.TagID,
		a.Species,
		a.Breed,
		a.AgeMonths,
		a.WeightKg,
		string(a.HealthStatus),
		toNullFloat(a.Temperature),
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return livestock.ErrDuplicateTag
	}
	return err
}

// Update no toca tag_id.
func (r *AnimalsRepo) Update(ctx context.Context, a livestock.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			species = $2,
			breed = $3,
			age_months = $4,
			weight_kg = $5,
			health_status = $6,
			temperature = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		a.ID,
		a.Species,
		a.Breed,
		a.AgeMonths,
		a.WeightKg,
		string(a.HealthStatus),
		toNullFloat(a.Temperature),
		a.Notes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return livestock.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (livestock.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return livestock.Animal{}, livestock.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT`+animalColumns+` FROM animals WHERE id = $1`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) GetByTag(ctx context.Context, tagID string) (livestock.Animal, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return livestock.Animal{}, livestock.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT`+animalColumns+` FROM animals WHERE tag_id = $1`, tagID)
	return scanAnimal(row)
}

func (r *AnimalsRepo) List(ctx context.Context) ([]livestock.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+animalColumns+` FROM animals ORDER BY created_at ASC, tag_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]livestock.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (livestock.Animal, error) {
	var a livestock.Animal
	var health string
	var temp sql.NullFloat64
	if err := s.Scan(
		&a.ID,
		&a.TagID,
		&a.Species,
		&a.Breed,
		&a.AgeMonths,
		&a.WeightKg,
		&health,
		&temp,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return livestock.Animal{}, livestock.ErrNotFound
		}
		return livestock.Animal{}, err
	}
	a.HealthStatus = livestock.HealthStatus(health)
	if temp.Valid {
		t := temp.Float64
		a.Temperature = &t
	}
	return a, nil
}

type SalesRepo struct {
	db *sql.DB
}

func NewSalesRepo(db *sql.DB) *SalesRepo {
	return &SalesRepo{db: db}
}

func (r *SalesRepo) Create(ctx context.Context, s livestock.Sale) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sales (id, description, amount, quantity, sale_date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		s.ID,
		s.Description,
		s.Amount,
		s.Quantity,
		s.Date,
		s.CreatedAt,
	)
	return err
}

func (r *SalesRepo) List(ctx context.Context) ([]livestock.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount, quantity, sale_date, created_at
		FROM sales
		ORDER BY sale_date DESC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]livestock.Sale, 0)
	for rows.Next() {
		var s livestock.Sale
		if err := rows.Scan(&s.ID, &s.Description, &s.Amount, &s.Quantity, &s.Date, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
