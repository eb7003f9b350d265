package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carbook/internal/models"
)

func (db *DB) CreateCar(ctx context.Context, car *models.Car) error {
	query := `INSERT INTO cars (make, model, year, price_per_day, image, is_available, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		car.Make,
		car.Model,
		car.Year,
		car.PricePerDay,
		nullString(car.Image),
		car.IsAvailable,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	car.ID = id
	car.CreatedAt = now
	car.UpdatedAt = now

	return nil
}

func (db *DB) UpdateCar(ctx context.Context, car *models.Car) error {
	query := `UPDATE cars SET make = ?, model = ?, year = ?, price_per_day = ?, image = ?, is_available = ?, updated_at = ?
              WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		car.Make,
		car.Model,
		car.Year,
		car.PricePerDay,
		nullString(car.Image),
		car.IsAvailable,
		now,
		car.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	car.UpdatedAt = now

	return nil
}

func (db *DB) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT id, make, model, year, price_per_day, image, is_available, created_at, updated_at
              FROM cars WHERE id = ?`

	var car models.Car
	var image sql.NullString
	err := db.QueryRowContext(ctx, query, id).Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.PricePerDay,
		&image,
		&car.IsAvailable,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	car.Image = image.String

	return &car, nil
}

func (db *DB) ListCars(ctx context.Context) ([]*models.Car, error) {
	query := `SELECT id, make, model, year, price_per_day, image, is_available, created_at, updated_at
              FROM cars ORDER BY make, model, id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		var car models.Car
		var image sql.NullString
		err := rows.Scan(
			&car.ID,
			&car.Make,
			&car.Model,
			&car.Year,
			&car.PricePerDay,
			&image,
			&car.IsAvailable,
			&car.CreatedAt,
			&car.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		car.Image = image.String
		cars = append(cars, &car)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cars, nil
}

func (db *DB) SetCarAvailability(ctx context.Context, id int64, available bool) error {
	query := `UPDATE cars SET is_available = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set car availability: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
