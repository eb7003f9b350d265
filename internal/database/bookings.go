package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carbook/internal/models"
)

const bookingColumns = `b.id, b.user_id, b.car_id, b.start_date, b.end_date,
	   b.total_price, b.status, b.created_at, u.name, c.make || ' ' || c.model`

// CreateBookingTx re-checks the availability flag, inserts the booking and
// marks the car unavailable inside one transaction. Either all of it commits
// or none of it does.
func (db *DB) CreateBookingTx(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var available bool
	err = tx.QueryRowContext(ctx, `SELECT is_available FROM cars WHERE id = ?`, booking.CarID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check availability in tx: %w", err)
	}
	if !available {
		return ErrCarUnavailable
	}

	now := time.Now()
	queryInsert := `INSERT INTO bookings (user_id, car_id, start_date, end_date, total_price, status, created_at)
                    VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, queryInsert,
		booking.UserID,
		booking.CarID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalPrice,
		booking.Status,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE cars SET is_available = 0, updated_at = ? WHERE id = ?`, now, booking.CarID); err != nil {
		return fmt.Errorf("failed to mark car unavailable in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = id
	booking.CreatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings b
              JOIN users u ON u.id = b.user_id
              JOIN cars c ON c.id = b.car_id
              WHERE b.id = ?`

	var booking models.Booking
	err := db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CarID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UserName,
		&booking.CarLabel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// ListUserBookings returns a user's bookings, newest start date first.
// The secondary key keeps equal start dates in insertion order.
func (db *DB) ListUserBookings(ctx context.Context, userID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings b
              JOIN users u ON u.id = b.user_id
              JOIN cars c ON c.id = b.car_id
              WHERE b.user_id = ?
              ORDER BY b.start_date DESC, b.id`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (db *DB) ListAllBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings b
              JOIN users u ON u.id = b.user_id
              JOIN cars c ON c.id = b.car_id
              ORDER BY b.start_date DESC, b.id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// DeleteBookingTx removes the booking and restores the car's availability in
// the same transaction. Returns the deleted booking for event consumers.
func (db *DB) DeleteBookingTx(ctx context.Context, id int64) (*models.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var booking models.Booking
	query := `SELECT ` + bookingColumns + `
              FROM bookings b
              JOIN users u ON u.id = b.user_id
              JOIN cars c ON c.id = b.car_id
              WHERE b.id = ?`
	err = tx.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CarID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UserName,
		&booking.CarLabel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking in tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete booking in tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE cars SET is_available = 1, updated_at = ? WHERE id = ?`, time.Now(), booking.CarID); err != nil {
		return nil, fmt.Errorf("failed to restore car availability in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.CarID,
			&booking.StartDate,
			&booking.EndDate,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UserName,
			&booking.CarLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
