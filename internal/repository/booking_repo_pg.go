package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	ListByDate(ctx context.Context, date string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Insert(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error)
	Update(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, studio, booking_date, start_time, end_time, name, recording_purpose, subject`

func (r *PGBookingRepository) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_date=$1 ORDER BY studio, start_time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date, studio, start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Insert assigns a fresh id and stores the booking. The (studio, date)
// partition is locked and re-checked for overlap inside the transaction, so a
// stale availability snapshot on the caller's side surfaces as ErrConflict
// instead of a silent double booking.
func (r *PGBookingRepository) Insert(ctx context.Context, nb domain.NewBooking) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := checkPartitionFree(ctx, tx, nb.Studio, nb.Date, nb.StartTime, nb.EndTime, ""); err != nil {
		return nil, err
	}

	b := domain.Booking{
		ID:        uuid.NewString(),
		Studio:    nb.Studio,
		Date:      nb.Date,
		StartTime: nb.StartTime,
		EndTime:   nb.EndTime,
		Name:      nb.Name,
		Purpose:   nb.Purpose,
		Subject:   nb.Subject,
	}
	if _, err := tx.Exec(ctx, `INSERT INTO bookings (id, studio, booking_date, start_time, end_time, name, recording_purpose, subject)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.Studio, b.Date, b.StartTime, b.EndTime, b.Name, b.Purpose, b.Subject); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update rewrites the mutable fields of a booking. Studio and date are an
// immutable key during edit and are never touched.
func (r *PGBookingRepository) Update(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var studio, date string
	if err := tx.QueryRow(ctx, `SELECT studio, booking_date FROM bookings WHERE id=$1 FOR UPDATE`, booking.ID).Scan(&studio, &date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := checkPartitionFree(ctx, tx, studio, date, booking.StartTime, booking.EndTime, booking.ID); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `UPDATE bookings SET start_time=$1, end_time=$2, name=$3, recording_purpose=$4, subject=$5
		WHERE id=$6 RETURNING `+bookingColumns, booking.StartTime, booking.EndTime, booking.Name, booking.Purpose, booking.Subject, booking.ID)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// checkPartitionFree locks the (studio, date) partition and verifies the
// candidate [start, end) interval overlaps none of the other rows. HH:MM
// strings are zero-padded, so lexicographic comparison matches minute order.
func checkPartitionFree(ctx context.Context, tx pgx.Tx, studio, date, start, end, excludeID string) error {
	rows, err := tx.Query(ctx, `SELECT id, start_time, end_time FROM bookings WHERE studio=$1 AND booking_date=$2 FOR UPDATE`, studio, date)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, s, e string
		if err := rows.Scan(&id, &s, &e); err != nil {
			return err
		}
		if id == excludeID {
			continue
		}
		if start < e && s < end {
			return fmt.Errorf("interval %s-%s overlaps booking %s: %w", start, end, id, domain.ErrConflict)
		}
	}
	return rows.Err()
}

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.Studio, &b.Date, &b.StartTime, &b.EndTime, &b.Name, &b.Purpose, &b.Subject)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
