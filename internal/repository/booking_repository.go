package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]model.BookedSession, error)
	HasBooking(ctx context.Context, sessionID uuid.UUID, studentEmail string) (bool, error)
	MarkPaid(ctx context.Context, bookingID uuid.UUID, studentEmail string) (bool, error)
}

type postgresBookingRepository struct {
	db *sqlx.DB
}

func NewPostgresBookingRepository(db *sqlx.DB) BookingRepository {
	return &postgresBookingRepository{db: db}
}

// Create relies on the unique index over (session_id, student_email);
// a duplicate booking surfaces as a pg unique violation for the caller
// to map to a conflict.
func (r *postgresBookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (session_id, student_email, payment_status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query, booking.SessionID, booking.StudentEmail, booking.PaymentStatus)
	err := row.Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *postgresBookingRepository) FindByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	query := `SELECT id, session_id, student_email, payment_status, created_at FROM bookings WHERE id = $1`
	err := r.db.GetContext(ctx, &booking, query, bookingID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &booking, nil
}

func (r *postgresBookingRepository) ListByStudent(ctx context.Context, studentEmail string) ([]model.BookedSession, error) {
	var bookings []model.BookedSession
	query := `
		SELECT b.id, b.session_id, b.student_email, b.payment_status, b.created_at,
			s.title, s.tutor_email, s.class_start, s.registration_fee
		FROM bookings b
		JOIN study_sessions s ON b.session_id = s.id
		WHERE b.student_email = $1
		ORDER BY b.created_at DESC
	`
	err := r.db.SelectContext(ctx, &bookings, query, studentEmail)
	if err != nil {
		return nil, err
	}

	if bookings == nil {
		bookings = []model.BookedSession{}
	}

	return bookings, nil
}

func (r *postgresBookingRepository) HasBooking(ctx context.Context, sessionID uuid.UUID, studentEmail string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE session_id = $1 AND student_email = $2)`
	err := r.db.GetContext(ctx, &exists, query, sessionID, studentEmail)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return exists, nil
}

// MarkPaid is a one-way transition: it only matches while the booking
// is still incomplete, so a replayed confirmation is a no-op.
func (r *postgresBookingRepository) MarkPaid(ctx context.Context, bookingID uuid.UUID, studentEmail string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid'
		WHERE id = $1 AND student_email = $2 AND payment_status = 'incomplete'
	`
	result, err := r.db.ExecContext(ctx, query, bookingID, studentEmail)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
