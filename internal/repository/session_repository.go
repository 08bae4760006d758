package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
)

type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
}

type PaginatedSessions struct {
	Data []model.StudySession `json:"data"`
	Meta PaginationMeta       `json:"meta"`
}

type SessionUpdate struct {
	Title             *string
	Description       *string
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
	ClassStart        *time.Time
	Duration          *string
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.StudySession) (*model.StudySession, error)
	FindByID(ctx context.Context, sessionID uuid.UUID) (*model.StudySession, error)
	ListByTutorAndStatus(ctx context.Context, tutorEmail, status string) ([]model.StudySession, error)
	ListApproved(ctx context.Context, search, filterBy string, page, limit int) (*PaginatedSessions, error)
	ListByStatus(ctx context.Context, status string, page, limit int) (*PaginatedSessions, error)
	Approve(ctx context.Context, sessionID uuid.UUID, registrationFee int) (bool, error)
	Reject(ctx context.Context, sessionID uuid.UUID, reason, feedback string) (bool, error)
	Resubmit(ctx context.Context, sessionID uuid.UUID, tutorEmail string) (bool, error)
	UpdateInfo(ctx context.Context, sessionID uuid.UUID, tutorEmail string, update SessionUpdate) (bool, error)
	Delete(ctx context.Context, sessionID uuid.UUID) (bool, error)
}

type postgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *model.StudySession) (*model.StudySession, error) {
	query := `
		INSERT INTO study_sessions (tutor_email, title, description, registration_start, registration_end, class_start, duration, status, request_attempt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', 1)
		RETURNING id, status, request_attempt, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		session.TutorEmail, session.Title, session.Description,
		session.RegistrationStart, session.RegistrationEnd, session.ClassStart, session.Duration,
	)
	err := row.Scan(&session.ID, &session.Status, &session.RequestAttempt, &session.CreatedAt)

	if err != nil {
		return nil, err
	}

	return session, nil
}

func (r *postgresSessionRepository) FindByID(ctx context.Context, sessionID uuid.UUID) (*model.StudySession, error) {
	var session model.StudySession
	query := `
		SELECT s.id, s.tutor_email, COALESCE(u.name, '') AS tutor_name, s.title, s.description,
			s.registration_start, s.registration_end, s.class_start, s.duration,
			s.status, s.registration_fee, s.request_attempt, s.rejection_reason, s.rejection_feedback, s.created_at
		FROM study_sessions s
		LEFT JOIN users u ON s.tutor_email = u.email
		WHERE s.id = $1
	`
	err := r.db.GetContext(ctx, &session, query, sessionID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &session, nil
}

func (r *postgresSessionRepository) ListByTutorAndStatus(ctx context.Context, tutorEmail, status string) ([]model.StudySession, error) {
	var sessions []model.StudySession
	query := `
		SELECT id, tutor_email, title, description, registration_start, registration_end, class_start, duration,
			status, registration_fee, request_attempt, rejection_reason, rejection_feedback, created_at
		FROM study_sessions
		WHERE tutor_email = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &sessions, query, tutorEmail, status)
	if err != nil {
		return nil, err
	}

	if sessions == nil {
		sessions = []model.StudySession{}
	}

	return sessions, nil
}

// ListApproved backs the public catalogue. filterBy narrows on the
// registration window: "ongoing" keeps sessions still accepting
// registrations, "closed" the ones past registration_end.
func (r *postgresSessionRepository) ListApproved(ctx context.Context, search, filterBy string, page, limit int) (*PaginatedSessions, error) {
	baseWhere := `WHERE s.status = 'approved'`

	args := []interface{}{}
	argID := 1
	if search != "" {
		baseWhere += fmt.Sprintf(" AND s.title ILIKE '%%' || $%d || '%%'", argID)
		args = append(args, search)
		argID++
	}

	switch filterBy {
	case "ongoing":
		baseWhere += " AND s.registration_end >= NOW()"
	case "closed":
		baseWhere += " AND s.registration_end < NOW()"
	}

	return r.listPage(ctx, baseWhere, args, argID, page, limit)
}

func (r *postgresSessionRepository) ListByStatus(ctx context.Context, status string, page, limit int) (*PaginatedSessions, error) {
	baseWhere := ""
	args := []interface{}{}
	argID := 1
	if status != "" {
		baseWhere = fmt.Sprintf("WHERE s.status = $%d", argID)
		args = append(args, status)
		argID++
	}

	return r.listPage(ctx, baseWhere, args, argID, page, limit)
}

func (r *postgresSessionRepository) listPage(ctx context.Context, where string, args []interface{}, argID, page, limit int) (*PaginatedSessions, error) {
	countQuery := `SELECT COUNT(*) FROM study_sessions s ` + where
	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT s.id, s.tutor_email, COALESCE(u.name, '') AS tutor_name, s.title, s.description,
			s.registration_start, s.registration_end, s.class_start, s.duration,
			s.status, s.registration_fee, s.request_attempt, s.rejection_reason, s.rejection_feedback, s.created_at
		FROM study_sessions s
		LEFT JOIN users u ON s.tutor_email = u.email
		` + where + fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, (page-1)*limit)

	var sessions []model.StudySession
	err = r.db.SelectContext(ctx, &sessions, query, args...)
	if err != nil {
		return nil, err
	}

	if sessions == nil {
		sessions = []model.StudySession{}
	}

	totalPages := (totalItems + limit - 1) / limit

	return &PaginatedSessions{
		Data: sessions,
		Meta: PaginationMeta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  totalItems,
			PerPage:     limit,
		},
	}, nil
}

// Approve is conditional on the session still being pending, so two
// concurrent admin decisions cannot both win. The stale rejection
// fields from an earlier rejection are cleared in the same statement.
func (r *postgresSessionRepository) Approve(ctx context.Context, sessionID uuid.UUID, registrationFee int) (bool, error) {
	query := `
		UPDATE study_sessions
		SET status = 'approved', registration_fee = $2, request_attempt = 1,
			rejection_reason = NULL, rejection_feedback = NULL
		WHERE id = $1 AND status = 'pending'
	`
	return r.execOneRow(ctx, query, sessionID, registrationFee)
}

func (r *postgresSessionRepository) Reject(ctx context.Context, sessionID uuid.UUID, reason, feedback string) (bool, error) {
	query := `
		UPDATE study_sessions
		SET status = 'rejected', registration_fee = NULL, rejection_reason = $2, rejection_feedback = $3
		WHERE id = $1 AND status = 'pending'
	`
	return r.execOneRow(ctx, query, sessionID, reason, feedback)
}

// Resubmit flips a rejected session of the owning tutor back to pending
// and bumps the attempt counter. The rejection fields stay as written,
// the next admin decision overwrites them.
func (r *postgresSessionRepository) Resubmit(ctx context.Context, sessionID uuid.UUID, tutorEmail string) (bool, error) {
	query := `
		UPDATE study_sessions
		SET status = 'pending', request_attempt = request_attempt + 1
		WHERE id = $1 AND tutor_email = $2 AND status = 'rejected'
	`
	return r.execOneRow(ctx, query, sessionID, tutorEmail)
}

func (r *postgresSessionRepository) UpdateInfo(ctx context.Context, sessionID uuid.UUID, tutorEmail string, update SessionUpdate) (bool, error) {
	query := `
		UPDATE study_sessions
		SET title = COALESCE($3, title),
			description = COALESCE($4, description),
			registration_start = COALESCE($5, registration_start),
			registration_end = COALESCE($6, registration_end),
			class_start = COALESCE($7, class_start),
			duration = COALESCE($8, duration)
		WHERE id = $1 AND tutor_email = $2
	`
	return r.execOneRow(ctx, query, sessionID, tutorEmail,
		update.Title, update.Description,
		update.RegistrationStart, update.RegistrationEnd, update.ClassStart, update.Duration)
}

func (r *postgresSessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	return r.execOneRow(ctx, `DELETE FROM study_sessions WHERE id = $1`, sessionID)
}

func (r *postgresSessionRepository) execOneRow(ctx context.Context, query string, args ...interface{}) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
