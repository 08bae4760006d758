package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	repo "github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPostgresSessionRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresSessionRepository(sqlxDB)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO study_sessions (tutor_email, title, description, registration_start, registration_end, class_start, duration, status, request_attempt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', 1)
		RETURNING id, status, request_attempt, created_at
	`)).WithArgs("tutor@a.com", "Intro to Algebra", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "2h").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "request_attempt", "created_at"}).AddRow(id, "pending", 1, now))

	sess := &model.StudySession{
		TutorEmail:        "tutor@a.com",
		Title:             "Intro to Algebra",
		RegistrationStart: now,
		RegistrationEnd:   now.Add(time.Hour),
		ClassStart:        now.Add(2 * time.Hour),
		Duration:          "2h",
	}
	created, err := r.Create(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.Equal(t, model.SessionStatusPending, created.Status)
	require.Equal(t, 1, created.RequestAttempt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository_FindByID_NoRows(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresSessionRepository(sqlxDB)

	mock.ExpectQuery("SELECT (.+) FROM study_sessions s").WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	s, err := r.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, s)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository_Approve_Pending(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresSessionRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE study_sessions
		SET status = 'approved', registration_fee = $2, request_attempt = 1,
			rejection_reason = NULL, rejection_feedback = NULL
		WHERE id = $1 AND status = 'pending'
	`)).WithArgs(id, 50).WillReturnResult(sqlmock.NewResult(0, 1))

	approved, err := r.Approve(context.Background(), id, 50)
	require.NoError(t, err)
	require.True(t, approved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository_Approve_NotPending(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresSessionRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec("UPDATE study_sessions").WithArgs(id, 50).WillReturnResult(sqlmock.NewResult(0, 0))

	approved, err := r.Approve(context.Background(), id, 50)
	require.NoError(t, err)
	require.False(t, approved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository_Resubmit_OnlyRejected(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresSessionRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE study_sessions
		SET status = 'pending', request_attempt = request_attempt + 1
		WHERE id = $1 AND tutor_email = $2 AND status = 'rejected'
	`)).WithArgs(id, "tutor@a.com").WillReturnResult(sqlmock.NewResult(0, 1))

	resubmitted, err := r.Resubmit(context.Background(), id, "tutor@a.com")
	require.NoError(t, err)
	require.True(t, resubmitted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository_ListApproved_PaginationMeta(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresSessionRepository(sqlxDB)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	rows := sqlmock.NewRows([]string{
		"id", "tutor_email", "tutor_name", "title", "description",
		"registration_start", "registration_end", "class_start", "duration",
		"status", "registration_fee", "request_attempt", "rejection_reason", "rejection_feedback", "created_at",
	})
	now := time.Now()
	for i := 0; i < 3; i++ {
		rows.AddRow(uuid.New(), "tutor@a.com", "Tutor A", "S", "", now, now, now, "1h", "approved", 10, 1, nil, nil, now)
	}
	mock.ExpectQuery("SELECT s.id").WillReturnRows(rows)

	result, err := r.ListApproved(context.Background(), "", "", 3, 9)
	require.NoError(t, err)
	require.Len(t, result.Data, 3)
	require.Equal(t, 3, result.Meta.TotalPages)
	require.Equal(t, 21, result.Meta.TotalItems)
	require.Equal(t, 3, result.Meta.CurrentPage)
	require.Equal(t, 9, result.Meta.PerPage)
	require.NoError(t, mock.ExpectationsWereMet())
}
