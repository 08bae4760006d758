package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	UpsertOnSocialLogin(ctx context.Context, user *model.User) (inserted bool, err error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, search string) ([]model.User, error)
	UpdateRole(ctx context.Context, email, role string) (bool, error)
	SetStripeAccountID(ctx context.Context, email, accountID string) error
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	query := `INSERT INTO users (email, name, photo_url, role) VALUES ($1, $2, $3, $4) RETURNING id`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, user.Email, user.Name, user.PhotoURL, user.Role).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

// UpsertOnSocialLogin inserts the account only if the email is new,
// matching the $setOnInsert semantics social logins expect. Repeated
// logins leave the stored profile untouched.
func (r *postgresUserRepository) UpsertOnSocialLogin(ctx context.Context, user *model.User) (bool, error) {
	query := `
		INSERT INTO users (email, name, photo_url, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, user.Email, user.Name, user.PhotoURL, user.Role)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT id, email, name, photo_url, role, stripe_account_id, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) List(ctx context.Context, search string) ([]model.User, error) {
	var users []model.User
	query := `
		SELECT id, email, name, photo_url, role, stripe_account_id, created_at, updated_at
		FROM users
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &users, query, search)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []model.User{}
	}

	return users, nil
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, email, role string) (bool, error) {
	query := `UPDATE users SET role = $2, updated_at = now() WHERE email = $1`
	result, err := r.db.ExecContext(ctx, query, email, role)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *postgresUserRepository) SetStripeAccountID(ctx context.Context, email, accountID string) error {
	query := `UPDATE users SET stripe_account_id = $2, updated_at = now() WHERE email = $1`
	_, err := r.db.ExecContext(ctx, query, email, accountID)
	return err
}
