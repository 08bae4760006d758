package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("caller role does not grant access")
	ErrInvalidRole  = errors.New("unknown role")
)

type UserService interface {
	RegisterUser(ctx context.Context, user *model.User, socialLogin bool) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	Authorize(ctx context.Context, email, requiredRole string) (*model.User, error)
	ListUsers(ctx context.Context, search string) ([]model.User, error)
	ChangeUserRole(ctx context.Context, email, role string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, user *model.User, socialLogin bool) (*model.User, error) {
	if user.Role == "" {
		user.Role = model.RoleStudent
	}

	if socialLogin {
		// Social logins hit this endpoint on every sign-in; only the
		// first one creates the account.
		if _, err := s.userRepo.UpsertOnSocialLogin(ctx, user); err != nil {
			return nil, err
		}
		return s.userRepo.FindByEmail(ctx, user.Email)
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = newID

	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Authorize is the role gate: admit only when the stored account's
// role equals the required one. The token alone never grants a role.
func (s *userService) Authorize(ctx context.Context, email, requiredRole string) (*model.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.Role != requiredRole {
		return nil, ErrForbidden
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, search string) ([]model.User, error) {
	return s.userRepo.List(ctx, search)
}

func (s *userService) ChangeUserRole(ctx context.Context, email, role string) error {
	switch role {
	case model.RoleStudent, model.RoleTutor, model.RoleAdmin:
	default:
		return ErrInvalidRole
	}

	updated, err := s.userRepo.UpdateRole(ctx, email, role)
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}

	return nil
}
