package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

func TestAuthorize_ExactRoleMatch(t *testing.T) {
	userRepo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Role: model.RoleAdmin}, nil
		},
	}

	svc := service.NewUserService(userRepo)

	user, err := svc.Authorize(context.Background(), "admin@example.com", model.RoleAdmin)

	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, user.Role)
}

func TestAuthorize_WrongRole(t *testing.T) {
	userRepo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Role: model.RoleStudent}, nil
		},
	}

	svc := service.NewUserService(userRepo)

	_, err := svc.Authorize(context.Background(), "student@example.com", model.RoleAdmin)

	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestAuthorize_UnknownUser(t *testing.T) {
	userRepo := &mockUserRepo{
		findByEmail: func(ctx context.Context, email string) (*model.User, error) {
			return nil, sql.ErrNoRows
		},
	}

	svc := service.NewUserService(userRepo)

	_, err := svc.Authorize(context.Background(), "ghost@example.com", model.RoleTutor)

	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestChangeUserRole_RejectsUnknownRole(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{})

	err := svc.ChangeUserRole(context.Background(), "user@example.com", "superuser")

	require.ErrorIs(t, err, service.ErrInvalidRole)
}

func TestRegisterUser_DefaultsToStudent(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{})

	user, err := svc.RegisterUser(context.Background(), &model.User{
		Email: "new@example.com",
		Name:  "New User",
	}, false)

	require.NoError(t, err)
	require.Equal(t, model.RoleStudent, user.Role)
}
