package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type mockMaterialRepo struct {
	findByID   func(ctx context.Context, id uuid.UUID) (*model.Material, error)
	deleteFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockMaterialRepo) Create(ctx context.Context, material *model.Material) (*model.Material, error) {
	material.ID = uuid.New()
	return material, nil
}

func (m *mockMaterialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockMaterialRepo) ListByTutor(ctx context.Context, tutorEmail string) ([]model.Material, error) {
	return []model.Material{}, nil
}

func (m *mockMaterialRepo) ListAll(ctx context.Context) ([]model.Material, error) {
	return []model.Material{}, nil
}

func (m *mockMaterialRepo) ListVisibleToStudent(ctx context.Context, studentEmail string) ([]model.Material, error) {
	return []model.Material{}, nil
}

func (m *mockMaterialRepo) Update(ctx context.Context, id uuid.UUID, tutorEmail string, update repository.MaterialUpdate) (bool, error) {
	return true, nil
}

func (m *mockMaterialRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

func TestAddMaterial_RequiresApprovedSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return &model.StudySession{
				ID:         id,
				TutorEmail: "tutor@example.com",
				Status:     model.SessionStatusPending,
			}, nil
		},
	}

	svc := service.NewMaterialService(&mockMaterialRepo{}, sessionRepo)

	_, err := svc.AddMaterial(context.Background(), &model.Material{
		SessionID:  uuid.New(),
		TutorEmail: "tutor@example.com",
		Title:      "Week 1 slides",
		Link:       "https://drive.example.com/slides",
	})

	require.ErrorIs(t, err, service.ErrSessionNotApproved)
}

func TestAddMaterial_RejectsForeignSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return &model.StudySession{
				ID:         id,
				TutorEmail: "owner@example.com",
				Status:     model.SessionStatusApproved,
			}, nil
		},
	}

	svc := service.NewMaterialService(&mockMaterialRepo{}, sessionRepo)

	_, err := svc.AddMaterial(context.Background(), &model.Material{
		SessionID:  uuid.New(),
		TutorEmail: "intruder@example.com",
		Title:      "Week 1 slides",
		Link:       "https://drive.example.com/slides",
	})

	require.ErrorIs(t, err, service.ErrNotSessionOwner)
}

func TestAddMaterial_ApprovedOwnedSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.StudySession, error) {
			return &model.StudySession{
				ID:         id,
				TutorEmail: "tutor@example.com",
				Status:     model.SessionStatusApproved,
			}, nil
		},
	}

	svc := service.NewMaterialService(&mockMaterialRepo{}, sessionRepo)

	created, err := svc.AddMaterial(context.Background(), &model.Material{
		SessionID:  uuid.New(),
		TutorEmail: "tutor@example.com",
		Title:      "Week 1 slides",
		Link:       "https://drive.example.com/slides",
	})

	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
}

func TestDeleteMaterial_OwnerAllowed(t *testing.T) {
	materialRepo := &mockMaterialRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.Material, error) {
			return &model.Material{ID: id, TutorEmail: "tutor@example.com"}, nil
		},
	}

	svc := service.NewMaterialService(materialRepo, &mockSessionRepo{})

	err := svc.DeleteMaterial(context.Background(), uuid.New(), "tutor@example.com", model.RoleTutor)

	require.NoError(t, err)
}

func TestDeleteMaterial_AdminOverridesOwnership(t *testing.T) {
	materialRepo := &mockMaterialRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.Material, error) {
			return &model.Material{ID: id, TutorEmail: "tutor@example.com"}, nil
		},
	}

	svc := service.NewMaterialService(materialRepo, &mockSessionRepo{})

	err := svc.DeleteMaterial(context.Background(), uuid.New(), "admin@example.com", model.RoleAdmin)

	require.NoError(t, err)
}

func TestDeleteMaterial_OtherTutorForbidden(t *testing.T) {
	materialRepo := &mockMaterialRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*model.Material, error) {
			return &model.Material{ID: id, TutorEmail: "owner@example.com"}, nil
		},
	}

	svc := service.NewMaterialService(materialRepo, &mockSessionRepo{})

	err := svc.DeleteMaterial(context.Background(), uuid.New(), "other@example.com", model.RoleTutor)

	require.ErrorIs(t, err, service.ErrForbidden)
}
