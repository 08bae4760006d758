package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

var (
	ErrMaterialNotFound   = errors.New("material not found")
	ErrSessionNotApproved = errors.New("materials can only be attached to approved sessions")
)

type MaterialService interface {
	AddMaterial(ctx context.Context, material *model.Material) (*model.Material, error)
	ListTutorMaterials(ctx context.Context, tutorEmail string) ([]model.Material, error)
	ListAllMaterials(ctx context.Context) ([]model.Material, error)
	ListVisibleMaterials(ctx context.Context, studentEmail string) ([]model.Material, error)
	UpdateMaterial(ctx context.Context, materialID uuid.UUID, tutorEmail string, update repository.MaterialUpdate) error
	DeleteMaterial(ctx context.Context, materialID uuid.UUID, callerEmail, callerRole string) error
}

type materialService struct {
	materialRepo repository.MaterialRepository
	sessionRepo  repository.SessionRepository
}

func NewMaterialService(materialRepo repository.MaterialRepository, sessionRepo repository.SessionRepository) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		sessionRepo:  sessionRepo,
	}
}

func (s *materialService) AddMaterial(ctx context.Context, material *model.Material) (*model.Material, error) {
	session, err := s.sessionRepo.FindByID(ctx, material.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.TutorEmail != material.TutorEmail {
		return nil, ErrNotSessionOwner
	}
	if session.Status != model.SessionStatusApproved {
		return nil, ErrSessionNotApproved
	}

	return s.materialRepo.Create(ctx, material)
}

func (s *materialService) ListTutorMaterials(ctx context.Context, tutorEmail string) ([]model.Material, error) {
	return s.materialRepo.ListByTutor(ctx, tutorEmail)
}

func (s *materialService) ListAllMaterials(ctx context.Context) ([]model.Material, error) {
	return s.materialRepo.ListAll(ctx)
}

// ListVisibleMaterials derives access from the student's bookings. A
// booking of either payment state grants access; the paid gate was
// deliberately not added, students keep seeing their materials while a
// payment is settling.
func (s *materialService) ListVisibleMaterials(ctx context.Context, studentEmail string) ([]model.Material, error) {
	return s.materialRepo.ListVisibleToStudent(ctx, studentEmail)
}

func (s *materialService) UpdateMaterial(ctx context.Context, materialID uuid.UUID, tutorEmail string, update repository.MaterialUpdate) error {
	updated, err := s.materialRepo.Update(ctx, materialID, tutorEmail, update)
	if err != nil {
		return err
	}
	if !updated {
		return ErrMaterialNotFound
	}

	return nil
}

// DeleteMaterial lets the owning tutor or any admin remove a material.
func (s *materialService) DeleteMaterial(ctx context.Context, materialID uuid.UUID, callerEmail, callerRole string) error {
	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return ErrMaterialNotFound
	}
	if callerRole != model.RoleAdmin && material.TutorEmail != callerEmail {
		return ErrForbidden
	}

	deleted, err := s.materialRepo.Delete(ctx, materialID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMaterialNotFound
	}

	return nil
}
