package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/s3"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type MaterialHandler struct {
	materialService service.MaterialService
	filePresigner   *s3.FilePresigner
	validate        *validator.Validate
}

func NewMaterialHandler(materialService service.MaterialService, presigner *s3.FilePresigner) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		filePresigner:   presigner,
		validate:        validator.New(),
	}
}

type AddMaterialRequest struct {
	SessionID     uuid.UUID `json:"session_id" validate:"required"`
	Title         string    `json:"title" validate:"required,min=2,max=100"`
	Link          string    `json:"link" validate:"required,url"`
	CoverImageURL *string   `json:"cover_image_url,omitempty" validate:"omitempty,url"`
}

func (h *MaterialHandler) AddMaterial(c *fiber.Ctx) error {
	tutorEmail := c.Locals("callerEmail").(string)

	var request AddMaterialRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	material := &model.Material{
		SessionID:     request.SessionID,
		TutorEmail:    tutorEmail,
		Title:         request.Title,
		Link:          request.Link,
		CoverImageURL: request.CoverImageURL,
	}

	created, err := h.materialService.AddMaterial(c.Context(), material)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotSessionOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNotApproved):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add material"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetMaterialUploadURL hands the tutor a presigned PUT URL for the
// cover image, so the upload never passes through this service.
func (h *MaterialHandler) GetMaterialUploadURL(c *fiber.Ctx) error {
	tutorEmail := c.Locals("callerEmail").(string)
	objectKey := h.filePresigner.CoverObjectKey(tutorEmail)

	uploadURL, err := h.filePresigner.GeneratePresignedUploadURL(objectKey, "image/jpeg")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate upload URL"})
	}

	return c.JSON(fiber.Map{
		"upload_url":      uploadURL,
		"final_image_url": h.filePresigner.PublicURL(objectKey),
	})
}

func (h *MaterialHandler) ListTutorMaterials(c *fiber.Ctx) error {
	tutorEmail := c.Locals("callerEmail").(string)

	materials, err := h.materialService.ListTutorMaterials(c.Context(), tutorEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch materials"})
	}

	return c.Status(fiber.StatusOK).JSON(materials)
}

func (h *MaterialHandler) ListAllMaterials(c *fiber.Ctx) error {
	materials, err := h.materialService.ListAllMaterials(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch materials"})
	}

	return c.Status(fiber.StatusOK).JSON(materials)
}

func (h *MaterialHandler) ListStudentMaterials(c *fiber.Ctx) error {
	studentEmail := c.Locals("callerEmail").(string)

	materials, err := h.materialService.ListVisibleMaterials(c.Context(), studentEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch materials"})
	}

	return c.Status(fiber.StatusOK).JSON(materials)
}

type UpdateMaterialRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	Link          *string `json:"link,omitempty" validate:"omitempty,url"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
}

func (h *MaterialHandler) UpdateMaterial(c *fiber.Ctx) error {
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid material ID format"})
	}

	tutorEmail := c.Locals("callerEmail").(string)

	var request UpdateMaterialRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	update := repository.MaterialUpdate{
		Title:         request.Title,
		Link:          request.Link,
		CoverImageURL: request.CoverImageURL,
	}

	err = h.materialService.UpdateMaterial(c.Context(), materialID, tutorEmail, update)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update material"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Material updated successfully"})
}

func (h *MaterialHandler) DeleteMaterial(c *fiber.Ctx) error {
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid material ID format"})
	}

	callerEmail := c.Locals("callerEmail").(string)
	callerRole := c.Locals("callerRole").(string)

	err = h.materialService.DeleteMaterial(c.Context(), materialID, callerEmail, callerRole)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMaterialNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete material"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Material deleted"})
}
