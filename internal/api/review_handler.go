package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	validate      *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validate:      validator.New(),
	}
}

type AddReviewRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string   `json:"comment,omitempty"`
}

func (h *ReviewHandler) AddReview(c *fiber.Ctx) error {
	studentEmail := c.Locals("callerEmail").(string)

	var request AddReviewRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	review := &model.Review{
		SessionID:    request.SessionID,
		StudentEmail: studentEmail,
		Rating:       request.Rating,
		Comment:      request.Comment,
	}

	err := h.reviewService.SubmitReview(c.Context(), review)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNotBooked):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyReviewed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not submit review"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Review submitted successfully"})
}

func (h *ReviewHandler) ListSessionReviews(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	reviews, err := h.reviewService.ListSessionReviews(c.Context(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}

	return c.Status(fiber.StatusOK).JSON(reviews)
}

func (h *ReviewHandler) GetAverageRating(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	summary, err := h.reviewService.AverageRating(c.Context(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute rating"})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
