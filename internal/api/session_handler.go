package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type SessionHandler struct {
	sessionService service.SessionService
	validate       *validator.Validate
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validate:       validator.New(),
	}
}

type CreateSessionRequest struct {
	Title             string    `json:"title" validate:"required,min=5,max=100"`
	Description       string    `json:"description,omitempty" validate:"max=2000"`
	RegistrationStart time.Time `json:"registration_start" validate:"required"`
	RegistrationEnd   time.Time `json:"registration_end" validate:"required,gtfield=RegistrationStart"`
	ClassStart        time.Time `json:"class_start" validate:"required"`
	Duration          string    `json:"duration" validate:"required"`
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	tutorEmail := c.Locals("callerEmail").(string)

	var request CreateSessionRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	session := &model.StudySession{
		TutorEmail:        tutorEmail,
		Title:             request.Title,
		Description:       request.Description,
		RegistrationStart: request.RegistrationStart,
		RegistrationEnd:   request.RegistrationEnd,
		ClassStart:        request.ClassStart,
		Duration:          request.Duration,
	}

	if _, err := h.sessionService.CreateSession(c.Context(), session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Successfully added a new study session! Please wait until the admin approves.",
	})
}

func (h *SessionHandler) ListTutorSessions(c *fiber.Ctx) error {
	tutorEmail := c.Locals("callerEmail").(string)
	status := c.Query("status")

	sessions, err := h.sessionService.ListTutorSessions(c.Context(), tutorEmail, status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch sessions"})
	}

	return c.Status(fiber.StatusOK).JSON(sessions)
}

// BrowseSessions is the public catalogue of approved sessions, fixed
// at nine per page.
func (h *SessionHandler) BrowseSessions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	search := c.Query("searchValue")
	filterBy := c.Query("filterBy")

	result, err := h.sessionService.BrowseApproved(c.Context(), search, filterBy, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch sessions"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SessionHandler) ListAllSessions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("size", 10)
	status := c.Query("status")

	result, err := h.sessionService.ListForAdmin(c.Context(), status, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch sessions"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	session, err := h.sessionService.GetSession(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch session"})
	}

	return c.Status(fiber.StatusOK).JSON(session)
}

type UpdateSessionRequest struct {
	Action         string `json:"action" validate:"required,oneof=approve reject"`
	AdditionalData struct {
		RegistrationFee   string `json:"registrationFee"`
		RejectionReason   string `json:"rejectionReason"`
		RejectionFeedback string `json:"rejectionFeedback"`
	} `json:"additionalData"`
}

// UpdateSession is the admin decision endpoint: approve with a fee or
// reject with a reason and feedback.
func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	var request UpdateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	decision := service.Decision{
		Action:   request.Action,
		Fee:      request.AdditionalData.RegistrationFee,
		Reason:   request.AdditionalData.RejectionReason,
		Feedback: request.AdditionalData.RejectionFeedback,
	}

	err = h.sessionService.Decide(c.Context(), sessionID, decision)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidAction), errors.Is(err, service.ErrInvalidFee):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNotPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update session"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Session " + request.Action + "d"})
}

func (h *SessionHandler) ResubmitSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	tutorEmail := c.Locals("callerEmail").(string)

	err = h.sessionService.Resubmit(c.Context(), sessionID, tutorEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotSessionOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNotRejected):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not resubmit session"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Session submitted for another review"})
}

type UpdateSessionInfoRequest struct {
	Title             *string    `json:"title,omitempty" validate:"omitempty,min=5,max=100"`
	Description       *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	RegistrationStart *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time `json:"registration_end,omitempty"`
	ClassStart        *time.Time `json:"class_start,omitempty"`
	Duration          *string    `json:"duration,omitempty"`
}

func (h *SessionHandler) UpdateSessionInfo(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	tutorEmail := c.Locals("callerEmail").(string)

	var request UpdateSessionInfoRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	update := repository.SessionUpdate{
		Title:             request.Title,
		Description:       request.Description,
		RegistrationStart: request.RegistrationStart,
		RegistrationEnd:   request.RegistrationEnd,
		ClassStart:        request.ClassStart,
		Duration:          request.Duration,
	}

	err = h.sessionService.UpdateInfo(c.Context(), sessionID, tutorEmail, update)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update session"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Session updated successfully"})
}

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	err = h.sessionService.DeleteSession(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete session"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Session deleted"})
}
