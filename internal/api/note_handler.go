package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type NoteHandler struct {
	noteService service.NoteService
	validate    *validator.Validate
}

func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validate:    validator.New(),
	}
}

type NoteRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	ownerEmail := c.Locals("callerEmail").(string)

	var request NoteRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	note := &model.Note{
		OwnerEmail:  ownerEmail,
		Title:       request.Title,
		Description: request.Description,
	}

	created, err := h.noteService.CreateNote(c.Context(), note)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create note"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	ownerEmail := c.Locals("callerEmail").(string)

	notes, err := h.noteService.ListNotes(c.Context(), ownerEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch notes"})
	}

	return c.Status(fiber.StatusOK).JSON(notes)
}

func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid note ID format"})
	}

	ownerEmail := c.Locals("callerEmail").(string)

	var request NoteRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	err = h.noteService.UpdateNote(c.Context(), noteID, ownerEmail, request.Title, request.Description)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update note"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Note updated successfully"})
}

func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid note ID format"})
	}

	ownerEmail := c.Locals("callerEmail").(string)

	err = h.noteService.DeleteNote(c.Context(), noteID, ownerEmail)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete note"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Note deleted"})
}
