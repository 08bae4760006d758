package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
	validate       *validator.Validate
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		validate:       validator.New(),
	}
}

type BookSessionRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
}

func (h *BookingHandler) BookSession(c *fiber.Ctx) error {
	studentEmail := c.Locals("callerEmail").(string)

	var request BookSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	booking, err := h.bookingService.RegisterBooking(c.Context(), request.SessionID, studentEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNotBookable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyBooked):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not book session"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) ListBookedSessions(c *fiber.Ctx) error {
	studentEmail := c.Locals("callerEmail").(string)

	bookings, err := h.bookingService.ListStudentBookings(c.Context(), studentEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch bookings"})
	}

	return c.Status(fiber.StatusOK).JSON(bookings)
}

func (h *BookingHandler) MarkBookingPaid(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	studentEmail := c.Locals("callerEmail").(string)

	err = h.bookingService.MarkPaid(c.Context(), bookingID, studentEmail)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update booking"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Booking marked as paid"})
}
