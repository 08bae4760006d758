package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validate       *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

type CreatePaymentIntentRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
}

func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	studentEmail := c.Locals("callerEmail").(string)

	var request CreatePaymentIntentRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	clientSecret, err := h.paymentService.CreatePaymentIntent(c.Context(), request.SessionID, studentEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrFreeSession):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrUpstreamPayment):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create payment intent"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"clientSecret": clientSecret})
}

func (h *PaymentHandler) CreateAccountLink(c *fiber.Ctx) error {
	tutorEmail := c.Locals("callerEmail").(string)

	onboardingURL, err := h.paymentService.CreateAccountLink(c.Context(), tutorEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrUpstreamPayment):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create account link"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": onboardingURL})
}

func (h *PaymentHandler) GetBalance(c *fiber.Ctx) error {
	tutorEmail := c.Locals("callerEmail").(string)

	available, currency, err := h.paymentService.GetBalance(c.Context(), tutorEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNotOnboarded):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrUpstreamPayment):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch balance"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"available": available, "currency": currency})
}
