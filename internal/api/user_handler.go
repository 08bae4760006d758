package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/jwt"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

type IssueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken mints the 12-hour bearer token for a signed-in identity.
func (h *UserHandler) IssueToken(c *fiber.Ctx) error {
	var request IssueTokenRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	token, err := jwt.GenerateToken(request.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not issue token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
}

type RegisterUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required,min=2"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var request RegisterUserRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON", "details": err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	socialLogin := c.Query("social") != ""

	user := &model.User{
		Email:    request.Email,
		Name:     request.Name,
		PhotoURL: request.PhotoURL,
	}

	registered, err := h.userService.RegisterUser(c.Context(), user, socialLogin)

	if err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"userId":  registered.ID,
	})
}

func (h *UserHandler) GetUserRole(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email query parameter is required"})
	}

	user, err := h.userService.GetUserByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch user"})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	search := c.Query("search")

	users, err := h.userService.ListUsers(c.Context(), search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch users"})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student tutor admin"`
}

func (h *UserHandler) UpdateUserRole(c *fiber.Ctx) error {
	email := c.Params("email")

	var request UpdateRoleRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	err := h.userService.ChangeUserRole(c.Context(), email, request.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update role"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Role updated successfully"})
}
