package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/jwt"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

var (
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
)

// AuthMiddleware verifies the bearer token and leaves the claims in
// locals. A token proves the caller's email, nothing more; roles are
// always resolved against the users table afterwards.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization header format"})
		}
		tokenString := parts[1]

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwtv5.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has expired"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		if _, ok := claims["sub"].(string); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email not found in token claims"})
		}

		c.Locals("userClaims", claims)

		return c.Next()
	}
}

func GetEmailFromClaims(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("userClaims").(jwtv5.MapClaims)
	if !ok {
		return "", errors.New("claims not found in context")
	}

	email, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("email not found in claims")
	}

	return email, nil
}

// RequireRole admits a request only when the account behind the
// verified email carries exactly the required role.
func RequireRole(userService service.UserService, requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := GetEmailFromClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		user, err := userService.Authorize(c.Context(), email, requiredRole)
		if err != nil {
			if errors.Is(err, service.ErrForbidden) || errors.Is(err, service.ErrUserNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error":   "Forbidden",
					"message": fmt.Sprintf("Requires %s role", requiredRole),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not resolve caller role"})
		}

		c.Locals("callerEmail", user.Email)
		c.Locals("callerRole", user.Role)

		return c.Next()
	}
}

// RequireAnyRole admits the caller when their stored role matches any
// of the listed roles. Used for the few routes shared between tutors
// and admins.
func RequireAnyRole(userService service.UserService, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := GetEmailFromClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		user, err := userService.GetUserByEmail(c.Context(), email)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not resolve caller role"})
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("callerEmail", user.Email)
				c.Locals("callerRole", user.Role)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()
		statusCode := c.Response().StatusCode()

		if err != nil {
			var e *fiber.Error

			if errors.As(err, &e) {
				statusCode = e.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		method := c.Method()
		path := c.Path()
		statusStr := fmt.Sprintf("%d", statusCode)

		httpRequestTotal.WithLabelValues(method, path, statusStr).Inc()
		httpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		return err
	}
}
