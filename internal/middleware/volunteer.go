package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/roadwatch-backend/internal/dto"
	"github.com/roadwatch/roadwatch-backend/internal/storage"
)

// ActiveVolunteer rejects tokens whose volunteer no longer exists or has
// been deactivated. Runs after JWTProtected.
func ActiveVolunteer(store storage.VolunteerStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := GetVolunteerID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		volunteer, err := store.GetByID(id)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: unknown volunteer",
			})
		}
		if !volunteer.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Volunteer account is deactivated",
			})
		}

		return c.Next()
	}
}
