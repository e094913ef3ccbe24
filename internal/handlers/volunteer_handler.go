package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/roadwatch/roadwatch-backend/internal/dto"
	"github.com/roadwatch/roadwatch-backend/internal/services"
)

type VolunteerHandler struct {
	volunteerService *services.VolunteerService
}

func NewVolunteerHandler(volunteerService *services.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteerService: volunteerService}
}

func (h *VolunteerHandler) List(c *fiber.Ctx) error {
	volunteers, err := h.volunteerService.List()
	if err != nil {
		return storeError(c, err, "Failed to fetch volunteers")
	}
	return c.JSON(volunteers)
}

// Auth dispatches the combined login/signup endpoint on the action field.
func (h *VolunteerHandler) Auth(c *fiber.Ctx) error {
	var req dto.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	switch req.Action {
	case "login":
		resp, err := h.volunteerService.Login(&req)
		if err != nil {
			return h.authError(c, err)
		}
		return c.JSON(resp)
	case "signup":
		resp, err := h.volunteerService.Signup(&req)
		if err != nil {
			return h.authError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid action. Use \"login\" or \"signup\"",
		})
	}
}

func (h *VolunteerHandler) authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrVolunteerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return storeError(c, err, "Failed to process volunteer request")
}

func (h *VolunteerHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid volunteer ID",
		})
	}

	var req dto.UpdateVolunteerRequest
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body: " + err.Error(),
		})
	}

	volunteer, err := h.volunteerService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrVolunteerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storeError(c, err, "Failed to update volunteer")
	}

	return c.JSON(volunteer)
}

func (h *VolunteerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid volunteer ID",
		})
	}

	if err := h.volunteerService.Delete(id); err != nil {
		if errors.Is(err, services.ErrVolunteerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storeError(c, err, "Failed to delete volunteer")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Volunteer deleted successfully"})
}
