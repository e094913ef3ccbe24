package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/roadwatch-backend/internal/database"
	"github.com/roadwatch/roadwatch-backend/internal/dto"
	"github.com/roadwatch/roadwatch-backend/internal/storage"
)

type HealthHandler struct {
	store storage.Store
}

func NewHealthHandler(store storage.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	caps := h.store.Capabilities()

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     caps,
	}

	if caps.Driver == "postgres" {
		resp.DB = "ok"
		if err := database.Ping(); err != nil {
			resp.DB = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(resp)
}
