package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cla-designs/clabot/internal/auth"
	"github.com/cla-designs/clabot/internal/ledger"
	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/models"
	"github.com/cla-designs/clabot/internal/permissions"
	"github.com/cla-designs/clabot/internal/tokenstorage"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginHandler checks the configured admin credentials and issues a jwt
// cookie for the admin API group.
func (h *Handlers) LoginHandler(c *fiber.Ctx) error {
	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if request.Login != h.adminLogin {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Wrong login or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword(h.adminHash, []byte(request.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Wrong login or password",
		})
	}

	token, err := auth.GenerateToken(request.Login)
	if err != nil {
		logger.Log.Error("Error generating token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	tokenstorage.AddToken(token)

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(auth.TokenExp),
		HTTPOnly: true,
	})
	c.Set("Authorization", "Bearer "+token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Authorized successfully",
	})
}

func (h *Handlers) GetPointsHandler(c *fiber.Ctx) error {
	principal := c.Params("id")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"principal_id": principal,
		"points":       h.ledger.GetPoints(principal),
		"history":      h.ledger.GetHistory(principal),
	})
}

func (h *Handlers) AtRiskHandler(c *fiber.Ctx) error {
	entries := h.ledger.AtRisk(ledger.AtRiskThreshold)
	if len(entries) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

func (h *Handlers) StatsHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ledger.Stats())
}

func (h *Handlers) ResetPointsHandler(c *fiber.Ctx) error {
	principal := c.Params("id")
	login, _ := c.Locals("adminLogin").(string)

	changed := h.ledger.ResetPoints(principal, login)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"principal_id": principal,
		"reset":        changed,
	})
}

// ClassifyHandler evaluates the permission predicates for a member payload.
// Useful for checking how a role loadout will be treated before it goes live.
func (h *Handlers) ClassifyHandler(c *fiber.Ctx) error {
	var member models.Member
	if err := c.BodyParser(&member); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return c.Status(fiber.StatusOK).JSON(permissions.Summarize(member))
}

type CleanupRequest struct {
	Days int `json:"days"`
}

func (h *Handlers) CleanupHandler(c *fiber.Ctx) error {
	var request CleanupRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if request.Days <= 0 {
		request.Days = 30
	}

	removed := h.ledger.CleanupHistory(request.Days)

	logger.Log.Info("History cleanup requested",
		zap.Int("days", request.Days),
		zap.Int("removed", removed),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"removed": removed,
	})
}
