package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cla-designs/clabot/internal/ledger"
	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/metrics"
	"github.com/cla-designs/clabot/internal/models"
	"github.com/cla-designs/clabot/internal/orders"
	"github.com/cla-designs/clabot/internal/platform"
	"github.com/cla-designs/clabot/internal/rules"
)

const (
	colorSuccess = "#2ECC71"
	colorInfo    = "#4A90E2"
	colorWarning = "#FF6B6B"
	colorTeal    = "#4ECDC4"
	colorGold    = "#FFD700"
	colorOrange  = "#FF9500"
	colorPurple  = "#6A5ACD"
	colorDarkRed = "#8B0000"
)

const genericFailureNotice = "An error occurred while processing your request. Please try again later."

const handlerTimeout = 10 * time.Second

// Handlers carries the owned stores and collaborators into each request.
type Handlers struct {
	ledger *ledger.Ledger
	orders *orders.Store
	gw     platform.Gateway
	rules  rules.Content

	adminLogin string
	adminHash  []byte
}

func New(led *ledger.Ledger, ord *orders.Store, gw platform.Gateway, content rules.Content, adminLogin string, adminHash []byte) *Handlers {
	return &Handlers{
		ledger:     led,
		orders:     ord,
		gw:         gw,
		rules:      content,
		adminLogin: adminLogin,
		adminHash:  adminHash,
	}
}

// InteractionsHandler receives command and button events from the platform
// gateway and dispatches them. Any unmatched event gets a generic notice;
// a fault in one interaction never takes the process down.
func (h *Handlers) InteractionsHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	var interaction models.Interaction
	if err := c.BodyParser(&interaction); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interaction payload",
		})
	}

	switch interaction.Type {
	case "command":
		return h.dispatchCommand(ctx, c, interaction)
	case "button":
		return h.dispatchButton(ctx, c, interaction)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown interaction type",
		})
	}
}

func (h *Handlers) dispatchCommand(ctx context.Context, c *fiber.Ctx, in models.Interaction) error {
	metrics.Interactions.WithLabelValues("command", in.Name).Inc()

	switch in.Name {
	case "rules":
		return h.handleRules(ctx, c, in)
	case "addpoints":
		return h.handleAddPoints(ctx, c, in)
	case "removepoints":
		return h.handleRemovePoints(ctx, c, in)
	case "checkpoints":
		return h.handleCheckPoints(c, in)
	case "updaterules":
		return h.handleUpdateRules(c, in)
	case "orderinfo":
		return h.handleOrderInfo(ctx, c, in)
	default:
		logger.Log.Warn("Unknown command", zap.String("name", in.Name))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown command",
		})
	}
}

func (h *Handlers) dispatchButton(ctx context.Context, c *fiber.Ctx, in models.Interaction) error {
	metrics.Interactions.WithLabelValues("button", in.CustomID).Inc()

	switch {
	case in.CustomID == "view_points":
		return h.handleViewPoints(c, in)
	case in.CustomID == "order_rules":
		return h.handleOrderRules(c)
	case in.CustomID == "chain_command":
		return h.handleChainCommand(c)
	case in.CustomID == "claim_order":
		return h.handleClaimOrder(ctx, c, in)
	case in.CustomID == "end_order":
		return h.handleEndOrder(ctx, c, in)
	case strings.HasPrefix(in.CustomID, "place_order_"):
		return h.handlePlaceOrder(ctx, c, in, strings.TrimPrefix(in.CustomID, "place_order_"))
	default:
		logger.Log.Warn("Unknown button", zap.String("custom_id", in.CustomID))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown button",
		})
	}
}

func reply(c *fiber.Ctx, msg platform.Message) error {
	return c.Status(fiber.StatusOK).JSON(msg)
}

func replyEphemeral(c *fiber.Ctx, content string) error {
	return reply(c, platform.Message{Content: content, Ephemeral: true})
}

func replyFailure(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(platform.Message{
		Content:   genericFailureNotice,
		Ephemeral: true,
	})
}

func mention(userID string) string {
	return "<@" + userID + ">"
}
