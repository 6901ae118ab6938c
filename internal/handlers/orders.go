package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/metrics"
	"github.com/cla-designs/clabot/internal/models"
	"github.com/cla-designs/clabot/internal/orders"
	"github.com/cla-designs/clabot/internal/platform"
)

func (h *Handlers) handlePlaceOrder(ctx context.Context, c *fiber.Ctx, in models.Interaction, orderType string) error {
	session, err := h.orders.PlaceOrder(ctx, in.Member, orderType)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidOrderType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown order type",
			})
		}
		logger.Log.Error("Error creating order", zap.String("order_type", orderType), zap.Error(err))
		return replyFailure(c)
	}

	metrics.OrdersCreated.WithLabelValues(orderType).Inc()

	return reply(c, platform.Message{
		Ephemeral: true,
		Embeds: []platform.Embed{{
			Title:       "New Design Order Created",
			Description: "Order channel created successfully!",
			Color:       colorTeal,
			Fields: []platform.EmbedField{
				{Name: "Order Type", Value: session.Type.Name, Inline: true},
				{Name: "Price", Value: session.Type.Price, Inline: true},
				{Name: "Customer", Value: mention(in.Member.ID), Inline: true},
				{Name: "Channel", Value: "<#" + session.ChannelID + ">"},
			},
			Footer: "Please continue the order process in the channel above.",
		}},
	})
}

func (h *Handlers) handleClaimOrder(ctx context.Context, c *fiber.Ctx, in models.Interaction) error {
	session, err := h.orders.ClaimOrder(ctx, in.ChannelID, in.Member)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrPermissionDenied):
			return replyEphemeral(c, "You do not have permission to claim orders. Designer role required.")
		case errors.Is(err, orders.ErrOrderCompleted):
			return replyEphemeral(c, "This order is already completed.")
		default:
			logger.Log.Error("Error claiming order", zap.String("channel", in.ChannelID), zap.Error(err))
			return replyFailure(c)
		}
	}

	return reply(c, platform.Message{Embeds: []platform.Embed{{
		Title:       "Order Claimed",
		Description: fmt.Sprintf("**Claimed by %s**", in.Member.Username),
		Color:       colorTeal,
		Fields: []platform.EmbedField{
			{Name: "Designer Assigned", Value: mention(session.ClaimedBy), Inline: true},
			{Name: "Status", Value: "In Progress", Inline: true},
		},
	}}})
}

func (h *Handlers) handleEndOrder(ctx context.Context, c *fiber.Ctx, in models.Interaction) error {
	_, err := h.orders.EndOrder(ctx, in.ChannelID, in.Member)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrPermissionDenied):
			return replyEphemeral(c, "You do not have permission to end orders. Designer role required.")
		default:
			logger.Log.Error("Error ending order", zap.String("channel", in.ChannelID), zap.Error(err))
			return replyFailure(c)
		}
	}

	metrics.OrdersCompleted.Inc()

	return reply(c, platform.Message{Embeds: []platform.Embed{{
		Title:       "Order Completed",
		Description: "This order has been marked as completed and delivered!",
		Color:       colorSuccess,
		Fields: []platform.EmbedField{
			{Name: "Completed by", Value: mention(in.Member.ID), Inline: true},
			{Name: "Status", Value: "Delivered", Inline: true},
			{Name: "Thank You!", Value: "Thank you for choosing CLA Designs! We hope you love your new design."},
		},
		Footer: "This channel will be archived automatically.",
	}}})
}
