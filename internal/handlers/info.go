package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/models"
	"github.com/cla-designs/clabot/internal/orders"
	"github.com/cla-designs/clabot/internal/permissions"
	"github.com/cla-designs/clabot/internal/platform"
)

// handleRules posts the rules embed with its control buttons into the
// invoking channel so it stays visible to everyone.
func (h *Handlers) handleRules(ctx context.Context, c *fiber.Ctx, in models.Interaction) error {
	msg := platform.Message{
		Embeds: []platform.Embed{{
			Title:       "CLA Designs - Server Rules",
			Description: h.rules.MainRules,
			Color:       colorSuccess,
			Footer:      "CLA Designs | Follow the rules to maintain a positive community",
		}},
		Buttons: []platform.Button{
			{CustomID: "view_points", Label: "View Points", Style: "primary"},
			{CustomID: "order_rules", Label: "Order Rules", Style: "secondary"},
			{CustomID: "chain_command", Label: "Chain of Command", Style: "secondary"},
		},
	}

	if err := h.gw.SendMessage(ctx, in.ChannelID, msg); err != nil {
		logger.Log.Error("Error sending rules", zap.String("channel", in.ChannelID), zap.Error(err))
		return replyFailure(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) handleOrderRules(c *fiber.Ctx) error {
	return reply(c, platform.Message{
		Ephemeral: true,
		Embeds: []platform.Embed{{
			Title:       "Order Rules & Pricing",
			Description: h.rules.OrderRules,
			Color:       colorOrange,
			Footer:      "CLA Designs | Professional design services",
		}},
	})
}

func (h *Handlers) handleChainCommand(c *fiber.Ctx) error {
	return reply(c, platform.Message{
		Ephemeral: true,
		Embeds: []platform.Embed{{
			Title:       "Chain of Command",
			Description: h.rules.ChainOfCommand,
			Color:       colorPurple,
			Footer:      "CLA Designs | Organizational Structure",
		}},
	})
}

func (h *Handlers) handleUpdateRules(c *fiber.Ctx, in models.Interaction) error {
	if !permissions.IsAdmin(in.Member) {
		return replyEphemeral(c, "You do not have permission to update rules. Admin role required.")
	}

	// TODO: wire rules updates to the yaml override file once the admin
	// workflow for editing it is settled.
	return reply(c, platform.Message{
		Ephemeral: true,
		Embeds: []platform.Embed{{
			Title:       "Update Rules",
			Description: "Rules update functionality is currently under development. Please contact the bot developer for rule updates.",
			Color:       colorWarning,
		}},
	})
}

func (h *Handlers) handleOrderInfo(ctx context.Context, c *fiber.Ctx, in models.Interaction) error {
	var buttons []platform.Button
	var liveries, avatars, els string

	for _, key := range orders.CatalogKeys {
		order := orders.Catalog[key]
		line := fmt.Sprintf("- %s - %s\n", order.Name, order.Price)
		switch order.Category {
		case "Liveries":
			liveries += line
		case "Avatars":
			avatars += line
		default:
			els += line
		}
		buttons = append(buttons, platform.Button{
			CustomID: "place_order_" + key,
			Label:    fmt.Sprintf("%s - %s", order.Name, order.Price),
			Style:    "primary",
		})
	}

	msg := platform.Message{
		Embeds: []platform.Embed{{
			Title:       "CLA Designs - Order Services",
			Description: "Choose from our available design services below. Click a button to place your order!",
			Color:       colorGold,
			Fields: []platform.EmbedField{
				{Name: "Liveries", Value: liveries, Inline: true},
				{Name: "Avatars", Value: avatars, Inline: true},
				{Name: "ELS Systems", Value: els, Inline: true},
				{Name: "Important Notes", Value: "- Payment required before work begins\n- No refunds once work starts\n- 3-7 day delivery time\n- Provide clear references"},
			},
			Footer: "Click the buttons below to place your order!",
		}},
		Buttons: buttons,
	}

	if err := h.gw.SendMessage(ctx, in.ChannelID, msg); err != nil {
		logger.Log.Error("Error sending order info", zap.String("channel", in.ChannelID), zap.Error(err))
		return replyFailure(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
