package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cla-designs/clabot/internal/ledger"
	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/metrics"
	"github.com/cla-designs/clabot/internal/models"
	"github.com/cla-designs/clabot/internal/permissions"
	"github.com/cla-designs/clabot/internal/platform"
)

const defaultReason = "No reason provided"

func (h *Handlers) handleAddPoints(ctx context.Context, c *fiber.Ctx, in models.Interaction) error {
	if !permissions.CanManagePoints(in.Member) {
		return replyEphemeral(c, "You do not have permission to use this command. Admin or Moderator role required.")
	}

	if in.Options.User == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user is required",
		})
	}
	amount := in.Options.Amount
	if amount < 1 || amount > ledger.BanThreshold {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("amount must be between 1 and %d", ledger.BanThreshold),
		})
	}

	reason := in.Options.Reason
	if reason == "" {
		reason = defaultReason
	}

	newTotal := h.ledger.AddPoints(in.Options.User, amount, reason, in.Member.ID)
	metrics.PointMutations.WithLabelValues("add").Inc()

	// Enforcement is caller-side, the ledger only reports the total. The
	// check fires on every qualifying add, not just the first crossing.
	if newTotal >= ledger.BanThreshold {
		h.enforceBan(ctx, in, newTotal)
	}

	return reply(c, platform.Message{Embeds: []platform.Embed{{
		Title: "Points Added",
		Color: colorWarning,
		Fields: []platform.EmbedField{
			{Name: "User", Value: mention(in.Options.User), Inline: true},
			{Name: "Points Added", Value: strconv.Itoa(amount), Inline: true},
			{Name: "New Total", Value: fmt.Sprintf("%d/%d", newTotal, ledger.BanThreshold), Inline: true},
			{Name: "Reason", Value: reason},
			{Name: "Added by", Value: mention(in.Member.ID), Inline: true},
		},
	}}})
}

func (h *Handlers) enforceBan(ctx context.Context, in models.Interaction, newTotal int) {
	target := in.Options.User
	banReason := fmt.Sprintf("Automatic ban: reached %d points", newTotal)

	if err := h.gw.BanMember(ctx, target, banReason); err != nil {
		metrics.AutoBans.WithLabelValues("failed").Inc()
		logger.Log.Error("Error executing automatic ban",
			zap.String("principal", target),
			zap.Error(err),
		)
		h.followUp(ctx, in.ChannelID, platform.Message{
			Content: fmt.Sprintf("User %s has reached %d points but auto-ban failed. Manual action required.", mention(target), newTotal),
		})
		return
	}

	metrics.AutoBans.WithLabelValues("executed").Inc()
	logger.Log.Info("Auto-banned principal",
		zap.String("principal", target),
		zap.Int("points", newTotal),
	)
	h.followUp(ctx, in.ChannelID, platform.Message{Embeds: []platform.Embed{{
		Title:       "Automatic Ban Executed",
		Description: fmt.Sprintf("%s has been automatically banned for reaching %d points.", mention(target), newTotal),
		Color:       colorDarkRed,
	}}})
}

func (h *Handlers) followUp(ctx context.Context, channelID string, msg platform.Message) {
	if channelID == "" {
		return
	}
	if err := h.gw.SendMessage(ctx, channelID, msg); err != nil {
		logger.Log.Error("Error sending follow-up", zap.String("channel", channelID), zap.Error(err))
	}
}

func (h *Handlers) handleRemovePoints(_ context.Context, c *fiber.Ctx, in models.Interaction) error {
	if !permissions.CanManagePoints(in.Member) {
		return replyEphemeral(c, "You do not have permission to use this command. Admin or Moderator role required.")
	}

	if in.Options.User == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user is required",
		})
	}
	amount := in.Options.Amount
	if amount < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "amount must be at least 1",
		})
	}

	reason := in.Options.Reason
	if reason == "" {
		reason = defaultReason
	}

	newTotal := h.ledger.AddPoints(in.Options.User, -amount, "Points removed: "+reason, in.Member.ID)
	metrics.PointMutations.WithLabelValues("remove").Inc()

	return reply(c, platform.Message{Embeds: []platform.Embed{{
		Title: "Points Removed",
		Color: colorTeal,
		Fields: []platform.EmbedField{
			{Name: "User", Value: mention(in.Options.User), Inline: true},
			{Name: "Points Removed", Value: strconv.Itoa(amount), Inline: true},
			{Name: "New Total", Value: fmt.Sprintf("%d/%d", newTotal, ledger.BanThreshold), Inline: true},
			{Name: "Reason", Value: reason},
			{Name: "Removed by", Value: mention(in.Member.ID), Inline: true},
		},
	}}})
}

func (h *Handlers) handleCheckPoints(c *fiber.Ctx, in models.Interaction) error {
	if !permissions.CanViewPoints(in.Member) {
		return replyEphemeral(c, "You do not have permission to use this command. Staff role required.")
	}

	if in.Options.User == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user is required",
		})
	}

	points := h.ledger.GetPoints(in.Options.User)

	return reply(c, platform.Message{
		Ephemeral: true,
		Embeds: []platform.Embed{{
			Title: "Point Check",
			Color: colorInfo,
			Fields: []platform.EmbedField{
				{Name: "User", Value: mention(in.Options.User), Inline: true},
				{Name: "Current Points", Value: fmt.Sprintf("%d/%d", points, ledger.BanThreshold), Inline: true},
				{Name: "Status", Value: pointStatus(points), Inline: true},
			},
		}},
	})
}

func (h *Handlers) handleViewPoints(c *fiber.Ctx, in models.Interaction) error {
	points := h.ledger.GetPoints(in.Member.ID)

	return reply(c, platform.Message{
		Ephemeral: true,
		Embeds: []platform.Embed{{
			Title:       "Your Current Points",
			Description: fmt.Sprintf("You currently have **%d/%d** points.", points, ledger.BanThreshold),
			Color:       colorInfo,
			Fields: []platform.EmbedField{
				{Name: "Status", Value: pointStatus(points)},
			},
			Footer: "Points are given for rule violations. Automatic ban occurs at 16 points.",
		}},
	})
}

func pointStatus(points int) string {
	switch {
	case points >= ledger.BanThreshold:
		return "Ban Threshold Reached"
	case points >= ledger.AtRiskThreshold:
		return "High Risk"
	case points >= 8:
		return "Medium Risk"
	default:
		return "Low Risk"
	}
}
