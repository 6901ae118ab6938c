package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/models"
	"github.com/cla-designs/clabot/internal/permissions"
	"github.com/cla-designs/clabot/internal/platform"
)

var (
	ErrInvalidOrderType = errors.New("unknown order type")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnknownSession   = errors.New("unknown order session")
	ErrOrderCompleted   = errors.New("order already completed")
)

const gatewayTimeout = 10 * time.Second

// Session is the workflow state of one placed order, bound to its private
// channel. ChannelName holds the base label; claim and completion suffixes
// are derived from state so relabeling stays idempotent.
type Session struct {
	ID            uuid.UUID
	ChannelID     string
	ChannelName   string
	Type          OrderType
	Customer      string
	State         string
	ClaimedBy     string
	ClaimedByName string
	CreatedAt     time.Time

	archive *time.Timer
}

func (s *Session) label() string {
	name := s.ChannelName
	if s.ClaimedByName != "" {
		name += " - CLAIMED by " + s.ClaimedByName
	}
	if s.State == models.COMPLETED {
		name += "-completed"
	}
	return name
}

// Store owns all order sessions, keyed by channel ID. Transitions on one
// session are serialized under the store lock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	gw           platform.Gateway
	logChannelID string
	archiveDelay time.Duration
}

func NewStore(gw platform.Gateway, logChannelID string, archiveDelay time.Duration) *Store {
	return &Store{
		sessions:     make(map[string]*Session),
		gw:           gw,
		logChannelID: logChannelID,
		archiveDelay: archiveDelay,
	}
}

// Get returns the session bound to a channel, nil if unknown.
func (s *Store) Get(channelID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[channelID]
}

// PlaceOrder validates the order type, creates the private order channel
// scoped to the customer and designer roles, records the session, and posts
// the intake sequence. Intake sends after channel creation are best-effort.
func (s *Store) PlaceOrder(ctx context.Context, customer models.Member, key string) (*Session, error) {
	order, ok := Catalog[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderType, key)
	}

	roles, err := s.gw.GuildRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("looking up guild roles: %w", err)
	}

	var designers []platform.Role
	for _, role := range roles {
		if permissions.IsDesignerRole(role.Name) {
			designers = append(designers, role)
		}
	}

	channelName := orderChannelName(order, customer.Username)
	allowRoles := make([]string, 0, len(designers))
	for _, role := range designers {
		allowRoles = append(allowRoles, role.ID)
	}

	channel, err := s.gw.CreateChannel(ctx, platform.CreateChannelRequest{
		Name:       channelName,
		AllowUsers: []string{customer.ID},
		AllowRoles: allowRoles,
		Reason:     fmt.Sprintf("New design order: %s by %s", order.Name, customer.Username),
	})
	if err != nil {
		return nil, fmt.Errorf("creating order channel: %w", err)
	}

	session := &Session{
		ID:          uuid.New(),
		ChannelID:   channel.ID,
		ChannelName: channelName,
		Type:        order,
		Customer:    customer.ID,
		State:       models.OPEN,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[channel.ID] = session
	s.mu.Unlock()

	s.sendIntake(ctx, session, customer, designers)
	s.logOrder(ctx, session, customer)

	logger.Log.Info("Order created",
		zap.String("order_type", order.Key),
		zap.String("customer", customer.ID),
		zap.String("channel", channel.ID),
	)

	return session, nil
}

// ClaimOrder assigns the order to a staff member. Re-claiming overwrites the
// assignee; the channel label is rewritten, not appended to.
func (s *Store) ClaimOrder(ctx context.Context, channelID string, claimer models.Member) (*Session, error) {
	if !permissions.IsStaff(claimer) {
		return nil, ErrPermissionDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[channelID]
	if !ok {
		return nil, ErrUnknownSession
	}
	if session.State == models.COMPLETED {
		return nil, ErrOrderCompleted
	}

	session.State = models.CLAIMED
	session.ClaimedBy = claimer.ID
	session.ClaimedByName = claimer.Username

	if err := s.gw.RenameChannel(ctx, channelID, session.label()); err != nil {
		return nil, fmt.Errorf("relabeling order channel: %w", err)
	}

	logger.Log.Info("Order claimed",
		zap.String("channel", channelID),
		zap.String("claimer", claimer.ID),
	)

	return session, nil
}

// EndOrder marks the order completed and schedules best-effort archival of
// its channel after the configured delay. A second end on the same session
// is a no-op.
func (s *Store) EndOrder(ctx context.Context, channelID string, ender models.Member) (*Session, error) {
	if !permissions.IsStaff(ender) {
		return nil, ErrPermissionDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[channelID]
	if !ok {
		return nil, ErrUnknownSession
	}
	if session.State == models.COMPLETED {
		return session, nil
	}

	session.State = models.COMPLETED

	if err := s.gw.RenameChannel(ctx, channelID, session.label()); err != nil {
		return nil, fmt.Errorf("relabeling order channel: %w", err)
	}

	session.archive = time.AfterFunc(s.archiveDelay, func() {
		s.archiveChannel(channelID)
	})

	logger.Log.Info("Order completed",
		zap.String("channel", channelID),
		zap.String("ender", ender.ID),
	)

	return session, nil
}

func (s *Store) archiveChannel(channelID string) {
	ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
	defer cancel()

	if err := s.gw.ArchiveChannel(ctx, channelID, "Order completed and delivered"); err != nil {
		logger.Log.Error("Error archiving order channel",
			zap.String("channel", channelID),
			zap.Error(err),
		)
		return
	}

	logger.Log.Info("Order channel archived", zap.String("channel", channelID))
}

func (s *Store) sendIntake(ctx context.Context, session *Session, customer models.Member, designers []platform.Role) {
	order := session.Type

	welcome := platform.Message{Embeds: []platform.Embed{{
		Title:       fmt.Sprintf("%s Order - %s", order.Name, order.Price),
		Description: fmt.Sprintf("Welcome <@%s>! Let's get started with your %s order.", customer.ID, order.Name),
		Color:       "#FFD700",
		Fields: []platform.EmbedField{
			{Name: "Order Details", Value: fmt.Sprintf("**Type:** %s\n**Price:** %s\n**Category:** %s", order.Name, order.Price, order.Category)},
			{Name: "Important Reminders", Value: "- Payment is required before work begins\n- No refunds once work has started\n- Please provide clear references"},
		},
	}}}
	s.send(ctx, session.ChannelID, welcome)

	for _, question := range IntakeQuestions {
		if strings.Contains(question, "%s") {
			question = fmt.Sprintf(question, order.Price)
		}
		s.send(ctx, session.ChannelID, platform.Message{Content: question})
	}

	controls := platform.Message{
		Embeds: []platform.Embed{{
			Title:       "Order Controls (Designers Only)",
			Description: "Use the buttons below to manage this order:",
			Color:       "#FF6B6B",
			Fields: []platform.EmbedField{
				{Name: "Claim Order", Value: "Claim this order and assign it to yourself", Inline: true},
				{Name: "End Order", Value: "Mark the order completed and delivered", Inline: true},
			},
		}},
		Buttons: []platform.Button{
			{CustomID: "claim_order", Label: "Claim Order", Style: "success"},
			{CustomID: "end_order", Label: "End Order", Style: "danger"},
		},
	}
	s.send(ctx, session.ChannelID, controls)

	mentions := make([]string, 0, len(designers))
	for _, role := range designers {
		mentions = append(mentions, "<@&"+role.ID+">")
	}
	notification := fmt.Sprintf(
		"**New Order Alert!**\n\n%s\n\nA new **%s** order has been placed by <@%s>.\nPlease review the order details and questions above, then assist the customer with their request.\n\n**Order Value:** %s",
		strings.Join(mentions, " "), order.Name, customer.ID, order.Price,
	)
	s.send(ctx, session.ChannelID, platform.Message{Content: notification})
}

func (s *Store) logOrder(ctx context.Context, session *Session, customer models.Member) {
	if s.logChannelID == "" {
		return
	}

	s.send(ctx, s.logChannelID, platform.Message{Embeds: []platform.Embed{{
		Title:       "Order Created",
		Description: "A new design order has been placed",
		Color:       "#4ECDC4",
		Fields: []platform.EmbedField{
			{Name: "Order Type", Value: session.Type.Name, Inline: true},
			{Name: "Price", Value: session.Type.Price, Inline: true},
			{Name: "Customer", Value: "<@" + customer.ID + ">", Inline: true},
			{Name: "Channel", Value: "<#" + session.ChannelID + ">"},
			{Name: "Category", Value: session.Type.Category, Inline: true},
		},
		Footer: "Customer ID: " + customer.ID,
	}}})
}

func (s *Store) send(ctx context.Context, channelID string, msg platform.Message) {
	if err := s.gw.SendMessage(ctx, channelID, msg); err != nil {
		logger.Log.Error("Error sending order message",
			zap.String("channel", channelID),
			zap.Error(err),
		)
	}
}

func orderChannelName(order OrderType, username string) string {
	name := fmt.Sprintf("order-%s-%s", strings.ReplaceAll(strings.ToLower(order.Name), " ", "-"), username)
	return strings.ToLower(name)
}
