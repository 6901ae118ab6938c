package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cla-designs/clabot/internal/ledger"
	"github.com/cla-designs/clabot/internal/models"
	"github.com/cla-designs/clabot/internal/orders"
	"github.com/cla-designs/clabot/internal/platform"
	"github.com/cla-designs/clabot/internal/rules"
)

type fakeGateway struct {
	mu       sync.Mutex
	messages map[string][]platform.Message
	banned   []string
	banErr   error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{messages: make(map[string][]platform.Message)}
}

func (f *fakeGateway) CreateChannel(_ context.Context, req platform.CreateChannelRequest) (platform.Channel, error) {
	return platform.Channel{ID: "ch-order", Name: req.Name}, nil
}

func (f *fakeGateway) SendMessage(_ context.Context, channelID string, msg platform.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[channelID] = append(f.messages[channelID], msg)
	return nil
}

func (f *fakeGateway) RenameChannel(_ context.Context, _, _ string) error { return nil }

func (f *fakeGateway) ArchiveChannel(_ context.Context, _, _ string) error { return nil }

func (f *fakeGateway) BanMember(_ context.Context, userID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.banErr != nil {
		return f.banErr
	}
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeGateway) GuildRoles(_ context.Context) ([]platform.Role, error) {
	return []platform.Role{{ID: "r1", Name: "Designer"}}, nil
}

var (
	admin    = models.Member{ID: "adm-1", Username: "Root", Permissions: []string{"Administrator"}}
	staffer  = models.Member{ID: "stf-1", Username: "Dana", Roles: []string{"Graphic Designer"}}
	civilian = models.Member{ID: "usr-1", Username: "Eve", Roles: []string{"Gamer"}}
)

func newTestApp(t *testing.T) (*fiber.App, *Handlers, *fakeGateway) {
	t.Helper()

	gw := newFakeGateway()
	led := ledger.New()
	ord := orders.NewStore(gw, "logs-1", time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	h := New(led, ord, gw, rules.Defaults(), "admin", hash)
	app := fiber.New()
	h.Register(app)

	return app, h, gw
}

func postInteraction(t *testing.T, app *fiber.App, in models.Interaction) *http.Response {
	t.Helper()

	body, err := json.Marshal(in)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeMessage(t *testing.T, resp *http.Response) platform.Message {
	t.Helper()

	var msg platform.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	return msg
}

func TestAddPointsRequiresPermission(t *testing.T) {
	app, h, _ := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:    "command",
		Name:    "addpoints",
		Member:  civilian,
		Options: models.InteractionOptions{User: "usr-2", Amount: 4},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decodeMessage(t, resp)
	assert.True(t, msg.Ephemeral)
	assert.Contains(t, msg.Content, "permission")
	assert.Equal(t, 0, h.ledger.GetPoints("usr-2"))
}

func TestAddPoints(t *testing.T) {
	app, h, gw := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:      "command",
		Name:      "addpoints",
		ChannelID: "ch-mod",
		Member:    admin,
		Options:   models.InteractionOptions{User: "usr-2", Amount: 5, Reason: "spam"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decodeMessage(t, resp)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "Points Added", msg.Embeds[0].Title)
	assert.Equal(t, 5, h.ledger.GetPoints("usr-2"))
	assert.Empty(t, gw.banned)
}

func TestAddPointsAmountBounds(t *testing.T) {
	app, h, _ := newTestApp(t)

	for _, amount := range []int{0, -3, 17} {
		resp := postInteraction(t, app, models.Interaction{
			Type:    "command",
			Name:    "addpoints",
			Member:  admin,
			Options: models.InteractionOptions{User: "usr-2", Amount: amount},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	assert.Equal(t, 0, h.ledger.GetPoints("usr-2"))
}

func TestAddPointsTriggersAutoBan(t *testing.T) {
	app, h, gw := newTestApp(t)

	h.ledger.AddPoints("usr-2", 10, "prior", "adm-1")

	resp := postInteraction(t, app, models.Interaction{
		Type:      "command",
		Name:      "addpoints",
		ChannelID: "ch-mod",
		Member:    admin,
		Options:   models.InteractionOptions{User: "usr-2", Amount: 6, Reason: "spam"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 16, h.ledger.GetPoints("usr-2"))
	assert.Equal(t, []string{"usr-2"}, gw.banned)

	// Ban notice follows up in the invoking channel.
	require.NotEmpty(t, gw.messages["ch-mod"])
	assert.Equal(t, "Automatic Ban Executed", gw.messages["ch-mod"][0].Embeds[0].Title)
}

func TestAddPointsRetriggersAboveThreshold(t *testing.T) {
	app, _, gw := newTestApp(t)

	for i := 0; i < 2; i++ {
		postInteraction(t, app, models.Interaction{
			Type:      "command",
			Name:      "addpoints",
			ChannelID: "ch-mod",
			Member:    admin,
			Options:   models.InteractionOptions{User: "usr-2", Amount: 16},
		})
	}

	// No dedupe: each qualifying add re-attempts the ban.
	assert.Equal(t, []string{"usr-2", "usr-2"}, gw.banned)
}

func TestAutoBanFailureNotice(t *testing.T) {
	app, _, gw := newTestApp(t)
	gw.banErr = fiber.ErrForbidden

	resp := postInteraction(t, app, models.Interaction{
		Type:      "command",
		Name:      "addpoints",
		ChannelID: "ch-mod",
		Member:    admin,
		Options:   models.InteractionOptions{User: "usr-2", Amount: 16},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, gw.messages["ch-mod"])
	assert.Contains(t, gw.messages["ch-mod"][0].Content, "Manual action required")
}

func TestRemovePointsClampsAtZero(t *testing.T) {
	app, h, _ := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:    "command",
		Name:    "removepoints",
		Member:  admin,
		Options: models.InteractionOptions{User: "usr-2", Amount: 5},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, h.ledger.GetPoints("usr-2"))

	history := h.ledger.GetHistory("usr-2")
	require.Len(t, history, 1)
	assert.Equal(t, -5, history[0].Delta)
}

func TestCheckPointsStaffAllowed(t *testing.T) {
	app, h, _ := newTestApp(t)
	h.ledger.AddPoints("usr-2", 13, "spam", "adm-1")

	resp := postInteraction(t, app, models.Interaction{
		Type:    "command",
		Name:    "checkpoints",
		Member:  staffer,
		Options: models.InteractionOptions{User: "usr-2"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decodeMessage(t, resp)
	assert.True(t, msg.Ephemeral)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "13/16", msg.Embeds[0].Fields[1].Value)
	assert.Equal(t, "High Risk", msg.Embeds[0].Fields[2].Value)
}

func TestCheckPointsDeniedForMembers(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:    "command",
		Name:    "checkpoints",
		Member:  civilian,
		Options: models.InteractionOptions{User: "usr-2"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, decodeMessage(t, resp).Content, "permission")
}

func TestViewPointsButton(t *testing.T) {
	app, h, _ := newTestApp(t)
	h.ledger.AddPoints(civilian.ID, 3, "spam", "adm-1")

	resp := postInteraction(t, app, models.Interaction{
		Type:     "button",
		CustomID: "view_points",
		Member:   civilian,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decodeMessage(t, resp)
	assert.True(t, msg.Ephemeral)
	assert.Contains(t, msg.Embeds[0].Description, "3/16")
}

func TestRulesCommandPostsToChannel(t *testing.T) {
	app, _, gw := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:      "command",
		Name:      "rules",
		ChannelID: "ch-general",
		Member:    civilian,
	})

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Len(t, gw.messages["ch-general"], 1)
	posted := gw.messages["ch-general"][0]
	assert.Equal(t, "CLA Designs - Server Rules", posted.Embeds[0].Title)
	require.Len(t, posted.Buttons, 3)
	assert.Equal(t, "view_points", posted.Buttons[0].CustomID)
}

func TestOrderInfoCommand(t *testing.T) {
	app, _, gw := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:      "command",
		Name:      "orderinfo",
		ChannelID: "ch-general",
		Member:    civilian,
	})

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Len(t, gw.messages["ch-general"], 1)
	assert.Len(t, gw.messages["ch-general"][0].Buttons, 5)
}

func TestUpdateRulesAdminOnly(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:   "command",
		Name:   "updaterules",
		Member: staffer,
	})
	assert.Contains(t, decodeMessage(t, resp).Content, "permission")

	resp = postInteraction(t, app, models.Interaction{
		Type:   "command",
		Name:   "updaterules",
		Member: admin,
	})
	msg := decodeMessage(t, resp)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "Update Rules", msg.Embeds[0].Title)
}

func TestPlaceOrderButton(t *testing.T) {
	app, h, _ := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:     "button",
		CustomID: "place_order_basic_livery",
		Member:   civilian,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decodeMessage(t, resp)
	assert.True(t, msg.Ephemeral)
	assert.Equal(t, "New Design Order Created", msg.Embeds[0].Title)

	session := h.orders.Get("ch-order")
	require.NotNil(t, session)
	assert.Equal(t, models.OPEN, session.State)
}

func TestPlaceOrderUnknownType(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:     "button",
		CustomID: "place_order_gold_livery",
		Member:   civilian,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClaimAndEndOrderButtons(t *testing.T) {
	app, h, _ := newTestApp(t)

	postInteraction(t, app, models.Interaction{
		Type:     "button",
		CustomID: "place_order_standard_els",
		Member:   civilian,
	})

	resp := postInteraction(t, app, models.Interaction{
		Type:      "button",
		CustomID:  "claim_order",
		ChannelID: "ch-order",
		Member:    civilian,
	})
	assert.Contains(t, decodeMessage(t, resp).Content, "permission")

	resp = postInteraction(t, app, models.Interaction{
		Type:      "button",
		CustomID:  "claim_order",
		ChannelID: "ch-order",
		Member:    staffer,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Order Claimed", decodeMessage(t, resp).Embeds[0].Title)

	resp = postInteraction(t, app, models.Interaction{
		Type:      "button",
		CustomID:  "end_order",
		ChannelID: "ch-order",
		Member:    staffer,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Order Completed", decodeMessage(t, resp).Embeds[0].Title)
	assert.Equal(t, models.COMPLETED, h.orders.Get("ch-order").State)
}

func TestUnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postInteraction(t, app, models.Interaction{
		Type:   "command",
		Name:   "selfdestruct",
		Member: admin,
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
