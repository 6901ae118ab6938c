package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-designs/clabot/internal/models"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/admin/login", LoginRequest{Login: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/api/admin/login", LoginRequest{Login: "root", Password: "hunter2"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminFlow(t *testing.T) {
	app, h, _ := newTestApp(t)

	h.ledger.AddPoints("usr-1", 14, "spam", "adm-1")
	h.ledger.AddPoints("usr-2", 4, "spam", "adm-1")

	resp := postJSON(t, app, "/api/admin/login", LoginRequest{Login: "admin", Password: "hunter2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	authed := func(method, path string, payload any) *http.Response {
		var req *http.Request
		if payload != nil {
			body, err := json.Marshal(payload)
			require.NoError(t, err)
			req = httptest.NewRequest(method, path, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		out, err := app.Test(req)
		require.NoError(t, err)
		return out
	}

	resp = authed(http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats models.LedgerStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.TotalTracked)
	assert.Equal(t, 18, stats.TotalPoints)

	resp = authed(http.MethodGet, "/api/admin/atrisk", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var atRisk []models.AtRiskEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&atRisk))
	require.Len(t, atRisk, 1)
	assert.Equal(t, "usr-1", atRisk[0].PrincipalID)
	assert.Equal(t, models.RiskHigh, atRisk[0].RiskLevel)

	resp = authed(http.MethodGet, "/api/admin/points/usr-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var points struct {
		PrincipalID string                 `json:"principal_id"`
		Points      int                    `json:"points"`
		History     []models.HistoryRecord `json:"history"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&points))
	assert.Equal(t, 14, points.Points)
	require.Len(t, points.History, 1)

	resp = authed(http.MethodPost, "/api/admin/cleanup", CleanupRequest{Days: 30})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cleanup struct {
		Removed int `json:"removed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cleanup))
	assert.Equal(t, 0, cleanup.Removed)

	// Cleanup leaves totals alone either way.
	assert.Equal(t, 14, h.ledger.GetPoints("usr-1"))

	resp = authed(http.MethodPost, "/api/admin/reset/usr-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reset struct {
		Reset bool `json:"reset"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reset))
	assert.True(t, reset.Reset)
	assert.Equal(t, 0, h.ledger.GetPoints("usr-1"))

	history := h.ledger.GetHistory("usr-1")
	require.Len(t, history, 2)
	assert.Equal(t, -14, history[1].Delta)
	assert.Equal(t, "admin", history[1].ActorID)

	resp = authed(http.MethodPost, "/api/admin/reset/usr-1", nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reset))
	assert.False(t, reset.Reset)

	resp = authed(http.MethodPost, "/api/admin/classify", models.Member{
		ID:    "stf-9",
		Roles: []string{"Senior Designer"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		Level           string `json:"level"`
		CanManagePoints bool   `json:"can_manage_points"`
		CanViewPoints   bool   `json:"can_view_points"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, "Staff", summary.Level)
	assert.False(t, summary.CanManagePoints)
	assert.True(t, summary.CanViewPoints)
}

func TestAtRiskEmptyReturnsNoContent(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/admin/login", LoginRequest{Login: "admin", Password: "hunter2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/atrisk", nil)
	for _, cookie := range resp.Cookies() {
		req.AddCookie(cookie)
	}
	out, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, out.StatusCode)
}
