package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the platform gateway's REST API.
type Client struct {
	baseURL string
	guildID string
	token   string
	client  *http.Client
}

func NewClient(baseURL, guildID, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		guildID: guildID,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding gateway request: %w", err)
		}
		payload = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway %s %s returned %d: %s", method, path, resp.StatusCode, string(detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding gateway response: %w", err)
		}
	}

	return nil
}

func (c *Client) CreateChannel(ctx context.Context, req CreateChannelRequest) (Channel, error) {
	var ch Channel
	err := c.do(ctx, http.MethodPost, "/guilds/"+c.guildID+"/channels", req, &ch)
	return ch, err
}

func (c *Client) SendMessage(ctx context.Context, channelID string, msg Message) error {
	return c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages", msg, nil)
}

func (c *Client) RenameChannel(ctx context.Context, channelID, name string) error {
	return c.do(ctx, http.MethodPatch, "/channels/"+channelID, map[string]string{"name": name}, nil)
}

func (c *Client) ArchiveChannel(ctx context.Context, channelID, reason string) error {
	return c.do(ctx, http.MethodPost, "/channels/"+channelID+"/archive", map[string]string{"reason": reason}, nil)
}

func (c *Client) BanMember(ctx context.Context, userID, reason string) error {
	return c.do(ctx, http.MethodPut, "/guilds/"+c.guildID+"/bans/"+userID, map[string]string{"reason": reason}, nil)
}

func (c *Client) GuildRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := c.do(ctx, http.MethodGet, "/guilds/"+c.guildID+"/roles", nil, &roles)
	return roles, err
}
