// Package platform wraps the chat platform collaborator. Handlers and the
// order store talk to it through the Gateway interface; Client is the REST
// implementation.
package platform

import "context"

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       string       `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      string       `json:"footer,omitempty"`
}

type Button struct {
	CustomID string `json:"custom_id"`
	Label    string `json:"label"`
	Style    string `json:"style,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
}

// Message is both an interaction reply and a channel message payload.
type Message struct {
	Content   string   `json:"content,omitempty"`
	Embeds    []Embed  `json:"embeds,omitempty"`
	Buttons   []Button `json:"buttons,omitempty"`
	Ephemeral bool     `json:"ephemeral,omitempty"`
}

// CreateChannelRequest creates a private channel visible only to the listed
// users and roles.
type CreateChannelRequest struct {
	Name       string   `json:"name"`
	AllowUsers []string `json:"allow_users,omitempty"`
	AllowRoles []string `json:"allow_roles,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

type Gateway interface {
	CreateChannel(ctx context.Context, req CreateChannelRequest) (Channel, error)
	SendMessage(ctx context.Context, channelID string, msg Message) error
	RenameChannel(ctx context.Context, channelID, name string) error
	ArchiveChannel(ctx context.Context, channelID, reason string) error
	BanMember(ctx context.Context, userID, reason string) error
	GuildRoles(ctx context.Context) ([]Role, error)
}
