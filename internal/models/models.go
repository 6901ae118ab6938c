package models

import (
	"time"
)

var (
	OPEN      = "OPEN"
	CLAIMED   = "CLAIMED"
	COMPLETED = "COMPLETED"
)

var (
	RiskCritical = "CRITICAL"
	RiskHigh     = "HIGH"
	RiskMedium   = "MEDIUM"
)

// ActorSystem is recorded as the actor for mutations not initiated by a member.
const ActorSystem = "System"

// HistoryRecord is one append-only entry in a principal's point history.
type HistoryRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	ActorID   string    `json:"actor_id"`
	OldTotal  int       `json:"old_total"`
	NewTotal  int       `json:"new_total"`
}

type AtRiskEntry struct {
	PrincipalID string `json:"principal_id"`
	Points      int    `json:"points"`
	RiskLevel   string `json:"risk_level"`
}

type LedgerStats struct {
	TotalTracked  int     `json:"total_tracked"`
	WithPoints    int     `json:"with_points"`
	TotalPoints   int     `json:"total_points"`
	AveragePoints float64 `json:"average_points"`
	MaxPoints     int     `json:"max_points"`
	AtRiskCount   int     `json:"at_risk_count"`
}

// Member is the invoking principal as delivered by the platform gateway.
type Member struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// Interaction is a command or button event delivered by the platform gateway.
type Interaction struct {
	Type      string             `json:"type"`
	Name      string             `json:"name,omitempty"`
	CustomID  string             `json:"custom_id,omitempty"`
	ChannelID string             `json:"channel_id,omitempty"`
	Member    Member             `json:"member"`
	Options   InteractionOptions `json:"options"`
}

type InteractionOptions struct {
	User   string `json:"user,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Reason string `json:"reason,omitempty"`
}
