package model

import (
	"time"
)

// Contract represents a managed contract record
type Contract struct {
	ID         string    `json:"id"`
	ClientName string    `json:"clientName"`
	Data       string    `json:"data,omitempty"`
	Status     string    `json:"status"` // DRAFT, FINALIZED
	FileURL    string    `json:"fileUrl,omitempty"`
	Analysis   any       `json:"analysis,omitempty"`
	OwnerID    string    `json:"ownerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Contract lifecycle states
const (
	StatusDraft     = "DRAFT"
	StatusFinalized = "FINALIZED"
)

// ValidStatus reports whether s is a known contract status
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusFinalized
}
