package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemSettings is the single mutable settings row (first row wins). It is
// created lazily on first read from the static config fallbacks.
type SystemSettings struct {
	Id               uuid.UUID
	OrganizationName string
	FlowiseEndpoint  string
	FlowiseApiKey    string
	DefaultModel     string
	Temperature      float64
	MaxTokens        int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
