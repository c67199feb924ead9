package contract

import (
	"context"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
)

type SettingsRepository interface {
	// FindFirst returns the first settings row (first row wins) or nil.
	FindFirst(ctx context.Context) (*entity.SystemSettings, error)
	Create(ctx context.Context, settings *entity.SystemSettings) error
	Update(ctx context.Context, settings *entity.SystemSettings) error
}
