package ports

import (
	"context"

	"github.com/google/uuid"
)

// DeviceToken is a push delivery target registered by a client device
type DeviceToken struct {
	Token    string    `json:"token" db:"token"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	UserType string    `json:"user_type" db:"user_type"` // "admin" or "user"
	Platform string    `json:"platform" db:"platform"`
}

// DeviceTokenRepository defines the interface for device token storage
type DeviceTokenRepository interface {
	Register(ctx context.Context, token *DeviceToken) error
	TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	TokensForAdmins(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, token string) error
}
