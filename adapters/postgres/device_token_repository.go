package postgres

import (
	"context"
	"errors"

	"leadcrm/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DeviceTokenRepositoryImpl implements DeviceTokenRepository for PostgreSQL
type DeviceTokenRepositoryImpl struct {
	db *sqlx.DB
}

// NewDeviceTokenRepository creates a new PostgreSQL device token repository
func NewDeviceTokenRepository(db *sqlx.DB) ports.DeviceTokenRepository {
	return &DeviceTokenRepositoryImpl{db: db}
}

// Register stores a device token, updating ownership when the token is
// re-registered by another user
func (r *DeviceTokenRepositoryImpl) Register(ctx context.Context, token *ports.DeviceToken) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO device_tokens (token, user_id, user_type, platform)
		VALUES (:token, :user_id, :user_type, :platform)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    user_type = EXCLUDED.user_type,
		    platform = EXCLUDED.platform
	`, token)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return errors.New("failed to register device token: " + pqErr.Message)
		}
		return err
	}
	return nil
}

// TokensForUser returns all tokens registered by one user
func (r *DeviceTokenRepositoryImpl) TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var tokens []string
	err := r.db.SelectContext(ctx, &tokens,
		`SELECT token FROM device_tokens WHERE user_id = $1`, userID)
	return tokens, err
}

// TokensForAdmins returns all tokens registered by administrators
func (r *DeviceTokenRepositoryImpl) TokensForAdmins(ctx context.Context) ([]string, error) {
	var tokens []string
	err := r.db.SelectContext(ctx, &tokens,
		`SELECT token FROM device_tokens WHERE user_type = 'admin'`)
	return tokens, err
}

// Remove deletes a device token
func (r *DeviceTokenRepositoryImpl) Remove(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM device_tokens WHERE token = $1`, token)
	return err
}
