package app

import (
	"context"
	"log"

	"leadcrm/domain/lead"
	"leadcrm/ports"
)

// NotificationService fans lead events out to interested devices: the
// lead's assigned owner plus every administrator, each token exactly
// once. Delivery is best-effort; a failed send is logged and never
// affects the operation that triggered it.
type NotificationService struct {
	tokens ports.DeviceTokenRepository
	sender ports.PushSender
}

// NewNotificationService creates the fan-out notifier
func NewNotificationService(tokens ports.DeviceTokenRepository, sender ports.PushSender) *NotificationService {
	return &NotificationService{tokens: tokens, sender: sender}
}

// NotifyLeadUsers resolves the deduplicated target set for a lead event
// and dispatches one message per device token.
func (s *NotificationService) NotifyLeadUsers(ctx context.Context, l *lead.Lead, title, body string, data map[string]string) {
	if s == nil || s.sender == nil {
		return
	}

	tokenSet := make(map[string]struct{})

	if l.AssignedTo != nil {
		userTokens, err := s.tokens.TokensForUser(ctx, *l.AssignedTo)
		if err != nil {
			log.Printf("[NotificationService] failed to load tokens for user %s: %v", l.AssignedTo, err)
		}
		for _, t := range userTokens {
			if t != "" {
				tokenSet[t] = struct{}{}
			}
		}
	}

	adminTokens, err := s.tokens.TokensForAdmins(ctx)
	if err != nil {
		log.Printf("[NotificationService] failed to load admin tokens: %v", err)
	}
	for _, t := range adminTokens {
		if t != "" {
			tokenSet[t] = struct{}{}
		}
	}

	msg := ports.PushMessage{Title: title, Body: body, Data: data}
	for token := range tokenSet {
		if err := s.sender.Send(ctx, token, msg); err != nil {
			log.Printf("[NotificationService] delivery to token failed: %v", err)
		}
	}
}
