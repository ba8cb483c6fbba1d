package ports

import "context"

// PushMessage is one notification delivered to a single device token
type PushMessage struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushSender delivers push messages to device tokens. Implementations
// must treat delivery as best-effort; callers swallow and log errors.
type PushSender interface {
	Send(ctx context.Context, token string, msg PushMessage) error
}
