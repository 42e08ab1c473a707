package port

import "context"

// NotificationMessage is a transport-agnostic envelope for multi-channel delivery.
type NotificationMessage struct {
	Event    string            `json:"event,omitempty"`
	To       string            `json:"to"`
	Title    string            `json:"title,omitempty"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Notifier delivers a message over a single channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg NotificationMessage) error
}

// NotificationDispatcher routes a message to the named channels, or to default channels when none are given.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, msg NotificationMessage, channels ...string) error
}
