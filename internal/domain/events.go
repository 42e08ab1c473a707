package domain

// NotificationRequested asks for a message to be delivered over one or more channels.
// An empty Channels list means the configured defaults.
type NotificationRequested struct {
	Event    string            `json:"event"`
	Channels []string          `json:"channels,omitempty"`
	To       string            `json:"to"`
	Title    string            `json:"title,omitempty"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
