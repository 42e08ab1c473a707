package notify

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/strogmv/appdoc/internal/port"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"

	smsMaxRunes = 160
)

// MessageBuilder formats a message for one channel.
type MessageBuilder interface {
	CreateMessage(msg port.NotificationMessage) ([]byte, error)
	ContentType() string
}

// SlackBuilder renders Slack incoming-webhook payloads.
type SlackBuilder struct {
	// Channel overrides the webhook's default channel when msg.To is empty.
	Channel string
}

type slackPayload struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

func (b SlackBuilder) CreateMessage(msg port.NotificationMessage) ([]byte, error) {
	text := strings.TrimSpace(msg.Body)
	if title := strings.TrimSpace(msg.Title); title != "" {
		text = "*" + title + "*\n" + text
	}
	channel := strings.TrimSpace(msg.To)
	if channel == "" {
		channel = b.Channel
	}
	return json.Marshal(slackPayload{Text: text, Channel: channel})
}

func (SlackBuilder) ContentType() string { return contentTypeJSON }

// TeamsBuilder renders legacy Office 365 connector cards.
type TeamsBuilder struct{}

type teamsCard struct {
	Type    string `json:"@type"`
	Context string `json:"@context"`
	Summary string `json:"summary"`
	Title   string `json:"title,omitempty"`
	Text    string `json:"text"`
}

func (TeamsBuilder) CreateMessage(msg port.NotificationMessage) ([]byte, error) {
	body := strings.TrimSpace(msg.Body)
	summary := strings.TrimSpace(msg.Title)
	if summary == "" {
		summary = body
	}
	return json.Marshal(teamsCard{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Summary: summary,
		Title:   strings.TrimSpace(msg.Title),
		Text:    body,
	})
}

func (TeamsBuilder) ContentType() string { return contentTypeJSON }

// SMSBuilder renders a single plain-text SMS body.
type SMSBuilder struct{}

func (SMSBuilder) CreateMessage(msg port.NotificationMessage) ([]byte, error) {
	if strings.TrimSpace(msg.To) == "" {
		return nil, errors.New("sms recipient is required")
	}
	text := strings.TrimSpace(msg.Body)
	if title := strings.TrimSpace(msg.Title); title != "" {
		text = title + ": " + text
	}
	runes := []rune(text)
	if len(runes) > smsMaxRunes {
		text = string(runes[:smsMaxRunes])
	}
	return []byte(text), nil
}

func (SMSBuilder) ContentType() string { return contentTypeText }
