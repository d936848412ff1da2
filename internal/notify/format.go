// Package notify dispatches FocusFlow notifications to Zoho Cliq via
// incoming webhooks or the OAuth channel-message API.
package notify

import (
	"time"

	"github.com/focusflow/backend/internal/models"
)

var emojiMap = map[string]string{
	"success": "✅",
	"error":   "❌",
	"warning": "⚠️",
	"info":    "ℹ️",
	"focus":   "🎯",
}

// FormatCliqMessage builds the rich-card payload for a notification.
// The input metadata is copied, never mutated; the card metadata gains a
// server timestamp and a fixed source tag.
func FormatCliqMessage(title, message, typ string, metadata map[string]any) models.CliqCard {
	emoji, ok := emojiMap[typ]
	if !ok {
		emoji = emojiMap["info"]
	}

	if title == "" {
		title = "FocusFlow Notification"
	}
	if message == "" {
		message = "No message provided"
	}

	meta := make(map[string]any, len(metadata)+2)
	for k, v := range metadata {
		meta[k] = v
	}
	meta["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	meta["source"] = "FocusFlow"

	var card models.CliqCard
	card.Card.Theme = "modern"
	card.Card.Title = emoji + " " + title
	card.Card.Sections = []models.CliqSection{{
		Widgets: []models.CliqWidget{{Type: "text", Text: message}},
	}}
	card.Card.Metadata = meta
	return card
}
