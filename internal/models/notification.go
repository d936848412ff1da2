package models

// NotificationRequest is the JSON body for POST /notify/cliq.
// Exactly one delivery path is required: WebhookURL, or AccessToken+ChannelID.
type NotificationRequest struct {
	WebhookURL  string         `json:"webhookUrl,omitempty"`
	AccessToken string         `json:"accessToken,omitempty"`
	ChannelID   string         `json:"channelId,omitempty"`
	Title       string         `json:"title,omitempty"`
	Message     string         `json:"message,omitempty"`
	Type        string         `json:"type,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// CliqCard is the rich-card payload posted to a Zoho Cliq webhook.
type CliqCard struct {
	Card struct {
		Theme    string         `json:"theme"`
		Title    string         `json:"title"`
		Sections []CliqSection  `json:"sections"`
		Metadata map[string]any `json:"metadata"`
	} `json:"card"`
}

// CliqSection groups widgets inside a card.
type CliqSection struct {
	Widgets []CliqWidget `json:"widgets"`
}

// CliqWidget is a single card widget; only the text type is used.
type CliqWidget struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NotificationResult is the normalized outcome of a dispatched notification.
type NotificationResult struct {
	Method    string `json:"method"`
	Status    int    `json:"status,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
	Data      any    `json:"data,omitempty"`
}
