package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

// deliveryTimeout bounds each outbound notification call. There is no
// retry: a slow or failing endpoint fails the request synchronously.
const deliveryTimeout = 10 * time.Second

// ChannelMessenger sends a plain-text message to a channel on behalf of
// an OAuth access token.
type ChannelMessenger interface {
	SendChannelMessage(ctx context.Context, accessToken, channelID, text string) (any, error)
}

// Service chooses a delivery path and normalizes the result.
type Service struct {
	httpClient *http.Client
	cliq       ChannelMessenger
}

// NewService constructs the dispatcher. A nil client gets the default
// bounded-timeout client.
func NewService(cliq ChannelMessenger, client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: deliveryTimeout}
	}
	return &Service{httpClient: client, cliq: cliq}
}

// Send dispatches a notification. The webhook path takes priority over
// the OAuth path; with neither credential present it fails validation.
func (s *Service) Send(ctx context.Context, req models.NotificationRequest) (*models.NotificationResult, error) {
	if req.WebhookURL != "" {
		return s.SendViaWebhook(ctx, req)
	}
	if req.AccessToken != "" && req.ChannelID != "" {
		return s.SendViaOAuth(ctx, req)
	}
	return nil, errs.Validation("Either webhookUrl, or (accessToken and channelId) must be provided")
}

// SendViaWebhook posts the formatted card to an incoming-webhook URL.
func (s *Service) SendViaWebhook(ctx context.Context, req models.NotificationRequest) (*models.NotificationResult, error) {
	if req.WebhookURL == "" {
		return nil, errs.Validation("Webhook URL is required for webhook notifications")
	}
	// A non-HTTPS URL surfaces as a delivery failure, not a 400.
	if !strings.HasPrefix(req.WebhookURL, "https://") {
		return nil, errs.Delivery("Webhook notification failed: Webhook URL must be a valid HTTPS URL")
	}

	payload := FormatCliqMessage(req.Title, req.Message, req.Type, req.Metadata)
	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Delivery("Webhook notification failed: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.Delivery("Webhook notification failed: %v", err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, "webhook", "POST"); err != nil {
		return nil, errs.Delivery("Webhook notification failed: %v", err)
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil && err != io.EOF {
		data = nil
	}
	return &models.NotificationResult{
		Method: "webhook",
		Status: resp.StatusCode,
		Data:   data,
	}, nil
}

// SendViaOAuth sends a plain-text fallback through the channel-message API.
// The card format is not guaranteed supported there.
func (s *Service) SendViaOAuth(ctx context.Context, req models.NotificationRequest) (*models.NotificationResult, error) {
	if req.AccessToken == "" {
		return nil, errs.Validation("Access token is required for OAuth notifications")
	}
	if req.ChannelID == "" {
		return nil, errs.Validation("Channel ID is required for OAuth notifications")
	}

	title := req.Title
	if title == "" {
		title = "FocusFlow"
	}
	text := title + ": " + req.Message

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	result, err := s.cliq.SendChannelMessage(ctx, req.AccessToken, req.ChannelID, text)
	if err != nil {
		return nil, errs.Delivery("OAuth notification failed: %v", err)
	}

	return &models.NotificationResult{
		Method:    "oauth",
		ChannelID: req.ChannelID,
		Data:      result,
	}, nil
}
