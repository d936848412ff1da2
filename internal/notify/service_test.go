package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

type fakeCliq struct {
	gotToken   string
	gotChannel string
	gotText    string
	result     any
	err        error
}

var _ ChannelMessenger = (*fakeCliq)(nil)

func (f *fakeCliq) SendChannelMessage(_ context.Context, token, channel, text string) (any, error) {
	f.gotToken, f.gotChannel, f.gotText = token, channel, text
	return f.result, f.err
}

func TestService_Send_RequiresCredentialPath(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeCliq{}, nil)

	_, err := svc.Send(context.Background(), models.NotificationRequest{Title: "x"})
	require.True(t, errs.IsValidation(err))
	require.Equal(t, "Either webhookUrl, or (accessToken and channelId) must be provided", err.Error())
}

func TestService_Webhook_Success(t *testing.T) {
	t.Parallel()
	var received models.CliqCard
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	svc := NewService(&fakeCliq{}, srv.Client())
	result, err := svc.Send(context.Background(), models.NotificationRequest{
		WebhookURL: srv.URL,
		Title:      "Focus done",
		Message:    "50 minutes",
		Type:       "focus",
	})
	require.NoError(t, err)
	require.Equal(t, "webhook", result.Method)
	require.Equal(t, http.StatusOK, result.Status)
	require.Equal(t, "🎯 Focus done", received.Card.Title)
}

func TestService_Webhook_RejectsNonHTTPS(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeCliq{}, nil)

	_, err := svc.Send(context.Background(), models.NotificationRequest{
		WebhookURL: "http://insecure.example.com/webhook",
		Title:      "x",
	})
	require.True(t, errs.IsDelivery(err))
	require.Contains(t, err.Error(), "Webhook notification failed")
	require.Contains(t, err.Error(), "must be a valid HTTPS URL")
}

func TestService_Webhook_UpstreamFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(&fakeCliq{}, srv.Client())
	_, err := svc.Send(context.Background(), models.NotificationRequest{
		WebhookURL: srv.URL,
		Title:      "x",
	})
	require.True(t, errs.IsDelivery(err))
	require.Contains(t, err.Error(), "Webhook notification failed:")
}

func TestService_OAuth_Success(t *testing.T) {
	t.Parallel()
	cliq := &fakeCliq{result: map[string]any{"messageId": "msg-1"}}
	svc := NewService(cliq, nil)

	result, err := svc.Send(context.Background(), models.NotificationRequest{
		AccessToken: "token-1",
		ChannelID:   "channel-1",
		Title:       "OAuth Notification",
		Message:     "sent via oauth",
	})
	require.NoError(t, err)
	require.Equal(t, "oauth", result.Method)
	require.Equal(t, "channel-1", result.ChannelID)
	require.Equal(t, "token-1", cliq.gotToken)
	// plain-text fallback, card format not guaranteed supported
	require.Equal(t, "OAuth Notification: sent via oauth", cliq.gotText)
}

func TestService_OAuth_DefaultTitle(t *testing.T) {
	t.Parallel()
	cliq := &fakeCliq{}
	svc := NewService(cliq, nil)

	_, err := svc.Send(context.Background(), models.NotificationRequest{
		AccessToken: "token-1",
		ChannelID:   "channel-1",
		Message:     "hello",
	})
	require.NoError(t, err)
	require.Equal(t, "FocusFlow: hello", cliq.gotText)
}

func TestService_OAuth_Failure(t *testing.T) {
	t.Parallel()
	cliq := &fakeCliq{err: errors.New("invalid oauth token")}
	svc := NewService(cliq, nil)

	_, err := svc.Send(context.Background(), models.NotificationRequest{
		AccessToken: "bad",
		ChannelID:   "channel-1",
		Title:       "x",
	})
	require.True(t, errs.IsDelivery(err))
	require.Contains(t, err.Error(), "OAuth notification failed: invalid oauth token")
}

func TestService_OAuth_MissingPieces(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeCliq{}, nil)

	_, err := svc.SendViaOAuth(context.Background(), models.NotificationRequest{ChannelID: "c"})
	require.True(t, errs.IsValidation(err))

	_, err = svc.SendViaOAuth(context.Background(), models.NotificationRequest{AccessToken: "t"})
	require.True(t, errs.IsValidation(err))
}

func TestService_WebhookTakesPriority(t *testing.T) {
	t.Parallel()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cliq := &fakeCliq{}
	svc := NewService(cliq, srv.Client())
	result, err := svc.Send(context.Background(), models.NotificationRequest{
		WebhookURL:  srv.URL,
		AccessToken: "token",
		ChannelID:   "channel",
		Title:       "x",
	})
	require.NoError(t, err)
	require.Equal(t, "webhook", result.Method)
	require.Empty(t, cliq.gotChannel, "oauth path must not be used when a webhook URL is present")
}
