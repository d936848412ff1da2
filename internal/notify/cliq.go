package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// checkResp reads the response body and returns an error if the status is not 2xx.
// On error it includes the upstream body for debugging.
func checkResp(resp *http.Response, service, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s %s returned %d: %s", service, path, resp.StatusCode, string(body))
}

// CliqClient calls the Zoho Cliq REST API over HTTP.
type CliqClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCliqClient(baseURL string, client *http.Client) *CliqClient {
	if client == nil {
		client = &http.Client{}
	}
	return &CliqClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: client}
}

// SendChannelMessage posts a plain-text message to a channel using an
// OAuth access token.
func (c *CliqClient) SendChannelMessage(ctx context.Context, accessToken, channelID, text string) (any, error) {
	path := "/api/v2/channelsbyname/" + channelID + "/message"
	body, _ := json.Marshal(map[string]string{"text": text})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cliq-api %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cliq-api %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, "cliq-api", path); err != nil {
		return nil, err
	}

	var result any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cliq-api %s: decode: %w", path, err)
	}
	return result, nil
}
