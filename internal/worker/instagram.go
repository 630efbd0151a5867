package worker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// InstagramClient posts direct messages through the Instagram Graph API.
type InstagramClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewInstagramClient(baseURL, token string) *InstagramClient {
	return &InstagramClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: http.DefaultClient,
	}
}

// SendMessage delivers one message payload to one recipient.
func (c *InstagramClient) SendMessage(recipientID string, message map[string]any) error {
	payload := map[string]any{
		"recipient": map[string]any{"id": recipientID},
		"message":   message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/me/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message to %s: %w", recipientID, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("send message to %s: status %d", recipientID, res.StatusCode)
	}
	return nil
}
