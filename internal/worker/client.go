package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// NotifyClient talks to the notify service.
type NotifyClient struct {
	baseURL string
	client  *http.Client
}

func NewNotifyClient(baseURL string, client *http.Client) *NotifyClient {
	return &NotifyClient{
		baseURL: baseURL,
		client:  client,
	}
}

func (c *NotifyClient) Send(ctx context.Context, to, message string) error {
	data, err := json.Marshal(map[string]string{
		"to":      to,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify service returned status %d", resp.StatusCode)
	}

	return nil
}
