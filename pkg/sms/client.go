// Package sms provides a client for an Africa's Talking-compatible bulk
// SMS gateway.
//
// It allows creating a client with account credentials and sending a text
// message to a single phone number per call.
package sms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production endpoint of the Africa's Talking API.
const DefaultBaseURL = "https://api.africastalking.com"

// Client represents an SMS gateway client used to send reminders.
type Client struct {
	username string       // gateway account username
	apiKey   string       // API key for authentication
	baseURL  string       // gateway base URL, overridable for tests
	senderID string       // optional registered sender ID
	client   *http.Client // HTTP client used to make requests
}

// NewClient creates a new SMS Client instance with the given credentials.
// An empty baseURL falls back to the production endpoint.
func NewClient(username, apiKey, baseURL, senderID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		username: username,
		apiKey:   apiKey,
		baseURL:  baseURL,
		senderID: senderID,
		client:   &http.Client{},
	}
}

// Send sends one text message to the given phone number.
//
// It performs a single form POST to the gateway messaging endpoint and
// returns an error if the request fails or the gateway responds with a
// non-2xx status. Exactly one provider round trip is made per call.
func (c *Client) Send(ctx context.Context, to string, message string) error {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", to)
	form.Set("message", message)
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.baseURL+"/version1/messaging",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("sms gateway error: %s", resp.Status)
	}

	return nil
}
