// Package telegram sends alert messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single sendMessage call.
const DefaultTimeout = 30 * time.Second

const defaultBaseURL = "https://api.telegram.org"

// SendOptions control message rendering.
type SendOptions struct {
	DisableLinkPreview bool
	Markdown           bool
}

// Client is a minimal Bot API client bound to one chat.
type Client struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the Bot API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// NewClient creates a Telegram client for the given bot token and chat.
func NewClient(token, chatID string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sendMessageRequest is the Bot API sendMessage payload.
type sendMessageRequest struct {
	ChatID            string `json:"chat_id"`
	Text              string `json:"text"`
	ParseMode         string `json:"parse_mode,omitempty"`
	DisableWebPreview bool   `json:"disable_web_page_preview,omitempty"`
}

// apiResponse is the Bot API response wrapper.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// SendMessage delivers text to the configured chat. The returned error
// carries the human-readable API description only.
func (c *Client) SendMessage(ctx context.Context, text string, opts SendOptions) error {
	payload := sendMessageRequest{
		ChatID:            c.chatID,
		Text:              text,
		DisableWebPreview: opts.DisableLinkPreview,
	}
	if opts.Markdown {
		payload.ParseMode = "Markdown"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read telegram response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("telegram: unexpected response (status %d)", resp.StatusCode)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram: %s", apiResp.Description)
	}

	return nil
}

// Notify sends an alert with the default rendering used by the pipeline:
// markdown links enabled, link previews suppressed.
func (c *Client) Notify(ctx context.Context, text string) error {
	return c.SendMessage(ctx, text, SendOptions{DisableLinkPreview: true, Markdown: true})
}
