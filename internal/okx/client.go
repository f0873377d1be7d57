// Package okx implements the token metadata and pricing client against the
// OKX wallet API. Requests are authenticated with the timestamp + HMAC
// signing scheme the API requires.
package okx

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/observability"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://www.okx.com"
	DefaultTimeout = 10 * time.Second

	// solanaChainIndex identifies the Solana chain in the wallet API.
	solanaChainIndex = "501"

	tokenDetailPath = "/api/v5/wallet/token/token-detail"
	tokenPricePath  = "/api/v5/wallet/token/real-time-price"
)

// Credentials holds the API access credentials.
type Credentials struct {
	APIKey     string
	SecretKey  string
	Passphrase string
	ProjectID  string
}

// Client calls the OKX wallet API.
type Client struct {
	baseURL string
	creds   Credentials
	client  *http.Client
	now     func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL.
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

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// withClock overrides the signing clock (tests).
func withClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates an OKX wallet API client.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		client:  &http.Client{Timeout: DefaultTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the common API response wrapper.
type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// tokenDetail is one token-detail data item.
type tokenDetail struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	MarketCap string `json:"marketCap"`
}

// tokenQuote is one real-time-price data item.
type tokenQuote struct {
	Price string `json:"price"`
}

// FetchTokenDetail fetches symbol/market-cap/name for a token address.
// A non-success envelope or empty data returns (nil, nil): the address is
// treated as resolvable-but-absent, indistinguishable from a known-error
// response by design.
func (c *Client) FetchTokenDetail(ctx context.Context, address string) (*domain.TokenInfo, error) {
	query := "chainIndex=" + solanaChainIndex + "&tokenAddress=" + address

	body, err := c.do(ctx, http.MethodGet, tokenDetailPath, query, nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var items []tokenDetail
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return nil, nil
	}

	detail := items[0]
	if detail.Symbol == "" {
		return nil, nil
	}

	info := &domain.TokenInfo{
		Address:   address,
		Symbol:    strings.ToUpper(detail.Symbol),
		MarketCap: detail.MarketCap,
	}
	if detail.Name != "" {
		name := detail.Name
		info.Name = &name
	}
	return info, nil
}

// FetchTokenPrice fetches the live price for a token address. Failure
// semantics match FetchTokenDetail.
func (c *Client) FetchTokenPrice(ctx context.Context, address string) (*domain.TokenPrice, error) {
	reqBody, err := json.Marshal([]map[string]string{{
		"chainIndex":   solanaChainIndex,
		"tokenAddress": address,
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal price request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, tokenPricePath, "", reqBody)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var items []tokenQuote
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return nil, nil
	}
	if items[0].Price == "" {
		return nil, nil
	}

	return &domain.TokenPrice{Address: address, Price: items[0].Price}, nil
}

// do performs a signed request and returns the envelope data on success.
// A non-2xx status or non-zero envelope code returns (nil, nil); only
// transport-level failures return an error.
func (c *Client) do(ctx context.Context, method, path, query string, reqBody []byte) (json.RawMessage, error) {
	start := time.Now()

	url := c.baseURL + path
	if query != "" {
		url += "?" + query
	}

	var bodyReader io.Reader
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	timestamp := c.now().UTC().Format("2006-01-02T15:04:05.000Z")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OK-ACCESS-KEY", c.creds.APIKey)
	req.Header.Set("OK-ACCESS-SIGN", c.sign(timestamp, method, path, query, reqBody))
	req.Header.Set("OK-ACCESS-TIMESTAMP", timestamp)
	req.Header.Set("OK-ACCESS-PASSPHRASE", c.creds.Passphrase)
	req.Header.Set("OK-ACCESS-PROJECT", c.creds.ProjectID)

	resp, err := c.client.Do(req)
	observability.RecordOKXCall(path, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("okx %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read okx response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, nil
	}
	if env.Code != "0" || len(env.Data) == 0 {
		return nil, nil
	}

	return env.Data, nil
}

// sign computes the request signature: base64(HMAC-SHA256(secret,
// timestamp + method + path[?query | body])).
func (c *Client) sign(timestamp, method, path, query string, body []byte) string {
	var sb strings.Builder
	sb.WriteString(timestamp)
	sb.WriteString(method)
	sb.WriteString(path)
	if query != "" {
		sb.WriteString("?")
		sb.WriteString(query)
	}
	if body != nil {
		sb.Write(body)
	}

	mac := hmac.New(sha256.New, []byte(c.creds.SecretKey))
	mac.Write([]byte(sb.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
