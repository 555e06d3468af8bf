// Package media talks to the external image host. Uploaded resources are
// addressed by their hosted URL; the public ID embedded in that URL is what
// the destroy endpoint expects.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Config carries the credentials for the image host account.
type Config struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
}

// Client is an explicitly constructed image-host client. Credentials are
// instance state, not process-wide configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
}

// NewClient returns a Client with a bounded request timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Upload sends the raw image payload (a base64 data URI as received from the
// client) to the host and returns the stable hosted URL.
func (c *Client) Upload(ctx context.Context, payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("media: empty upload payload")
	}

	form := url.Values{}
	form.Set("file", payload)
	form.Set("api_key", c.apiKey)
	ts := fmt.Sprintf("%d", time.Now().Unix())
	form.Set("timestamp", ts)
	form.Set("signature", c.sign(map[string]string{"timestamp": ts}))

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	resp, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media: upload failed with status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("media: decoding upload response: %w", err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("media: upload response missing secure_url")
	}
	return out.SecureURL, nil
}

// Destroy deletes the hosted resource identified by publicID.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return fmt.Errorf("media: empty public ID")
	}

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", c.apiKey)
	ts := fmt.Sprintf("%d", time.Now().Unix())
	form.Set("timestamp", ts)
	form.Set("signature", c.sign(map[string]string{"public_id": publicID, "timestamp": ts}))

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseURL, c.cloudName)
	resp, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media: destroy failed with status %d", resp.StatusCode)
	}

	var out destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("media: decoding destroy response: %w", err)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("media: destroy returned %q", out.Result)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("media: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media: request failed: %w", err)
	}
	return resp, nil
}

// sign produces the host's request signature: the sorted key=value pairs
// joined by '&', concatenated with the API secret, SHA-1 hex encoded.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

// PublicIDFromURL derives the host's resource identifier from a hosted URL:
// the path segment after the last '/' with the extension after the last '.'
// stripped. This is the exact inverse of the hosted URL format, e.g.
// https://res.example.com/img/upload/v171299/zmxorcxexpdbh8r0bkjb.png -> zmxorcxexpdbh8r0bkjb.
func PublicIDFromURL(resourceURL string) string {
	segment := resourceURL
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.LastIndex(segment, "."); i >= 0 {
		segment = segment[:i]
	}
	return segment
}
