package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/httpx"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

// Client is the payment provider consumed as a black box. The gateway never
// interprets provider objects beyond the IDs and URLs surfaced here.
type Client interface {
	EnsureCustomer(ctx context.Context, existingCustomerID, email, name string) (customerID string, created bool, err error)
	CreateCheckoutSession(ctx context.Context, customerID, plan string) (checkoutURL string, err error)
	CreatePortalSession(ctx context.Context, customerID string) (portalURL string, err error)
	VerifyWebhookSignature(payload []byte, signature string) bool
}

type Config struct {
	BaseURL       string
	SecretKey     string
	WebhookSecret string
	Timeout       time.Duration
}

type client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

func New(baseLog *logger.Logger, cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  baseLog.With("client", "PaymentsClient"),
	}
}

func (c *client) EnsureCustomer(ctx context.Context, existingCustomerID, email, name string) (string, bool, error) {
	if strings.TrimSpace(existingCustomerID) != "" {
		return existingCustomerID, false, nil
	}
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)
	var out struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, "/v1/customers", form, &out); err != nil {
		return "", false, err
	}
	if out.ID == "" {
		return "", false, fmt.Errorf("payment provider returned empty customer id")
	}
	return out.ID, true, nil
}

func (c *client) CreateCheckoutSession(ctx context.Context, customerID, plan string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", plan)
	form.Set("line_items[0][quantity]", "1")
	var out struct {
		URL string `json:"url"`
	}
	if err := c.postForm(ctx, "/v1/checkout/sessions", form, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *client) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	var out struct {
		URL string `json:"url"`
	}
	if err := c.postForm(ctx, "/v1/billing_portal/sessions", form, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// VerifyWebhookSignature checks an HMAC-SHA256 hex signature over the raw
// webhook payload.
func (c *client) VerifyWebhookSignature(payload []byte, signature string) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" || c.cfg.WebhookSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.cfg.WebhookSecret))
	_, _ = mac.Write(payload)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}

func (c *client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(httpx.Backoff(attempt, 500*time.Millisecond)):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewBufferString(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if httpx.IsRetryableError(err) {
				continue
			}
			return err
		}
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("payment provider %s returned %d: %.200s", path, resp.StatusCode, string(body))
			if httpx.IsRetryableStatus(resp.StatusCode) {
				continue
			}
			return lastErr
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(body, out)
	}
	return lastErr
}
