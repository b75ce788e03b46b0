package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// LineItem is the processor-facing price descriptor for one cart line.
// UnitAmount is in the currency's minor unit (cents, paise).
type LineItem struct {
	Currency   string
	Name       string
	UnitAmount int64
	Quantity   int
}

// SessionRequest describes the hosted checkout session to create.
type SessionRequest struct {
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

// Session is the processor's handle for a hosted checkout page.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SessionCreator is the interface checkout depends on.
type SessionCreator interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// ProcessorError is any failure reported by (or while reaching) the
// payment processor. Status is the HTTP status, or 0 for transport errors.
type ProcessorError struct {
	Status  int
	Message string
}

func (e *ProcessorError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("payment processor unreachable: %s", e.Message)
	}
	return fmt.Sprintf("payment processor error (status %d): %s", e.Status, e.Message)
}

// Config holds processor connection settings.
type Config struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// Client talks to a Stripe-compatible hosted checkout API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// CreateSession requests a hosted checkout session and returns its
// redirect URL. All failures come back as *ProcessorError.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}
	for i, item := range req.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", item.Currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ProcessorError{Message: err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Timeouts and transport failures count as processor failures
		return nil, &ProcessorError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProcessorError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProcessorError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, &ProcessorError{Status: resp.StatusCode, Message: "malformed session response"}
	}
	if session.URL == "" {
		return nil, &ProcessorError{Status: resp.StatusCode, Message: "session response missing redirect url"}
	}
	return &session, nil
}

// errorMessage extracts the processor's error text from a failure body.
func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "unknown processor error"
	}
	return msg
}
