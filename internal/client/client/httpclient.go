package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/udlm/internal/client/models"
	"github.com/dmitrijs2005/udlm/internal/common"
	"github.com/dmitrijs2005/udlm/internal/logging"
	"github.com/dmitrijs2005/udlm/internal/metrics"
	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// Operation names used in logs and metrics.
const (
	opLogin              = "login"
	opRegister           = "register"
	opListSubscriptions  = "list_subscriptions"
	opCreateSubscription = "create_subscription"
	opPing               = "ping"
)

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	log       logging.Logger
	metrics   metrics.Recorder
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (its Timeout included).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *HTTPClient) { c.metrics = r }
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8000". A zero timeout means no client-side limit.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server url: missing host in %q", baseURL)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		log:       logging.Nop(),
		metrics:   metrics.Nop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type request struct {
	op          string
	method      string
	path        string
	token       string
	contentType string
	body        []byte
}

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do performs one round-trip. Only transport failures are returned as
// errors; any HTTP status is handed back to the caller.
func (c *HTTPClient) do(ctx context.Context, r request) (response, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return response{}, fmt.Errorf("%s: build request: %w", r.op, err)
	}

	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+r.token)
	}

	log := c.log.With("op", r.op, "request_id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRequest(r.op, metrics.OutcomeTransport, time.Since(start))
		log.Warn(ctx, "request failed", logging.Err(err))
		return response{}, fmt.Errorf("%s: %w: %w", r.op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	latency := time.Since(start)
	if err != nil {
		c.metrics.RecordRequest(r.op, metrics.OutcomeTransport, latency)
		log.Warn(ctx, "reading response body failed", logging.Err(err))
		return response{}, fmt.Errorf("%s: read body: %w: %w", r.op, ErrUnavailable, err)
	}

	out := response{status: resp.StatusCode, body: data}

	c.metrics.RecordHTTPStatus(r.op, resp.StatusCode)
	if out.ok() {
		c.metrics.RecordRequest(r.op, metrics.OutcomeOK, latency)
	} else {
		c.metrics.RecordRequest(r.op, metrics.OutcomeServerError, latency)
	}
	log.Debug(ctx, "request completed", "status", resp.StatusCode, "latency", latency)

	return out, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, op string, path string, token string, v any) (response, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return response{}, fmt.Errorf("%s: encode body: %w", op, err)
	}
	return c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		token:       token,
		contentType: "application/json",
		body:        payload,
	})
}

// Login exchanges credentials for an access token. The API expects an
// OAuth2 password form, so the email travels as "username".
func (c *HTTPClient) Login(ctx context.Context, username string, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.do(ctx, request{
		op:          opLogin,
		method:      http.MethodPost,
		path:        common.LoginPath,
		contentType: "application/x-www-form-urlencoded",
		body:        []byte(form.Encode()),
	})
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", newAPIError(resp.status, resp.body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return "", fmt.Errorf("%s: %w: %w", opLogin, ErrMalformedResponse, err)
	}
	if payload.AccessToken == "" {
		return "", ErrMissingToken
	}
	return payload.AccessToken, nil
}

// Register creates an account. A successful response body is ignored, so an
// empty or non-JSON body on 2xx is not an error.
func (c *HTTPClient) Register(ctx context.Context, email string, password string, fullName string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}{Email: email, Password: password, FullName: fullName}

	resp, err := c.postJSON(ctx, opRegister, common.RegisterPath, "", body)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return newAPIError(resp.status, resp.body)
	}
	return nil
}

// ListSubscriptions fetches every subscription of the token's owner.
//
// A 2xx body that is valid JSON but not an array of subscriptions is
// treated as an empty list rather than an error; only a body that is not
// JSON at all yields ErrMalformedResponse.
func (c *HTTPClient) ListSubscriptions(ctx context.Context, token string) ([]models.Subscription, error) {
	resp, err := c.do(ctx, request{
		op:     opListSubscriptions,
		method: http.MethodGet,
		path:   common.SubscriptionsPath,
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.body)
	}

	if !json.Valid(resp.body) {
		return nil, fmt.Errorf("%s: %w", opListSubscriptions, ErrMalformedResponse)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(resp.body, &items); err != nil {
		c.log.Warn(ctx, "unexpected subscriptions payload, treating as empty", "op", opListSubscriptions, logging.Err(err))
		return []models.Subscription{}, nil
	}

	subs := make([]models.Subscription, 0, len(items))
	for i, item := range items {
		var sub models.Subscription
		if err := json.Unmarshal(item, &sub); err != nil {
			c.log.Warn(ctx, "skipping undecodable subscription", "op", opListSubscriptions, "index", i, logging.Err(err))
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// CreateSubscription persists sub and returns the server's record.
func (c *HTTPClient) CreateSubscription(ctx context.Context, token string, sub models.NewSubscription) (models.Subscription, error) {
	resp, err := c.postJSON(ctx, opCreateSubscription, common.SubscriptionsPath, token, sub)
	if err != nil {
		return models.Subscription{}, err
	}
	if !resp.ok() {
		return models.Subscription{}, newAPIError(resp.status, resp.body)
	}

	var created models.Subscription
	if err := json.Unmarshal(resp.body, &created); err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w: %w", opCreateSubscription, ErrMalformedResponse, err)
	}
	return created, nil
}

// Ping probes the API root. Any answer below 500 counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, request{op: opPing, method: http.MethodGet, path: "/"})
	if err != nil {
		return err
	}
	if resp.status >= http.StatusInternalServerError {
		return fmt.Errorf("%s: status %d: %w", opPing, resp.status, ErrUnavailable)
	}
	return nil
}
