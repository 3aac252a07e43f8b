// Package api is the HTTP client for the GovSimplify message and news backends.
package api

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

	"golang.org/x/sync/singleflight"

	gserrors "github.com/botenders/govsimplify/internal/errors"
	"github.com/botenders/govsimplify/internal/logger"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	maxErrorBody       = 4 << 10
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code    int
	Message string // the backend's {message}, if it sent one
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("status %d", e.Code)
}

// Client talks to the message and news endpoints. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	newsGroup singleflight.Group
	now       func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client sends to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendMessage posts one user message to the agency's message endpoint.
func (c *Client) SendMessage(ctx context.Context, agencyID string, req MessageRequest) (*Reply, error) {
	const op = gserrors.Op("api.SendMessage")
	endpoint := c.baseURL + "/message/" + url.PathEscape(agencyID)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, gserrors.E(op, gserrors.KindInvalid, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, gserrors.E(op, gserrors.KindInvalid, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	var reply Reply
	if err := c.do(op, endpoint, httpReq, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// FetchNews returns the news for agencyName. Calls for the same agency that
// overlap in time share one request; nothing is kept once it completes.
func (c *Client) FetchNews(ctx context.Context, agencyName string) ([]Article, error) {
	v, err, shared := c.newsGroup.Do(agencyName, func() (any, error) {
		return c.fetchNews(ctx, agencyName)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.WithComponent("api").Debug("news fetch coalesced", "agency", agencyName)
	}
	return v.([]Article), nil
}

func (c *Client) fetchNews(ctx context.Context, agencyName string) ([]Article, error) {
	const op = gserrors.Op("api.FetchNews")
	endpoint := c.baseURL + "/news/" + url.PathEscape(agencyName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, gserrors.E(op, gserrors.KindInvalid, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	var resp newsResponse
	if err := c.do(op, endpoint, httpReq, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []Article{}, nil
	}
	return resp.Results, nil
}

// do executes req and decodes a 2xx JSON body into out.
func (c *Client) do(op gserrors.Op, endpoint string, req *http.Request, out any) error {
	log := logger.WithComponent("api")
	start := c.now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gserrors.RequestFailed(op, endpoint, err)
	}
	defer resp.Body.Close()

	log.Debug("backend response", "op", string(op), "status", resp.StatusCode, "elapsed", c.now().Sub(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gserrors.StatusFailed(op, endpoint, statusError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return gserrors.DecodeFailed(op, endpoint, err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	se := &StatusError{Code: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	var er errorResponse
	if json.Unmarshal(data, &er) == nil {
		se.Message = er.Message
	}
	return se
}
