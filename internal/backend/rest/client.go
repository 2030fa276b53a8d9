// Package rest implements the service.Store interface against the to-do REST API.
package rest

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

	"github.com/charmbracelet/log"

	"todoctl/internal/config"
	"todoctl/internal/logging"
	"todoctl/internal/service"
)

const (
	// CollectionPath is the task collection endpoint.
	CollectionPath = "/todos"

	// maxErrorBodySize caps how much of a non-2xx body is read for its detail.
	maxErrorBodySize = 64 << 10
)

// Client implements service.Store over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	schemas    *schemas
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for cfg.APIURL.
// Response validation follows cfg.ValidateResponses.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithBaseURL(cfg.APIURL, cfg.ValidateResponses, opts...)
}

// NewWithBaseURL creates a client for baseURL without a Config (for testing).
func NewWithBaseURL(baseURL string, validate bool, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if validate {
		s, err := compileSchemas()
		if err != nil {
			return nil, fmt.Errorf("compile response schema: %w", err)
		}
		c.schemas = s
	}
	return c, nil
}

// SetLogger replaces the request logger. It must not race with requests.
func (c *Client) SetLogger(l *log.Logger) {
	c.logger = l
}

// List returns every task in server order.
func (c *Client) List(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, CollectionPath, nil, &tasks, kindList); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// Get returns a single task by id.
func (c *Client) Get(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task, kindTask); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Create creates a task.
func (c *Client) Create(ctx context.Context, task service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, http.MethodPost, CollectionPath, task, &created, kindTask); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// Update applies patch to the task with the given id.
func (c *Client) Update(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	var updated service.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), patch, &updated, kindTask); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// Delete removes the task with the given id. Any response body is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, kindNone)
}

func taskPath(id string) string {
	return CollectionPath + "/" + url.PathEscape(id)
}

// do sends one request and decodes a 2xx response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, kind responseKind) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return newStatusError(method, path, resp.StatusCode, data)
	}

	// The list endpoint is unpaginated, so successful bodies are read whole.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if out == nil {
		return nil
	}
	if c.schemas != nil {
		if err := c.schemas.validate(kind, data); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
