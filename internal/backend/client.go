package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Afrawles/taskdash/internal/tasks"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second
)

type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Retries       int
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Client talks to the task-manager REST API.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ tasks.Source = (*Client)(nil)

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}

	return &Client{
		http:    rc,
		limiter: rate.NewLimiter(limit, 1),
		logger:  opts.Logger,
	}
}

// retryCondition retries transport failures and 5xx responses only.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

// errorBody is the error JSON the backend returns: {error|message|data}.
type errorBody struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	if b.Message != "" {
		return b.Message
	}
	var s string
	if len(b.Data) > 0 && json.Unmarshal(b.Data, &s) == nil {
		return s
	}
	return ""
}

type request struct {
	op     string
	path   string
	query  map[string]string
	params map[string]string
	auth   bool
}

// get performs the request and decodes a 2xx body into out, mapping every
// failure onto the tasks error taxonomy.
func (c *Client) get(ctx context.Context, s tasks.Session, r request, out any) error {
	if r.auth && s.Token == "" {
		return &tasks.AuthError{Op: r.op, Message: "no token available"}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &tasks.NetworkError{Op: r.op, Err: err}
	}

	req := c.http.R().SetContext(ctx).
		SetQueryParams(r.query).
		SetPathParams(r.params)
	if s.Token != "" {
		req.SetAuthToken(s.Token)
	}

	start := time.Now()
	resp, err := req.Get(r.path)
	if err != nil {
		return &tasks.NetworkError{Op: r.op, Err: err}
	}
	c.logger.Debug("backend request",
		"op", r.op,
		"status", resp.StatusCode(),
		"duration", time.Since(start),
	)

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return classify(r.op, code, resp.Body())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &tasks.NetworkError{Op: r.op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func classify(op string, code int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	msg := eb.text()

	switch {
	case code == http.StatusUnauthorized:
		return &tasks.AuthError{Op: op, Message: msg}
	case msg == tasks.NotInTeamMessage:
		return fmt.Errorf("%s: %w", op, tasks.ErrNotInTeam)
	default:
		if msg == "" {
			msg = http.StatusText(code)
		}
		return &tasks.ServerError{Op: op, Status: code, Message: msg}
	}
}
