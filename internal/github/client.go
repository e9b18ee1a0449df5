// internal/github/client.go
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-events-pipeline/internal/errors"
	"github-events-pipeline/internal/model"
)

const (
	acceptHeader        = "application/vnd.github+json"
	headerRateRemaining = "X-RateLimit-Remaining"
	maxPerPage          = 100
	maxErrorBody        = 4 << 10
)

// Options configures the feed client.
type Options struct {
	Token     string
	UserAgent string
	BaseURL   string
	Timeout   time.Duration
}

// Client fetches pages of public events from the GitHub events feed.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// When a token is set, requests carry it as a bearer credential.
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{}
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = opts.Timeout

	gh := github.NewClient(httpClient)
	if opts.UserAgent != "" {
		gh.UserAgent = opts.UserAgent
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid feed base URL %q: %w", opts.BaseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// FetchEvents issues a single GET against the events feed and returns at most
// pageLimit raw event documents, in feed order, together with whatever
// rate-limit information the feed reported.
func (c *Client) FetchEvents(ctx context.Context, pageLimit int) ([]json.RawMessage, model.RateLimit, error) {
	if pageLimit <= 0 {
		return nil, model.RateLimit{}, &custom_errors.ErrInvalidPageLimit{Limit: pageLimit}
	}

	path := fmt.Sprintf("events?per_page=%d", min(pageLimit, maxPerPage))
	req, err := c.gh.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, model.RateLimit{}, &custom_errors.TransportError{URL: path, Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	endpoint := req.URL.String()

	c.logger.Debug("Fetching events page", "url", endpoint, "limit", pageLimit)

	var events []json.RawMessage
	resp, err := c.gh.Do(ctx, req, &events)
	rate := rateLimitFrom(resp)
	if err != nil {
		return nil, rate, classifyError(endpoint, resp, err)
	}
	if events == nil {
		return nil, rate, &custom_errors.ProtocolError{URL: endpoint, Reason: "expected a JSON array of events, got null or an empty body"}
	}

	// The feed decides its own page size; the caller's limit wins.
	if len(events) > pageLimit {
		events = events[:pageLimit]
	}
	return events, rate, nil
}

// classifyError maps a go-github failure onto the fetch error taxonomy.
func classifyError(endpoint string, resp *github.Response, err error) error {
	var accepted *github.AcceptedError
	if errors.As(err, &accepted) {
		return &custom_errors.ProtocolError{URL: endpoint, Reason: "feed accepted the request without returning events"}
	}

	if resp != nil && resp.Response != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return &custom_errors.HTTPStatusError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       errorBody(resp, err),
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &custom_errors.ProtocolError{URL: endpoint, Reason: "expected a JSON array of events", Err: err}
	}

	return &custom_errors.TransportError{URL: endpoint, Err: err}
}

// errorBody prefers the feed's JSON error message and falls back to the raw body.
func errorBody(resp *github.Response, err error) string {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		return ghErr.Message
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Message != "" {
		return rateErr.Message
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Message != "" {
		return abuseErr.Message
	}

	if resp.Body == nil {
		return ""
	}
	defer resp.Body.Close()
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if readErr != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func rateLimitFrom(resp *github.Response) model.RateLimit {
	if resp == nil || resp.Response == nil || resp.Header.Get(headerRateRemaining) == "" {
		return model.RateLimit{}
	}
	return model.RateLimit{
		Known:     true,
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		Reset:     resp.Rate.Reset.Time,
	}
}
