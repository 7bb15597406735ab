// Package fetch retrieves raw metadata documents from a media server.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/internal/logging"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// IDPlaceholder is replaced with the escaped media id in URL templates.
const IDPlaceholder = "{id}"

// Options configures a Client. Zero values select defaults.
type Options struct {
	// URLTemplate is the document URL, e.g. "http://host/api/media/{id}/metadata".
	URLTemplate string

	// Timeout bounds one Document call, retries included.
	Timeout time.Duration

	// RetryMax is the number of retries after the first attempt.
	RetryMax int

	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// HTTPClient is the underlying transport client.
	HTTPClient *http.Client

	Logger genmeta.Logger
}

// Client fetches documents by media id.
type Client struct {
	http     *retryablehttp.Client
	template string
	timeout  time.Duration
	logger   genmeta.Logger
}

// New creates a Client. The URL template must contain {id}.
func New(opts Options) (*Client, error) {
	if !strings.Contains(opts.URLTemplate, IDPlaceholder) {
		return nil, fmt.Errorf("fetch url %q must contain %s: %w", opts.URLTemplate, IDPlaceholder, genmeta.ErrInvalidConfig)
	}
	if opts.RetryMax < 0 {
		return nil, fmt.Errorf("retry max must not be negative: %w", genmeta.ErrInvalidConfig)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = genmeta.DefaultFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}

	rc := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	}
	rc.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.Logger = &retryLogger{logger: opts.Logger}

	return &Client{
		http:     rc,
		template: opts.URLTemplate,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}, nil
}

// URL returns the document URL for id.
func (c *Client) URL(id string) string {
	return strings.ReplaceAll(c.template, IDPlaceholder, url.PathEscape(id))
}

// Document fetches and decodes the document for id. Transport failures,
// non-2xx responses and bodies that are not a JSON object wrap
// genmeta.ErrFetchFailed.
func (c *Client) Document(ctx context.Context, id string) (map[string]any, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("empty media id: %w", genmeta.ErrFetchFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.URL(id)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %v: %w", target, err, genmeta.ErrFetchFailed)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Verbose("fetching %s", target)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %v: %w", target, err, genmeta.ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("GET %s: unexpected status %s: %w", target, resp.Status, genmeta.ErrFetchFailed)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, genmeta.MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", target, err, genmeta.ErrFetchFailed)
	}
	if len(data) > genmeta.MaxDocumentSize {
		return nil, fmt.Errorf("%s: response exceeds %d bytes: %w", target, genmeta.MaxDocumentSize, genmeta.ErrFetchFailed)
	}

	doc, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", target, err, genmeta.ErrFetchFailed)
	}
	return doc, nil
}

// retryLogger adapts genmeta.Logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	logger genmeta.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Verbose("retry: %s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Verbose("retry: %s %v", msg, keysAndValues)
}
