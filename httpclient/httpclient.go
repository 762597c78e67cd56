// Package httpclient provides the outbound counterpart of the kit's HTTP
// middleware: a resty client that propagates the correlation identifier of
// the calling request, attaches the bearer credential, and retries
// transient upstream failures with backoff.
package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/trace"
)

const (
	retryWaitTime    = 100 * time.Millisecond
	retryMaxWaitTime = 2 * time.Second
)

// Options configures a [Client].
type Options struct {
	// BaseURL is the upstream base address. A bare host:port gets an
	// http:// scheme prepended; a trailing slash is trimmed. Required.
	BaseURL string

	// Timeout bounds each request attempt. Zero means no timeout.
	Timeout time.Duration

	// Retries is the number of additional attempts after a failed one.
	// Transport errors, 5xx and 429 responses are retried with
	// exponential backoff. Zero disables retrying.
	Retries int

	// BearerToken, when set, is sent as the Authorization bearer
	// credential on every request.
	BearerToken string
}

// Client is a wrapper around the resty.Client HTTP client. It embeds
// *resty.Client to expose all of its methods directly, while carrying the
// kit's outbound conventions: trace-ID propagation, bearer auth and
// transient-failure retries.
type Client struct {
	*resty.Client
}

// New creates a Client for the upstream described by opts.
//
// Every request picks up the correlation identifier from its context (set
// it with SetContext) and sends it in the X-Trace-ID header, so outbound
// calls are traceable across service hops. Completed requests are logged
// at debug level through the context logger; the Authorization header
// value never reaches the log.
//
// Returns an error if opts.BaseURL is empty or cannot be parsed as a
// valid URL.
func New(opts Options, log *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetLogger(restyLogger{log: log})

	if opts.Retries > 0 {
		c.SetRetryCount(opts.Retries).
			SetRetryWaitTime(retryWaitTime).
			SetRetryMaxWaitTime(retryMaxWaitTime).
			AddRetryCondition(shouldRetry)
	}

	if opts.BearerToken != "" {
		c.SetAuthToken(opts.BearerToken)
	}

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if traceID, ok := trace.GetIDFromContext(req.Context()); ok && req.Header.Get(trace.Header) == "" {
			req.SetHeader(trace.Header, traceID)
		}
		return nil
	})

	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.FromContext(resp.Request.Context()).Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("outbound request completed")
		return nil
	})

	return &Client{Client: c}, nil
}

// shouldRetry reports whether an attempt should be repeated: transport
// errors, server-side failures and rate-limit responses count as
// transient.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	return resp.StatusCode() >= http.StatusInternalServerError ||
		resp.StatusCode() == http.StatusTooManyRequests
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// restyLogger routes resty's internal messages (retry give-ups, hook
// failures) into the kit logger.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.log.Debug().Msgf(format, v...) }
