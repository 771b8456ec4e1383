// Package transport sends Text United requests over HTTP with resty.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"textunited-client/internal/client"
	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/logger"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero
const DefaultTimeout = 30 * time.Second

// Options configures a RestyExecutor
type Options struct {
	// Timeout bounds each request; zero means DefaultTimeout
	Timeout time.Duration
	// Endpoint replaces client.BaseURL in outgoing requests, e.g. a sandbox
	// at "http://localhost:8090/api/". Empty targets the real service.
	Endpoint string
}

// RestyExecutor implements client.Executor. It never interprets the status code.
type RestyExecutor struct {
	http *resty.Client
}

var _ client.Executor = (*RestyExecutor)(nil)

// NewRestyExecutor creates an executor from opts
func NewRestyExecutor(opts Options) (*RestyExecutor, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := resty.New().
		SetTimeout(timeout).
		SetLogger(logger.New())

	if opts.Endpoint != "" {
		rewriter, err := newEndpointRewriter(client.BaseURL, opts.Endpoint, http.DefaultTransport)
		if err != nil {
			return nil, err
		}
		c.SetTransport(rewriter)
	}

	return &RestyExecutor{http: c}, nil
}

// Send performs req and returns the status code and raw body
func (e *RestyExecutor) Send(ctx context.Context, req *client.Request) (*client.Response, error) {
	r := e.http.R().
		SetContext(ctx).
		SetHeaderMultiValues(req.Header).
		SetBasicAuth(req.Auth.Username, req.Auth.Password)

	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		r.SetBody(payload)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	return &client.Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

// endpointRewriter redirects requests under base to endpoint
type endpointRewriter struct {
	base     *url.URL
	endpoint *url.URL
	next     http.RoundTripper
}

func newEndpointRewriter(base, endpoint string, next http.RoundTripper) (*endpointRewriter, error) {
	from, err := url.Parse(base)
	if err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("invalid base URL %q: %v", base, err))
	}
	to, err := url.Parse(endpoint)
	if err != nil || to.Scheme == "" || to.Host == "" {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("invalid endpoint %q: expected an absolute URL", endpoint))
	}
	return &endpointRewriter{base: from, endpoint: to, next: next}, nil
}

// RoundTrip implements http.RoundTripper
func (rw *endpointRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host != rw.base.Host || !strings.HasPrefix(req.URL.Path, rw.base.Path) {
		return rw.next.RoundTrip(req)
	}

	target := *req.URL
	target.Scheme = rw.endpoint.Scheme
	target.Host = rw.endpoint.Host
	target.Path = strings.TrimSuffix(rw.endpoint.Path, "/") + "/" + strings.TrimPrefix(req.URL.Path, rw.base.Path)
	target.RawPath = ""

	out := req.Clone(req.Context())
	out.URL = &target
	out.Host = target.Host
	return rw.next.RoundTrip(out)
}
