package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/rest"
	"github.com/kbukum/restkit/version"
)

// Adapter sends rest requests over HTTP.
type Adapter struct {
	config Config
	log    *logger.Logger

	// anonymous never carries cookies; credentialed shares a jar.
	anonymous    *retryablehttp.Client
	credentialed *retryablehttp.Client
	base         *http.Transport
	limiter      *rate.Limiter

	tracerProvider trace.TracerProvider
}

var _ rest.Transport = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for transport and retry diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// WithTracerProvider sets the provider used when Config.Tracing is on.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Adapter) { a.tracerProvider = tp }
}

// New creates an Adapter from cfg.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Adapter{config: cfg, log: logger.GetGlobalLogger()}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithComponent("httpclient")

	a.base = http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, fmt.Errorf("httpclient: %w", err)
	}
	if tlsCfg != nil {
		a.base.TLSClientConfig = tlsCfg
	}

	var rt http.RoundTripper = a.base
	if cfg.Tracing {
		var otelOpts []otelhttp.Option
		if a.tracerProvider != nil {
			otelOpts = append(otelOpts, otelhttp.WithTracerProvider(a.tracerProvider))
		}
		rt = otelhttp.NewTransport(rt, otelOpts...)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("httpclient: cookie jar: %w", err)
	}
	a.anonymous = a.newRetryClient(rt, nil)
	a.credentialed = a.newRetryClient(rt, jar)

	if cfg.RateLimit > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	return a, nil
}

func (a *Adapter) newRetryClient(rt http.RoundTripper, jar http.CookieJar) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.HTTPClient = &http.Client{Transport: rt, Timeout: a.config.Timeout, Jar: jar}
	c.RetryMax = a.config.RetryMax
	c.RetryWaitMin = a.config.RetryWaitMin
	c.RetryWaitMax = a.config.RetryWaitMax
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.Logger = leveledLogger{a.log}
	return c
}

// Send implements rest.Transport.
func (a *Adapter) Send(ctx context.Context, req *rest.TransportRequest) rest.Outcome {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return rest.Abort(rest.StatusCancelled, err)
		}
	}

	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		a.log.Warn("cannot build request", logger.Fields(
			logger.FieldURL, req.URL,
			logger.FieldError, err.Error(),
		))
		return rest.Abort(rest.StatusNoResponse, err)
	}

	client := a.anonymous
	if req.Credentials {
		client = a.credentialed
	}

	resp, err := client.Do(httpReq)
	if resp == nil {
		return rest.Abort(abortStatus(ctx, err), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return rest.Abort(abortStatus(ctx, readErr), readErr)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return rest.Success(resp.StatusCode, body)
	}
	return rest.Failure(resp.StatusCode, body)
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.base.CloseIdleConnections()
	return nil
}

// Config returns the effective configuration.
func (a *Adapter) Config() Config {
	return a.config
}

func (a *Adapter) buildRequest(ctx context.Context, req *rest.TransportRequest) (*retryablehttp.Request, error) {
	body, contentType, err := encodeBody(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, a.resolve(req.URL), body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("User-Agent", version.UserAgent())
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

func (a *Adapter) resolve(target string) string {
	if a.config.BaseURL == "" || strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(target, "/")
}

// encodeBody returns the bytes to send. Byte slices, strings and readers are
// sent verbatim; anything else is JSON encoded.
func encodeBody(payload any) ([]byte, string, error) {
	switch v := payload.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return v, "", nil
	case rest.Payload:
		return v, "", nil
	case string:
		return []byte(v), "text/plain; charset=utf-8", nil
	case io.Reader:
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(v); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
}

// abortStatus tells a cancelled or timed out request (-1) from one that
// never reached the server (0).
func abortStatus(ctx context.Context, err error) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return rest.StatusCancelled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return rest.StatusCancelled
	}
	return rest.StatusNoResponse
}
