package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/klwxsrx/go-auth-session/pkg/log"
	"github.com/klwxsrx/go-auth-session/pkg/metric"
	"github.com/klwxsrx/go-auth-session/pkg/observability"
)

const DefaultRequestIDHeader = "X-Request-ID"

type (
	Destination string

	Route struct {
		Method string
		URL    string
	}

	ClientOption func(*ClientImpl)

	Client interface {
		NewRequest(ctx context.Context, route Route) Request
		With(opts ...ClientOption) Client
	}

	Request interface {
		SetHeader(key, value string) Request
		SetPathParam(key, value string) Request
		SetCookie(cookie *http.Cookie) Request
		SetJSONBody(body any) Request
		Send() (Response, error)
	}

	Response interface {
		StatusCode() int
		Header() http.Header
		Cookies() []*http.Cookie
		Body() []byte
		RawResponse() *http.Response
	}

	ClientImpl struct {
		DestinationName string
		RESTClient      *resty.Client
		opts            []ClientOption
	}

	request struct {
		impl  *resty.Request
		route Route
	}

	response struct {
		impl *resty.Response
	}
)

func NewClient(opts ...ClientOption) Client {
	client := ClientImpl{
		DestinationName: "",
		RESTClient:      resty.New(),
		opts:            opts,
	}

	for _, opt := range opts {
		opt(&client)
	}

	return client
}

func (c ClientImpl) NewRequest(ctx context.Context, route Route) Request {
	return request{
		impl:  c.RESTClient.NewRequest().SetContext(ctx),
		route: route,
	}
}

// With builds a new client, so client state such as the cookie jar is shared
// only when it is passed through an option.
func (c ClientImpl) With(opts ...ClientOption) Client {
	mergedOpts := make([]ClientOption, 0, len(c.opts)+len(opts))
	mergedOpts = append(mergedOpts, c.opts...)
	mergedOpts = append(mergedOpts, opts...)
	return NewClient(mergedOpts...)
}

func (r request) SetHeader(key, value string) Request {
	r.impl.SetHeader(key, value)
	return r
}

func (r request) SetPathParam(key, value string) Request {
	r.impl.SetPathParam(key, value)
	return r
}

func (r request) SetCookie(cookie *http.Cookie) Request {
	r.impl.SetCookie(cookie)
	return r
}

func (r request) SetJSONBody(body any) Request {
	r.impl.
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	return r
}

func (r request) Send() (Response, error) {
	resp, err := r.impl.Execute(r.route.Method, r.route.URL)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.route.Method, r.route.URL, err)
	}

	return response{impl: resp}, nil
}

func (r response) StatusCode() int {
	return r.impl.StatusCode()
}

func (r response) Header() http.Header {
	return r.impl.Header()
}

func (r response) Cookies() []*http.Cookie {
	return r.impl.Cookies()
}

func (r response) Body() []byte {
	return r.impl.Body()
}

func (r response) RawResponse() *http.Response {
	return r.impl.RawResponse
}

func WithClientDestination(name, url string) ClientOption {
	return func(c *ClientImpl) {
		c.DestinationName = name
		c.RESTClient.SetBaseURL(url)
	}
}

func WithClientBaseURL(url string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetBaseURL(url)
	}
}

func WithClientTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetTimeout(timeout)
	}
}

func WithRequestHeader(key, value string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetHeader(key, value)
	}
}

// WithCookieJar makes the client store and send cookies through jar, nil disables cookie handling.
func WithCookieJar(jar http.CookieJar) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetCookieJar(jar)
	}
}

func WithRequestObservability(observer observability.Observer, requestIDHeaderName string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			id := observer.Field(req.Context(), observability.FieldRequestID)
			if id == "" {
				return nil
			}

			req.SetHeader(requestIDHeaderName, id)
			return nil
		})
	}
}

func WithRequestLogging(logger log.Logger, infoLevel, errorLevel log.Level) ClientOption {
	const destinationNameLogField = "destinationName"
	return func(c *ClientImpl) {
		destinationName := getDestinationNameForLogging(c)

		c.RESTClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			respLogger := getRequestResponseFieldsLogger(resp.Request.RawRequest, resp.StatusCode(), logger).
				WithField(destinationNameLogField, destinationName)

			if resp.StatusCode() >= http.StatusInternalServerError {
				respLogger.Log(resp.Request.Context(), errorLevel, "http call completed with internal error")
			} else {
				respLogger.Log(resp.Request.Context(), infoLevel, "http call completed")
			}

			return nil
		})

		c.RESTClient.OnError(func(req *resty.Request, err error) {
			reqLogger := logger
			if req.RawRequest != nil {
				reqLogger = getRequestFieldsLogger(req.RawRequest, reqLogger)
			}

			reqLogger.
				WithField(destinationNameLogField, destinationName).
				WithError(err).
				Log(req.Context(), errorLevel, "http call completed with error")
		})
	}
}

func WithRequestMetrics(metrics metric.Metrics) ClientOption {
	return func(c *ClientImpl) {
		destinationName := c.DestinationName
		if destinationName == "" {
			destinationName = "none"
		}

		c.RESTClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			path := ""
			if resp.Request.RawRequest != nil {
				path = resp.Request.RawRequest.URL.Path
			}

			metrics.With(metric.Labels{
				"destination": destinationName,
				"method":      resp.Request.Method,
				"path":        path,
				"code":        fmt.Sprintf("%d", resp.StatusCode()),
			}).Duration("http_client_request_duration_seconds", resp.Time())
			return nil
		})
	}
}

type ClientFactory struct {
	baseOpts []ClientOption
}

func NewClientFactory(opts ...ClientOption) ClientFactory {
	return ClientFactory{
		baseOpts: opts,
	}
}

func (f ClientFactory) InitClient(dest Destination, baseURL string, extraOpts ...ClientOption) Client {
	opts := make([]ClientOption, 0, len(extraOpts)+1)
	opts = append(opts, WithClientDestination(string(dest), baseURL))
	opts = append(opts, extraOpts...)

	return f.httpClient(opts...)
}

func (f ClientFactory) httpClient(extraOpts ...ClientOption) Client {
	opts := make([]ClientOption, 0, len(f.baseOpts)+len(extraOpts))
	opts = append(opts, extraOpts...)
	opts = append(opts, f.baseOpts...)

	return NewClient(opts...)
}

func getDestinationNameForLogging(c *ClientImpl) string {
	if c.DestinationName != "" {
		return c.DestinationName
	}
	return "-"
}
