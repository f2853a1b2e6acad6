// Package anthropic attaches the observability interceptor to the
// official Anthropic Go client at its request-middleware seam.
package anthropic

import (
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/VyankateshD206/aiobs/pkg/provider"
)

// Name is the provider identifier recorded on events.
const Name = "anthropic"

// Interceptor instruments Anthropic clients at the HTTP middleware seam.
type Interceptor struct {
	*provider.Base
}

// NewInterceptor creates the Anthropic interceptor and registers it, so
// the collector installs it when a session opens.
func NewInterceptor() *Interceptor {
	i := &Interceptor{Base: provider.NewBase(Name)}
	provider.Register(i)
	return i
}

// Middleware returns the request middleware that times and captures
// every call made by a client constructed with it.
func (i *Interceptor) Middleware() option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		return provider.CaptureRoundTrip(i.Base, apiName(req), req, func(r *http.Request) (*http.Response, error) {
			return next(r)
		})
	}
}

// NewClient returns an Anthropic client wired through the interceptor.
func (i *Interceptor) NewClient(opts ...option.RequestOption) anthropic.Client {
	all := append([]option.RequestOption{option.WithMiddleware(i.Middleware())}, opts...)
	return anthropic.NewClient(all...)
}

// apiName maps an Anthropic endpoint path to the logical operation name
// recorded on events.
func apiName(req *http.Request) string {
	path := req.URL.Path
	switch {
	case strings.HasSuffix(path, "/messages/count_tokens"):
		return "messages.count_tokens"
	case strings.HasSuffix(path, "/messages"):
		return "messages.create"
	case strings.HasSuffix(path, "/complete"):
		return "completions.create"
	default:
		return strings.ReplaceAll(strings.Trim(path, "/"), "/", ".")
	}
}
