// Package openai attaches the observability interceptor to the official
// OpenAI Go client at its request-middleware seam. Call sites keep using
// the vendor client; only construction changes:
//
//	icpt := openai.NewInterceptor()
//	client := icpt.NewClient(option.WithAPIKey(key))
//	observer.Observe("run")
//	completion, err := client.Chat.Completions.New(ctx, params)
package openai

import (
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/VyankateshD206/aiobs/pkg/provider"
)

// Name is the provider identifier recorded on events.
const Name = "openai"

// Interceptor instruments OpenAI clients at the HTTP middleware seam.
type Interceptor struct {
	*provider.Base
}

// NewInterceptor creates the OpenAI interceptor and registers it, so the
// collector installs it when a session opens.
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

// NewClient returns an OpenAI client wired through the interceptor.
// Additional request options are applied after the middleware.
func (i *Interceptor) NewClient(opts ...option.RequestOption) openai.Client {
	all := append([]option.RequestOption{option.WithMiddleware(i.Middleware())}, opts...)
	return openai.NewClient(all...)
}

// apiName maps an OpenAI endpoint path to the logical operation name
// recorded on events.
func apiName(req *http.Request) string {
	path := req.URL.Path
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		return "chat.completions.create"
	case strings.HasSuffix(path, "/embeddings"):
		return "embeddings.create"
	case strings.HasSuffix(path, "/responses"):
		return "responses.create"
	case strings.HasSuffix(path, "/completions"):
		return "completions.create"
	default:
		return strings.ReplaceAll(strings.Trim(path, "/"), "/", ".")
	}
}
