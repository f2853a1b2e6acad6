package anthropic

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/v1/messages", "messages.create"},
		{"/v1/messages/count_tokens", "messages.count_tokens"},
		{"/v1/complete", "completions.create"},
		{"/v1/models", "v1.models"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{Path: tt.path}}
			assert.Equal(t, tt.want, apiName(req))
		})
	}
}
