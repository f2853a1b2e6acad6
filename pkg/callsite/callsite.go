// Package callsite resolves the caller-code location of an observed call
// by walking the runtime stack outward past the instrumentation frames.
package callsite

import (
	"runtime"
	"strings"

	"github.com/VyankateshD206/aiobs/pkg/model"
)

// maxDepth bounds the stack walk; caller code is expected well within this.
const maxDepth = 64

// instrumentationPrefixes lists package paths whose frames belong to the
// interception machinery or the wrapped SDKs and are never reported as
// the callsite.
var instrumentationPrefixes = []string{
	"github.com/VyankateshD206/aiobs/pkg/callsite",
	"github.com/VyankateshD206/aiobs/pkg/observer",
	"github.com/VyankateshD206/aiobs/pkg/provider",
	"github.com/openai/openai-go",
	"github.com/anthropics/anthropic-sdk-go",
	"net/http",
	"runtime",
}

// Resolve returns the first stack frame outside the instrumentation
// machinery: the caller code that triggered the observed call. It
// returns a zero Callsite when no such frame exists and never panics.
func Resolve() model.Callsite {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return model.Callsite{}
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !isInstrumentation(frame.Function) {
			return model.Callsite{
				File:     frame.File,
				Line:     frame.Line,
				Function: frame.Function,
			}
		}
		if !more {
			return model.Callsite{}
		}
	}
}

// isInstrumentation reports whether fn belongs to one of the skipped
// packages. The match is anchored at a package boundary so that, for
// example, pkg/provider does not also swallow pkg/provider_other.
func isInstrumentation(fn string) bool {
	for _, prefix := range instrumentationPrefixes {
		if !strings.HasPrefix(fn, prefix) {
			continue
		}
		rest := fn[len(prefix):]
		if rest == "" || rest[0] == '.' || rest[0] == '/' {
			return true
		}
	}
	return false
}
