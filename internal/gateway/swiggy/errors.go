package swiggy

import (
	"fmt"
	"strings"
)

// bodyPreviewLimit caps how much of an upstream response body lands in an
// error string.
const bodyPreviewLimit = 800

// UpstreamRequestError carries the HTTP context of a failed upstream call.
type UpstreamRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Cause      error
}

// Error renders the failure with whatever request context the call had
// accumulated before it gave up.
func (e *UpstreamRequestError) Error() string {
	var b strings.Builder
	b.WriteString(ErrUpstream.Error())
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, "; status=%d", e.StatusCode)
	}
	if target := strings.TrimSpace(strings.TrimSpace(e.Method) + " " + strings.TrimSpace(e.URL)); target != "" {
		b.WriteString("; ")
		b.WriteString(target)
	}
	if preview := previewBody(e.Body); preview != "" {
		fmt.Fprintf(&b, "; body=%q", preview)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, "; cause=%v", e.Cause)
	}
	return b.String()
}

// Unwrap lets callers match the gateway sentinel with errors.Is.
func (e *UpstreamRequestError) Unwrap() error {
	return ErrUpstream
}

// previewBody collapses whitespace runs and truncates oversized payloads.
func previewBody(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > bodyPreviewLimit {
		body = body[:bodyPreviewLimit] + "..."
	}
	return body
}
