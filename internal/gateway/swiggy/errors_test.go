package swiggy

import (
	"errors"
	"strings"
	"testing"
)

func TestUpstreamRequestErrorIncludesContext(t *testing.T) {
	err := &UpstreamRequestError{
		Method:     "GET",
		URL:        "https://example.test/mapi/menu/pl",
		StatusCode: 503,
		Body:       "service\nunavailable\r\n  try later",
		Cause:      errors.New("decode response body: boom"),
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, ErrUpstream.Error()) {
		t.Fatalf("expected sentinel prefix, got %q", msg)
	}
	for _, fragment := range []string{
		"status=503",
		"GET https://example.test/mapi/menu/pl",
		`body="service unavailable try later"`,
		"cause=decode response body: boom",
	} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in %q", fragment, msg)
		}
	}
}

func TestUpstreamRequestErrorSkipsEmptyFields(t *testing.T) {
	err := &UpstreamRequestError{Cause: errors.New("connection refused")}

	msg := err.Error()
	if strings.Contains(msg, "status=") || strings.Contains(msg, "body=") {
		t.Fatalf("expected bare cause message, got %q", msg)
	}
	if !strings.Contains(msg, "cause=connection refused") {
		t.Fatalf("expected cause in %q", msg)
	}
}

func TestUpstreamRequestErrorTruncatesBody(t *testing.T) {
	err := &UpstreamRequestError{StatusCode: 502, Body: strings.Repeat("x", 2000)}

	msg := err.Error()
	if !strings.Contains(msg, strings.Repeat("x", bodyPreviewLimit)+"...") {
		t.Fatalf("expected truncated body preview, got length %d", len(msg))
	}
	if strings.Contains(msg, strings.Repeat("x", bodyPreviewLimit+1)) {
		t.Fatalf("body preview exceeded limit: %d chars", len(msg))
	}
}

func TestUpstreamRequestErrorUnwrapsToSentinel(t *testing.T) {
	var err error = &UpstreamRequestError{StatusCode: 429}
	if !errors.Is(err, ErrUpstream) {
		t.Fatal("expected errors.Is match on ErrUpstream")
	}
}
