package blockpalettes

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind classifies a failed call so callers can decide whether to retry, fix input or report breakage.
type Kind int

const (
	// KindNetwork means the request did not complete: transport failure or an unexpected status.
	KindNetwork Kind = iota + 1
	// KindParse means a body arrived but did not have the expected JSON shape or HTML structure.
	KindParse
	// KindNotFound means the site reported that the requested resource does not exist.
	KindNotFound
	// KindAPI means the site answered with success=false for a reason other than not-found.
	KindAPI
	// KindInvalidInput means the call was rejected before any request was sent.
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not found"
	case KindAPI:
		return "api"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrNetwork      = errors.New("blockpalettes: network error")
	ErrParse        = errors.New("blockpalettes: parse error")
	ErrNotFound     = errors.New("blockpalettes: not found")
	ErrAPI          = errors.New("blockpalettes: api error")
	ErrInvalidInput = errors.New("blockpalettes: invalid input")
)

// Error is returned by every Client operation.
type Error struct {
	Kind       Kind
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrParse:
		return e.Kind == KindParse
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrAPI:
		return e.Kind == KindAPI
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	}
	return false
}

// KindOf reports the Kind of err, or 0 when err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, op, url string, err error) *Error {
	return &Error{Kind: kind, Op: op, URL: url, Err: err}
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
