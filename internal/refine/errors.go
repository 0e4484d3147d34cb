package refine

import "fmt"

// Kind classifies a refinement failure.
type Kind string

const (
	KindUnsupportedProvider Kind = "unsupported_provider"
	KindRequestFailed       Kind = "request_failed"
	KindMalformedResponse   Kind = "malformed_response"
	KindMissingCredential   Kind = "missing_credential"
	KindEmptyPrompt         Kind = "empty_prompt"
)

// Error is the single failure value returned by Dispatcher.Refine.
type Error struct {
	Kind     Kind
	Provider Provider
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnsupportedProvider:
		return fmt.Sprintf("unknown provider %q", e.Provider)
	case KindMissingCredential:
		return fmt.Sprintf("%s: API key required, add it in settings", e.Provider)
	case KindEmptyPrompt:
		return "enter a prompt first"
	case KindMalformedResponse:
		return fmt.Sprintf("%s: failed to parse response: %s", e.Provider, e.Detail)
	default:
		return fmt.Sprintf("%s: request failed: %s", e.Provider, e.Detail)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can use the sentinel values with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnsupportedProvider = &Error{Kind: KindUnsupportedProvider}
	ErrRequestFailed       = &Error{Kind: KindRequestFailed}
	ErrMalformedResponse   = &Error{Kind: KindMalformedResponse}
	ErrMissingCredential   = &Error{Kind: KindMissingCredential}
	ErrEmptyPrompt         = &Error{Kind: KindEmptyPrompt}
)

func requestFailed(p Provider, err error) *Error {
	return &Error{Kind: KindRequestFailed, Provider: p, Detail: err.Error(), Err: err}
}
