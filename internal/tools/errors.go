package tools

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the fixed failure taxonomy shared by both transports. Every
// provider-specific failure is translated into one of these before it leaves
// a tool, so neither transport nor any client needs provider knowledge.
type ErrorKind string

const (
	KindInvalidParameters ErrorKind = "invalid_parameters"
	KindUnknownTool       ErrorKind = "unknown_tool"
	KindMissingCredential ErrorKind = "missing_credential"
	KindUpstreamError     ErrorKind = "upstream_error"
	KindRateLimited       ErrorKind = "rate_limited"
	KindNotFound          ErrorKind = "not_found"
)

// Error is a failed InvocationResult. It never crashes the process; the
// transport that received the request renders it in its own envelope.
type Error struct {
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus maps the kind onto the REST surface.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidParameters, KindUnknownTool:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamError:
		return http.StatusBadGateway
	case KindRateLimited, KindMissingCredential:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RPCCode maps the kind onto the JSON-RPC numeric code space.
func (e *Error) RPCCode() int {
	switch e.Kind {
	case KindInvalidParameters, KindUnknownTool:
		return -32602
	case KindMissingCredential:
		return -32001
	case KindUpstreamError:
		return -32003
	case KindRateLimited:
		return -32004
	case KindNotFound:
		return -32005
	default:
		return -32603
	}
}

func InvalidParameters(field string, msg string) *Error {
	return &Error{
		Kind:    KindInvalidParameters,
		Message: fmt.Sprintf("invalid parameter %q: %s", field, msg),
		Context: map[string]any{"field": field},
	}
}

func UnknownTool(name string) *Error {
	return &Error{
		Kind:    KindUnknownTool,
		Message: fmt.Sprintf("tool %q not found", name),
		Context: map[string]any{"tool": name},
	}
}

func MissingCredential(provider string) *Error {
	return &Error{
		Kind:    KindMissingCredential,
		Message: fmt.Sprintf("API key missing for %s", provider),
		Context: map[string]any{"provider": provider},
	}
}

func Upstream(provider string, status int, detail string) *Error {
	msg := fmt.Sprintf("%s API error", provider)
	if status > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, status)
	}
	if detail != "" {
		msg += ": " + detail
	}
	ctx := map[string]any{"provider": provider}
	if status > 0 {
		ctx["status_code"] = status
	}
	return &Error{Kind: KindUpstreamError, Message: msg, Context: ctx}
}

func RateLimited(provider string) *Error {
	return &Error{
		Kind:    KindRateLimited,
		Message: fmt.Sprintf("rate limit exceeded for %s", provider),
		Context: map[string]any{"provider": provider},
	}
}

func NotFound(msg string, ctx map[string]any) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Context: ctx}
}

// AsError normalizes any error produced during dispatch into *Error. Errors
// that escaped the taxonomy (a bug in a provider client) surface as
// UpstreamError so a request-level failure never crashes the process.
func AsError(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return &Error{Kind: KindUpstreamError, Message: err.Error()}
}
