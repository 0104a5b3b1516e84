// Package protocol defines the JSON-RPC 2.0 envelope used by the tool
// protocol, both over stdio and over the HTTP /mcp endpoint.
package protocol

import "encoding/json"

const Version = "2.0"

// Methods understood by the tool-protocol surface.
const (
	MethodInitialize = "initialize"
	MethodPing       = "ping"
	MethodListTools  = "tools/list"
	MethodCallTool   = "tools/call"
)

// Standard JSON-RPC error codes plus the application range.
const (
	CodeParseError        = -32700
	CodeInvalidRequest    = -32600
	CodeMethodNotFound    = -32601
	CodeInvalidParams     = -32602
	CodeInternalError     = -32603
	CodeMissingCredential = -32001
	CodeUpstreamError     = -32003
	CodeRateLimited       = -32004
	CodeNotFound          = -32005
)

// Request is one inbound JSON-RPC frame. ID is kept raw so string and
// numeric ids round-trip untouched.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// CallParams are the params of a tools/call request.
type CallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Response is one outbound JSON-RPC frame.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// InitializeResult is returned by the initialize method.
type InitializeResult struct {
	ServerName    string         `json:"server_name"`
	ServerVersion string         `json:"server_version"`
	Capabilities  map[string]any `json:"capabilities"`
}

func NewResult(id json.RawMessage, result any) Response {
	return Response{JSONRPC: Version, ID: id, Result: result}
}

func NewError(id json.RawMessage, code int, message string, data map[string]any) Response {
	return Response{JSONRPC: Version, ID: id, Error: &Error{Code: code, Message: message, Data: data}}
}
