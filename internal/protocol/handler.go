package protocol

import (
	"context"
	"encoding/json"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/registry"
	"github.com/apifuse/apifuse/internal/tools"
)

// Handler answers JSON-RPC requests against the dispatch registry. Both the
// stdio transport and the HTTP /mcp endpoint delegate here, so a tool call
// behaves identically no matter which surface received it.
type Handler struct {
	reg           *registry.Registry
	serverName    string
	serverVersion string
}

func NewHandler(reg *registry.Registry, serverName, serverVersion string) *Handler {
	return &Handler{reg: reg, serverName: serverName, serverVersion: serverVersion}
}

// HandleRaw parses one frame and handles it. Malformed JSON yields a parse
// error response rather than an error return, so the transport always has a
// frame to write back.
func (h *Handler) HandleRaw(ctx context.Context, frame []byte) Response {
	var req Request
	if err := json.Unmarshal(frame, &req); err != nil {
		return NewError(nil, CodeParseError, "parse error: "+err.Error(), nil)
	}
	return h.Handle(ctx, &req)
}

func (h *Handler) Handle(ctx context.Context, req *Request) Response {
	if req.JSONRPC != "" && req.JSONRPC != Version {
		return NewError(req.ID, CodeInvalidRequest, "unsupported jsonrpc version", nil)
	}

	switch req.Method {
	case MethodInitialize:
		return NewResult(req.ID, InitializeResult{
			ServerName:    h.serverName,
			ServerVersion: h.serverVersion,
			Capabilities:  map[string]any{"tools": true},
		})

	case MethodPing:
		return NewResult(req.ID, map[string]any{})

	case MethodListTools:
		list := h.reg.List()
		descriptors := make([]models.ToolDescriptor, 0, len(list))
		for _, t := range list {
			descriptors = append(descriptors, models.ToolDescriptor{
				Name:        t.Name,
				Description: t.Description,
				InputSchema: t.InputSchema,
			})
		}
		return NewResult(req.ID, map[string]any{"tools": descriptors})

	case MethodCallTool:
		var params CallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return NewError(req.ID, CodeInvalidParams, "invalid params: "+err.Error(), nil)
			}
		}
		if params.Name == "" {
			return NewError(req.ID, CodeInvalidParams, "tool name is required", nil)
		}
		if params.Arguments == nil {
			params.Arguments = map[string]any{}
		}

		payload, err := h.reg.Dispatch(ctx, params.Name, params.Arguments)
		if err != nil {
			te := tools.AsError(err)
			return NewError(req.ID, te.RPCCode(), te.Message, te.Context)
		}
		return NewResult(req.ID, payload)

	default:
		return NewError(req.ID, CodeMethodNotFound, "unknown method: "+req.Method, nil)
	}
}
