package models

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string            `json:"status"`
	Server string            `json:"server"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ToolDescriptor is the discovery representation of one registered tool.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"input_schema"`
}

// ErrorBody is the structured error object rendered on the REST surface.
type ErrorBody struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorResponse wraps ErrorBody in the standard error envelope.
type ErrorResponse struct {
	Status string    `json:"status"`
	Error  ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, code int, body ErrorBody) {
	WriteJSON(w, code, ErrorResponse{Status: "error", Error: body})
}
