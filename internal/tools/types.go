// Package tools defines the Tool type, the shared error taxonomy, and the
// four aggregator capabilities exposed over both transports.
package tools

import (
	"context"

	"github.com/invopop/jsonschema"
)

// Tool is one capability. Execute validates its arguments, performs a single
// outbound provider call, and returns a normalized payload; any failure is a
// *Error. Tools are immutable after registration and hold no mutable state,
// so concurrent Execute calls never conflict.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Execute     func(ctx context.Context, args map[string]any) (any, error)
}
