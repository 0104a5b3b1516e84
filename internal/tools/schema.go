package tools

import (
	"github.com/invopop/jsonschema"
)

// inputSchema reflects a parameter struct into a self-contained JSON schema
// suitable for tool discovery: definitions inlined, no $id, unknown
// properties rejected.
func inputSchema(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(v)
}
