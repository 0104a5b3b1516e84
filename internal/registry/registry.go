// Package registry is the single dispatch chokepoint both transports call
// through. It is populated once at startup and read-only afterwards, so
// concurrent Dispatch calls need no locking.
package registry

import (
	"context"
	"fmt"

	"github.com/apifuse/apifuse/internal/tools"
	"github.com/rs/zerolog/log"
)

type Registry struct {
	order  []string
	byName map[string]tools.Tool
}

func New() *Registry {
	return &Registry{byName: make(map[string]tools.Tool)}
}

// Register adds a tool. It is called once per capability during startup
// wiring; a duplicate name is a programmer error and panics before the
// process starts serving.
func (r *Registry) Register(t tools.Tool) {
	if _, exists := r.byName[t.Name]; exists {
		panic(fmt.Sprintf("registry: tool %q registered twice", t.Name))
	}
	r.byName[t.Name] = t
	r.order = append(r.order, t.Name)
	log.Info().Str("tool", t.Name).Msg("tool registered")
}

// List returns registered tools in registration order.
func (r *Registry) List() []tools.Tool {
	out := make([]tools.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Dispatch looks up the named tool and invokes it, returning the handler's
// result verbatim. An unregistered name yields UnknownTool.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, tools.UnknownTool(name)
	}
	return t.Execute(ctx, args)
}
