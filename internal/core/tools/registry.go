// Package tools holds the catalog of functions the language model may call,
// maps the model's tool calls onto typed operations, and executes them
// against the container runtime and the shared file store.
package tools

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/melih/docker-agent/internal/core/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// schemaBase prefixes the in-memory URLs parameter schemas are compiled under.
const schemaBase = "https://docker-agent.local/tools/"

// Registry is the static tool catalog. It is immutable after construction
// and safe for concurrent use.
type Registry struct {
	defs    []domain.ToolDefinition
	schemas map[string]*jsonschema.Schema
}

// NewRegistry loads the embedded catalog.
func NewRegistry() (*Registry, error) {
	return ParseCatalog(catalogYAML)
}

// MustNewRegistry is like NewRegistry but panics on a broken catalog.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// ParseCatalog builds a registry from a YAML list of tool definitions and
// compiles each parameter schema.
func ParseCatalog(data []byte) (*Registry, error) {
	var defs []domain.ToolDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse tool catalog: %w", err)
	}

	r := &Registry{defs: defs, schemas: make(map[string]*jsonschema.Schema, len(defs))}
	for i, d := range defs {
		name := d.Function.Name
		if name == "" {
			return nil, fmt.Errorf("tool catalog[%d]: name must not be empty", i)
		}
		if _, dup := r.schemas[name]; dup {
			return nil, fmt.Errorf("tool catalog[%d]: duplicate name %q", i, name)
		}
		if d.Type == "" {
			r.defs[i].Type = "function"
		}
		params := d.Function.Parameters
		if params == nil {
			params = map[string]any{"type": "object"}
		}
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("tool %s: encode parameters: %w", name, err)
		}
		schema, err := jsonschema.CompileString(schemaBase+name+".json", string(raw))
		if err != nil {
			return nil, fmt.Errorf("tool %s: compile parameters: %w", name, err)
		}
		r.schemas[name] = schema
	}
	return r, nil
}

// Definitions returns the catalog in declaration order, ready to be sent to
// the model.
func (r *Registry) Definitions() []domain.ToolDefinition {
	out := make([]domain.ToolDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Parse resolves a model tool call to an Operation. Names missing from the
// catalog become UnknownOperation; arguments that do not satisfy the tool's
// schema are an error.
func (r *Registry) Parse(call domain.ToolCall) (Operation, error) {
	name := call.Function.Name
	schema, ok := r.schemas[name]
	if !ok {
		return UnknownOperation{Name: name}, nil
	}
	args := call.Function.Arguments
	if args == nil {
		args = map[string]any{}
	}
	if err := schema.Validate(args); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
	}

	switch name {
	case NameListContainers:
		return ListContainers{}, nil
	case NameStartContainer:
		return StartContainer{ContainerName: args["container_name"].(string)}, nil
	case NameStopContainer:
		return StopContainer{ContainerName: args["container_name"].(string)}, nil
	case NameListSharedFiles:
		return ListSharedFiles{}, nil
	}
	// Catalogued but without an implementation.
	return UnknownOperation{Name: name}, nil
}
