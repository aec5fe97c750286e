package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
)

// ValidationError reports an argument bag that failed its declared schema.
type ValidationError struct {
	Tool   string
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field == "" || e.Field == "/" {
		return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, e.Detail)
	}
	return fmt.Sprintf("invalid arguments for %s at %s: %s", e.Tool, e.Field, e.Detail)
}

// Tool descriptors are constructed once at startup and never mutated, so a
// name-keyed cache is sufficient.
var compiled sync.Map // tool name -> *jsonschema.Schema

func compile(toolName string, s *protocol.JSONSchema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(toolName); ok {
		return v.(*jsonschema.Schema), nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	sch, err := jsonschema.CompileString(toolName+".json", string(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid inputSchema for %s: %w", toolName, err)
	}
	compiled.Store(toolName, sch)
	return sch, nil
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return err
	}
	for _, c := range err.Causes {
		if leaf := firstLeaf(c); leaf != nil {
			return leaf
		}
	}
	return err
}

// Apply validates a raw argument bag against a tool's declared input schema
// and returns the bag with declared defaults filled in for absent fields.
// An absent bag validates like an empty object.
func Apply(toolName string, s *protocol.JSONSchema, raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(raw) > 0 {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &ValidationError{Tool: toolName, Detail: "arguments are not valid JSON"}
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &ValidationError{Tool: toolName, Detail: "arguments must be an object"}
		}
		args = m
	}

	if s != nil {
		sch, err := compile(toolName, s)
		if err != nil {
			return nil, err
		}
		if err := sch.Validate(args); err != nil {
			if ve, ok := err.(*jsonschema.ValidationError); ok {
				leaf := firstLeaf(ve)
				msg := leaf.Message
				if msg == "" {
					msg = leaf.Error()
				}
				return nil, &ValidationError{Tool: toolName, Field: leaf.InstanceLocation, Detail: msg}
			}
			return nil, &ValidationError{Tool: toolName, Detail: err.Error()}
		}

		for name, prop := range s.Properties {
			if prop.Default == nil {
				continue
			}
			if _, present := args[name]; !present {
				args[name] = prop.Default
			}
		}
	}

	return args, nil
}
