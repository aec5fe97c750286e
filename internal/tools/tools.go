// Package tools implements the Sitelens MCP tool set. Each tool lives in
// its own file and pairs a declared input schema with an endpoint builder
// and a report formatter. The descriptor's inputSchema is the same object
// the dispatcher validates against, so the advertised shape can never drift
// from the enforced one.
package tools

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/schema"
)

// parseArgs validates a raw argument bag against the tool's declared schema,
// applies defaults, and unmarshals the result into the tool's args struct.
func parseArgs(desc protocol.ToolDescriptor, raw json.RawMessage, out any) error {
	m, err := schema.Apply(desc.Name, desc.InputSchema, raw)
	if err != nil {
		return err
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &schema.ValidationError{Tool: desc.Name, Detail: err.Error()}
	}
	return nil
}

// setStr adds a query parameter only when the value is present.
func setStr(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

// setInt adds a numeric query parameter only when it carries a value; zero
// means absent-or-default-empty and is omitted.
func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func minimum(v float64) *float64 { return &v }
