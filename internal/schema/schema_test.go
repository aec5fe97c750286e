package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
)

func minimum(v float64) *float64 { return &v }

func testSchema() *protocol.JSONSchema {
	return &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"periodType": {Type: "string", Enum: []string{"day", "week"}, Default: "day"},
			"limit":      {Type: "integer", Minimum: minimum(0), Default: float64(20)},
			"search":     {Type: "string"},
		},
	}
}

func TestApply_AbsentArgumentsGetDefaults(t *testing.T) {
	args, err := Apply("list_pages", testSchema(), nil)
	require.NoError(t, err)
	require.Equal(t, "day", args["periodType"])
	require.Equal(t, float64(20), args["limit"])
	_, hasSearch := args["search"]
	require.False(t, hasSearch, "fields without defaults stay absent")
}

func TestApply_ProvidedValueWinsOverDefault(t *testing.T) {
	args, err := Apply("list_pages", testSchema(), json.RawMessage(`{"periodType":"week","limit":5}`))
	require.NoError(t, err)
	require.Equal(t, "week", args["periodType"])
	require.Equal(t, float64(5), args["limit"])
}

func TestApply_RejectsUnknownEnumValue(t *testing.T) {
	_, err := Apply("list_pages", testSchema(), json.RawMessage(`{"periodType":"month"}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Error(), "periodType")
}

func TestApply_RejectsTypeMismatch(t *testing.T) {
	_, err := Apply("list_pages", testSchema(), json.RawMessage(`{"limit":"ten"}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Error(), "limit")
}

func TestApply_RejectsNegativeCount(t *testing.T) {
	_, err := Apply("list_pages", testSchema(), json.RawMessage(`{"limit":-1}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestApply_RejectsMissingRequiredField(t *testing.T) {
	s := &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"pagePath": {Type: "string"},
		},
		Required: []string{"pagePath"},
	}
	_, err := Apply("get_page_context", s, json.RawMessage(`{}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Error(), "pagePath")
}

func TestApply_RejectsNonObjectArguments(t *testing.T) {
	_, err := Apply("list_pages", testSchema(), json.RawMessage(`[1,2]`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Error(), "object")
}
