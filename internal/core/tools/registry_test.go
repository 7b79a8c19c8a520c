package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih/docker-agent/internal/core/domain"
)

func call(name string, args map[string]any) domain.ToolCall {
	return domain.ToolCall{Function: domain.FunctionCall{Name: name, Arguments: args}}
}

func TestCatalog(t *testing.T) {
	r := MustNewRegistry()
	defs := r.Definitions()

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		assert.Equal(t, "function", d.Type)
		assert.NotEmpty(t, d.Function.Description)
		names = append(names, d.Function.Name)
	}
	assert.Equal(t, []string{NameListContainers, NameStartContainer, NameStopContainer, NameListSharedFiles}, names)

	raw, err := json.Marshal(defs[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "function",
		"function": {
			"name": "start_container",
			"description": "Start a specific Docker container",
			"parameters": {
				"type": "object",
				"properties": {"container_name": {"type": "string", "description": "Name of the container"}},
				"required": ["container_name"]
			}
		}
	}`, string(raw))
}

func TestDefinitionsIsACopy(t *testing.T) {
	r := MustNewRegistry()
	defs := r.Definitions()
	defs[0].Function.Name = "mutated"

	assert.Equal(t, NameListContainers, r.Definitions()[0].Function.Name)
}

func TestParse(t *testing.T) {
	r := MustNewRegistry()

	tests := []struct {
		call domain.ToolCall
		want Operation
	}{
		{call(NameListContainers, nil), ListContainers{}},
		{call(NameListSharedFiles, map[string]any{}), ListSharedFiles{}},
		{call(NameStartContainer, map[string]any{"container_name": "web"}), StartContainer{ContainerName: "web"}},
		{call(NameStopContainer, map[string]any{"container_name": "db"}), StopContainer{ContainerName: "db"}},
		{call("delete_everything", map[string]any{"force": true}), UnknownOperation{Name: "delete_everything"}},
	}
	for _, tt := range tests {
		t.Run(tt.call.Function.Name, func(t *testing.T) {
			op, err := r.Parse(tt.call)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
			assert.Equal(t, tt.call.Function.Name, op.Function())
		})
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	r := MustNewRegistry()

	_, err := r.Parse(call(NameStartContainer, map[string]any{}))
	assert.ErrorContains(t, err, "invalid arguments for start_container")

	_, err = r.Parse(call(NameStopContainer, map[string]any{"container_name": 42.0}))
	assert.ErrorContains(t, err, "invalid arguments for stop_container")
}

func TestParseCatalogErrors(t *testing.T) {
	_, err := ParseCatalog([]byte("not: [valid"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte(`
- function: {name: a}
- function: {name: a}
`))
	assert.ErrorContains(t, err, "duplicate")

	_, err = ParseCatalog([]byte(`- function: {description: nameless}`))
	assert.ErrorContains(t, err, "name must not be empty")
}

func TestParseCatalogedButUnimplemented(t *testing.T) {
	r, err := ParseCatalog([]byte(`
- function:
    name: restart_container
    parameters: {type: object}
`))
	require.NoError(t, err)

	op, err := r.Parse(call("restart_container", nil))
	require.NoError(t, err)
	assert.Equal(t, UnknownOperation{Name: "restart_container"}, op)
	assert.Equal(t, "function", r.Definitions()[0].Type)
}
