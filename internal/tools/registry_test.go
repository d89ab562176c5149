package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/clusterpilot/internal/schema"
)

func builtinRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(Builtin())
	require.NoError(t, err)
	return r
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Descriptor{
		{Name: "get_pods"},
		{Name: "get_pods"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewRegistryRejectsEmptyName(t *testing.T) {
	_, err := NewRegistry([]Descriptor{{Name: ""}})
	require.Error(t, err)
}

func TestLookupExactMatch(t *testing.T) {
	r := builtinRegistry(t)

	d, err := r.Lookup("get_pods")
	require.NoError(t, err)
	assert.Equal(t, "get_pods", d.Name)
	assert.Equal(t, ResultList, d.Result)
}

func TestLookupIsCaseSensitive(t *testing.T) {
	r := builtinRegistry(t)

	_, err := r.Lookup("Get_Pods")
	require.Error(t, err)

	var uerr *UnknownToolError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "Get_Pods", uerr.Name)
}

func TestUnknownToolErrorTruncatesSample(t *testing.T) {
	r := builtinRegistry(t)

	_, err := r.Lookup("delete_cluster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get_pods")
	assert.Contains(t, err.Error(), "...")
}

func TestListPreservesDeclarationOrder(t *testing.T) {
	r := builtinRegistry(t)

	names := r.Names()
	require.Equal(t, r.Len(), len(names))
	assert.Equal(t, "get_pods", names[0])
	assert.Equal(t, "top_pods", names[len(names)-1])
}

func TestDescribeArguments(t *testing.T) {
	r := builtinRegistry(t)

	text, err := r.DescribeArguments("scale_deployment")
	require.NoError(t, err)
	assert.Contains(t, text, "name (string, required)")
	assert.Contains(t, text, "replicas (number, required)")
	assert.Contains(t, text, "[default: default]")
}

func TestDescribeArgumentsEnum(t *testing.T) {
	r := builtinRegistry(t)

	text, err := r.DescribeArguments("top_pods")
	require.NoError(t, err)
	assert.Contains(t, text, "one of cpu|memory")
}

func TestDescribeArgumentsNoArgs(t *testing.T) {
	r := builtinRegistry(t)

	text, err := r.DescribeArguments("get_nodes")
	require.NoError(t, err)
	assert.Equal(t, "(no arguments)", text)
}

func TestBuiltinShapesValidate(t *testing.T) {
	// Every built-in example-style invocation must pass its own shape.
	r := builtinRegistry(t)

	d, err := r.Lookup("get_pods")
	require.NoError(t, err)
	require.NoError(t, schema.Validate(map[string]any{"namespace": "billing"}, d.Arguments))

	d, err = r.Lookup("scale_deployment")
	require.NoError(t, err)
	require.NoError(t, schema.Validate(map[string]any{
		"name":     "payment-api",
		"replicas": float64(5),
	}, d.Arguments))
}
