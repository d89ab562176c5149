package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShape() Shape {
	return Shape{Fields: []Field{
		{Name: "namespace", Kind: KindString, Required: true},
		{Name: "replicas", Kind: KindNumber},
		{Name: "wide", Kind: KindBool},
		{Name: "labels", Kind: KindObject},
		{Name: "level", Kind: KindEnum, Enum: []string{"high", "medium", "low"}},
	}}
}

func TestValidateOK(t *testing.T) {
	err := Validate(map[string]any{
		"namespace": "billing",
		"replicas":  float64(3),
		"wide":      true,
		"labels":    map[string]any{"app": "web"},
		"level":     "high",
	}, testShape())
	require.NoError(t, err)
}

func TestValidateMissingRequired(t *testing.T) {
	err := Validate(map[string]any{"replicas": float64(3)}, testShape())
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "namespace", verr.Path)
	assert.Equal(t, "string", verr.Expected)
	assert.Nil(t, verr.Actual)
}

func TestValidateWrongKind(t *testing.T) {
	err := Validate(map[string]any{
		"namespace": "billing",
		"replicas":  "three",
	}, testShape())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "replicas", verr.Path)
	assert.Equal(t, "three", verr.Actual)
}

func TestValidateEnumExactMatch(t *testing.T) {
	// Case variants are rejected: the member set is closed and exact.
	err := Validate(map[string]any{
		"namespace": "billing",
		"level":     "High",
	}, testShape())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "level", verr.Path)
	assert.Contains(t, verr.Expected, "high, medium, low")
}

func TestValidateFailsFastInDeclarationOrder(t *testing.T) {
	// Both namespace and level are invalid; only the first declared field
	// is reported.
	err := Validate(map[string]any{
		"namespace": 42,
		"level":     "extreme",
	}, testShape())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "namespace", verr.Path)
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	err := Validate(map[string]any{
		"namespace":  "billing",
		"discovered": "extra field from model drift",
	}, testShape())
	require.NoError(t, err)
}

func TestApplyDefaults(t *testing.T) {
	shape := Shape{Fields: []Field{
		{Name: "namespace", Kind: KindString, Default: "default"},
		{Name: "tail", Kind: KindNumber, Default: float64(100)},
	}}

	in := map[string]any{"namespace": "billing"}
	out := ApplyDefaults(in, shape)

	assert.Equal(t, "billing", out["namespace"])
	assert.Equal(t, float64(100), out["tail"])
	// Input must not be mutated.
	_, present := in["tail"]
	assert.False(t, present)
}
