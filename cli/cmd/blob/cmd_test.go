package blob

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFixedSize(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected any
	}{
		{"int32", float64(42), int32(42)},
		{"negative int32", float64(math.MinInt32), int32(math.MinInt32)},
		{"int64", float64(math.MaxInt32 + 1), int64(math.MaxInt32 + 1)},
		{"fraction stays float", 1.5, 1.5},
		{"string becomes bytes", "abc", []byte("abc")},
		{"bool is kept", true, true},
		{"objects are kept", map[string]any{"a": 1.0}, map[string]any{"a": 1.0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, fixedSize(tc.value))
		})
	}
}

func TestParseValue(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		v, err := parseValue(SerializerJSON, `[1, "a"]`)
		require.NoError(t, err)
		assert.Equal(t, []any{1.0, "a"}, v)
	})

	t.Run("plain string fallback", func(t *testing.T) {
		v, err := parseValue(SerializerYAML, `not json`)
		require.NoError(t, err)
		assert.Equal(t, "not json", v)
	})

	t.Run("protobuf", func(t *testing.T) {
		v, err := parseValue(SerializerProtobuf, `{"a": true}`)
		require.NoError(t, err)
		value, ok := v.(*structpb.Value)
		require.True(t, ok)
		assert.True(t, value.GetStructValue().GetFields()["a"].GetBoolValue())
	})
}
