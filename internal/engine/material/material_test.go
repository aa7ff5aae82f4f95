package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/validate"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		highlight float32
		diffuse   mgl32.Vec4
		wantField string
	}{
		{"valid", 16, mgl32.Vec4{0.5, 0.5, 0.5, 1}, ""},
		{"zero highlight", 0, mgl32.Vec4{0.5, 0.5, 0.5, 1}, "highlight"},
		{"negative highlight", -8, mgl32.Vec4{0.5, 0.5, 0.5, 1}, "highlight"},
		{"negative diffuse", 8, mgl32.Vec4{0.5, -0.1, 0.5, 1}, "diffuse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(mgl32.Vec4{0.1, 0.1, 0.1, 0.1}, tt.diffuse, mgl32.Vec4{1, 1, 1, 1}, tt.highlight)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.highlight, m.Highlight)
				assert.False(t, m.UseNormalMap)
				return
			}
			var perr *validate.InvalidParameterError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantField, perr.Field)
		})
	}
}

func TestFromSlices(t *testing.T) {
	m, err := FromSlices([]float32{0, 0, 0, 0.1}, []float32{0.4, 0.4, 0.4, 1}, []float32{1, 1, 1, 0.1}, 8)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0.4, 0.4, 0.4, 1}, m.Diffuse)

	_, err = FromSlices([]float32{0, 0, 0}, []float32{0.4, 0.4, 0.4, 1}, []float32{1, 1, 1, 0.1}, 8)
	var perr *validate.InvalidParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "ambient", perr.Field)
}

func TestDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.True(t, Default().WithNormalMap(true).UseNormalMap)
}
