package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/validate"
)

func TestSlotsOverflow(t *testing.T) {
	s := NewSlots()
	for i := 0; i < MaxLights; i++ {
		idx, err := s.Add(NewPoint(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec4{1, 1, 1, 1}))
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	idx, err := s.Add(NewPoint(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1}))
	assert.ErrorIs(t, err, ErrSlotsFull)
	assert.Equal(t, -1, idx)
	assert.Equal(t, MaxLights, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSlotsToggle(t *testing.T) {
	s := NewSlots()
	_, err := s.Add(NewPoint(mgl32.Vec3{0, 2, 0}, mgl32.Vec4{1, 1, 1, 1}))
	require.NoError(t, err)

	on, err := s.Toggle(0)
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, s.Lights()[0].Enabled)

	_, err = s.Toggle(3)
	assert.ErrorIs(t, err, ErrSlotRange)
	assert.Nil(t, s.At(1))
	assert.Nil(t, s.At(-1))
}

func TestNewSpot(t *testing.T) {
	valid := SpotParams{
		Direction:      mgl32.Vec3{1, -0.15, -1},
		RadialFactor:   mgl32.Vec3{0.01, 0.1, 0.05},
		AngleLimit:     math32.Cos(math32.Pi / 5),
		ExpAttenuation: 16,
	}
	l, err := NewSpot(valid)
	require.NoError(t, err)
	assert.True(t, l.Spot)
	assert.True(t, l.Enabled)
	assert.InDelta(t, 1.0, float64(l.SpotDirection.Len()), 1e-6)
	assert.Equal(t, "spot", l.Kind())

	tests := []struct {
		name  string
		tweak func(*SpotParams)
		field string
	}{
		{"zero direction", func(p *SpotParams) { p.Direction = mgl32.Vec3{} }, "direction"},
		{"negative radial", func(p *SpotParams) { p.RadialFactor[1] = -1 }, "radialFactor"},
		{"zero radial", func(p *SpotParams) { p.RadialFactor = mgl32.Vec3{} }, "radialFactor"},
		{"angle out of range", func(p *SpotParams) { p.AngleLimit = 1.5 }, "angleLimit"},
		{"negative exponent", func(p *SpotParams) { p.ExpAttenuation = -2 }, "expAttenuation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.tweak(&p)
			_, err := NewSpot(p)
			var perr *validate.InvalidParameterError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestNewDirectional(t *testing.T) {
	l, err := NewDirectional(mgl32.Vec3{0, 3, 4}, mgl32.Vec4{1, 1, 1, 1})
	require.NoError(t, err)
	assert.True(t, l.Infinite)
	assert.InDelta(t, 0.6, float64(l.Direction[1]), 1e-6)
	assert.Equal(t, "directional", l.Kind())

	_, err = NewDirectional(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1})
	assert.ErrorIs(t, err, validate.ErrInvalidParameter)
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		azimuth, elevation float32
		want               mgl32.Vec3
	}{
		{0, 90, mgl32.Vec3{0, 1, 0}},
		{0, 0, mgl32.Vec3{0, 0, 1}},
		{90, 0, mgl32.Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.azimuth, tt.elevation)
		assert.Less(t, got.Sub(tt.want).Len(), float32(1e-6), "SunDirection(%v, %v) = %v", tt.azimuth, tt.elevation, got)
	}
}
