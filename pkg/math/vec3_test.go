package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raycaster/pkg/core"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected float64
	}{
		{"3-4-5 triangle", NewVec3(0, 0, 0), NewVec3(3, 4, 0), 5},
		{"same point", NewVec3(1, 2, 3), NewVec3(1, 2, 3), 0},
		{"negative coordinates", NewVec3(-1, -1, -1), NewVec3(1, 1, 1), math.Sqrt(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.a, tt.b), 1e-12)
			assert.Equal(t, Distance(tt.a, tt.b), Distance(tt.b, tt.a), "distance should be symmetric")
			assert.Zero(t, Distance(tt.a, tt.a))
		})
	}
}

func TestVec3_Dot(t *testing.T) {
	assert.Equal(t, 26.0, NewVec3(1, 2, 3).Dot(NewVec3(3, 4, 5)))
	assert.Equal(t, 0.0, NewVec3(1, 0, 0).Dot(NewVec3(0, 1, 0)))
}

func TestVec3_Length(t *testing.T) {
	assert.Equal(t, 5.0, NewVec3(3, 4, 0).Length())
	assert.Equal(t, 25.0, NewVec3(3, 4, 0).LengthSquared())
}

func TestVec3_Unit(t *testing.T) {
	vectors := []Vec3{
		NewVec3(3, 3, 4),
		NewVec3(0, 0, -7),
		NewVec3(1e-6, 2e-6, 0),
		NewVec3(-40, 12, 0.5),
	}

	for _, v := range vectors {
		unit, err := v.Unit()
		require.NoError(t, err)
		assert.InDelta(t, 1.0, unit.Length(), 1e-4, "unit(%v) should have length 1", v)
		assert.Greater(t, unit.Dot(v), 0.0, "unit(%v) should point the same way", v)
	}
}

func TestVec3_Unit_ZeroVector(t *testing.T) {
	_, err := Vec3{}.Unit()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDomain)
}

func TestVec3_Multiply(t *testing.T) {
	assert.Equal(t, NewVec3(2, -4, 6), NewVec3(1, -2, 3).Multiply(2))
	assert.True(t, NewVec3(1, 2, 3).Multiply(0).IsZero())
}

func TestBetween(t *testing.T) {
	assert.Equal(t, NewVec3(2, 2, 2), Between(NewVec3(-1, -1, -1), NewVec3(1, 1, 1)))
}

func TestNewRay_NormalizesDirection(t *testing.T) {
	ray, err := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, NewVec3(0, 0, 1), ray.Direction)
	assert.Equal(t, NewVec3(1, 1, 4), ray.At(3))
}

func TestNewRay_ZeroDirection(t *testing.T) {
	_, err := NewRay(NewVec3(1, 1, 1), Vec3{})
	assert.ErrorIs(t, err, core.ErrDomain)
}
