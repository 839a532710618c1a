package geometry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raycaster/pkg/core"
	mathpkg "github.com/df07/go-raycaster/pkg/math"
)

func TestNewCamera_Defaults(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig())
	require.NoError(t, err)

	assert.Equal(t, 500, camera.Width())
	assert.Equal(t, 500, camera.Height())
	xInc, yInc := camera.Increment()
	assert.InDelta(t, 0.04, xInc, 1e-12)
	assert.InDelta(t, 0.04, yInc, 1e-12)
}

func TestCamera_ScreenPoint(t *testing.T) {
	config := DefaultCameraConfig()
	config.Width, config.Height = 4, 2
	config.ViewportWidth, config.ViewportHeight = 8, 2
	camera, err := NewCamera(config)
	require.NoError(t, err)

	tests := []struct {
		name     string
		col, row int
		expected mathpkg.Vec3
	}{
		{"first pixel", 0, 0, mathpkg.NewVec3(-4, -1, -10)},
		{"second column", 1, 0, mathpkg.NewVec3(-2, -1, -10)},
		{"last pixel", 3, 1, mathpkg.NewVec3(2, 0, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, camera.ScreenPoint(tt.col, tt.row))
		})
	}
}

func TestCamera_RayTo(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig())
	require.NoError(t, err)

	ray, err := camera.RayTo(mathpkg.NewVec3(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, mathpkg.NewVec3(0, 0, -40), ray.Origin)
	assert.Equal(t, mathpkg.NewVec3(0, 0, 1), ray.Direction)

	_, err = camera.RayTo(camera.Position())
	assert.ErrorIs(t, err, core.ErrDomain)
}

func TestCamera_PixelRayIsUnit(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig())
	require.NoError(t, err)

	for _, px := range [][2]int{{0, 0}, {250, 250}, {499, 0}, {17, 403}} {
		ray, err := camera.PixelRay(px[0], px[1])
		require.NoError(t, err)
		assert.InDelta(t, 1.0, ray.Direction.Length(), 1e-9)
	}
}

func TestNewCamera_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CameraConfig)
		expected error
	}{
		{"zero direction", func(c *CameraConfig) { c.Direction = mathpkg.Vec3{} }, core.ErrDomain},
		{"zero width", func(c *CameraConfig) { c.Width = 0 }, core.ErrConfiguration},
		{"negative height", func(c *CameraConfig) { c.Height = -3 }, core.ErrConfiguration},
		{"zero viewport", func(c *CameraConfig) { c.ViewportWidth = 0 }, core.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			tt.mutate(&config)
			camera, err := NewCamera(config)
			assert.Nil(t, camera)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	merged := MergeCameraConfig(DefaultCameraConfig(), CameraConfig{Width: 64, FocalDistance: 5})

	assert.Equal(t, 64, merged.Width)
	assert.Equal(t, 500, merged.Height)
	assert.Equal(t, 5.0, merged.FocalDistance)
	assert.Equal(t, mathpkg.NewVec3(0, 0, -40), merged.Position)
}

func TestRandomColor_Seeded(t *testing.T) {
	a := RandomColor(rand.New(rand.NewSource(7)))
	b := RandomColor(rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}
