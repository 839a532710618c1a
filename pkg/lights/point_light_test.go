package lights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/math"
)

func TestNewWhitePointLight(t *testing.T) {
	light := NewWhitePointLight(math.NewVec3(1, 2, 3))
	assert.Equal(t, core.White, light.Color)
	assert.Equal(t, math.NewVec3(1, 2, 3), light.Position)
}

func TestPointLight_DirectionFrom(t *testing.T) {
	light := NewPointLight(math.NewVec3(0, 10, 0), core.NewColor(255, 0, 0))

	dir, err := light.DirectionFrom(math.NewVec3(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(0, 1, 0), dir)

	dir, err = light.DirectionFrom(math.NewVec3(0, 10, -4))
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(0, 0, 1), dir)
}

func TestPointLight_DirectionFromLightPosition(t *testing.T) {
	light := NewWhitePointLight(math.NewVec3(5, 5, 5))
	_, err := light.DirectionFrom(math.NewVec3(5, 5, 5))
	assert.ErrorIs(t, err, core.ErrDomain)
}
