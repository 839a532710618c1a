package lights

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/math"
)

// PointLight is an infinitesimal diffuse light source
type PointLight struct {
	Position math.Vec3
	Color    core.Color
}

// NewPointLight creates a point light at position
func NewPointLight(position math.Vec3, color core.Color) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// NewWhitePointLight creates a full-intensity white point light
func NewWhitePointLight(position math.Vec3) *PointLight {
	return NewPointLight(position, core.White)
}

// DirectionFrom returns the unit vector from point toward the light.
// A point coincident with the light has no direction and yields core.ErrDomain.
func (l *PointLight) DirectionFrom(point math.Vec3) (math.Vec3, error) {
	return math.Between(point, l.Position).Unit()
}
