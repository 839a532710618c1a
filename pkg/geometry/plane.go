package geometry

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/math"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  math.Vec3 // A point on the plane
	Normal math.Vec3 // Normal vector, not necessarily unit length
	color  core.Color
}

// NewPlane creates a new plane. The normal must be non-zero.
func NewPlane(point, normal math.Vec3, color core.Color) (*Plane, error) {
	if normal.IsZero() {
		return nil, fmt.Errorf("plane normal is zero: %w", core.ErrDomain)
	}
	return &Plane{Point: point, Normal: normal, color: color}, nil
}

// Intersect tests if a ray intersects with the plane.
//
// Unlike Sphere, a negative t is reported as a hit: the plane is treated as
// visible behind the ray origin too. Rays parallel to the plane, including
// rays lying in it, miss.
func (p *Plane) Intersect(ray math.Ray) (Hit, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if denominator == 0 {
		return Hit{}, false
	}

	t := p.Normal.Dot(p.Point.Subtract(ray.Origin)) / denominator
	return Hit{T: t, Primitive: p}, true
}

// NormalAt returns the plane's normal, which is the same everywhere
func (p *Plane) NormalAt(math.Vec3) math.Vec3 {
	return p.Normal
}

// Color returns the plane's base color
func (p *Plane) Color() core.Color {
	return p.color
}

func (p *Plane) primitive() {}
