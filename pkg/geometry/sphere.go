package geometry

import (
	"fmt"
	stdmath "math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/math"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center math.Vec3
	Radius float64
	color  core.Color
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center math.Vec3, radius float64, color core.Color) (*Sphere, error) {
	if !(radius > 0) || stdmath.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere radius %g must be positive and finite: %w", radius, core.ErrDomain)
	}
	return &Sphere{Center: center, Radius: radius, color: color}, nil
}

// Intersect tests if a ray intersects with the sphere. Roots behind the
// ray origin are discarded; the smallest remaining root wins.
func (s *Sphere) Intersect(ray math.Ray) (Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Direction is unit length, so the quadratic reduces to t² + 2bt + c = 0
	b := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius
	disc := b*b - c

	switch {
	case disc < 0:
		return Hit{}, false
	case disc == 0:
		return s.nearest(-b)
	default:
		sqrtD := stdmath.Sqrt(disc)
		return s.nearest(-b-sqrtD, -b+sqrtD)
	}
}

func (s *Sphere) nearest(roots ...float64) (Hit, bool) {
	best, found := 0.0, false
	for _, t := range roots {
		if t < 0 {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	if !found {
		return Hit{}, false
	}
	return Hit{T: best, Primitive: s}, true
}

// NormalAt returns the outward vector from the center to point
func (s *Sphere) NormalAt(point math.Vec3) math.Vec3 {
	return point.Subtract(s.Center)
}

// Color returns the sphere's base color
func (s *Sphere) Color() core.Color {
	return s.color
}

func (s *Sphere) primitive() {}
