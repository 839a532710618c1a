package geometry

import (
	"math/rand"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/math"
)

// Hit is a ray/primitive intersection at parameter T along the ray
type Hit struct {
	T         float64
	Primitive Primitive
}

// Primitive is a renderable shape. The set of primitives is closed:
// only Sphere and Plane implement it.
type Primitive interface {
	// Intersect returns the nearest intersection of ray with the shape
	Intersect(ray math.Ray) (Hit, bool)
	// NormalAt returns the (unnormalized) surface normal at point
	NormalAt(point math.Vec3) math.Vec3
	// Color returns the base color of the surface
	Color() core.Color

	primitive()
}

// RandomColor picks a color using the supplied generator. Callers own the
// seed so repeated renders stay reproducible.
func RandomColor(random *rand.Rand) core.Color {
	return core.Color{
		R: uint8(random.Intn(256)),
		G: uint8(random.Intn(256)),
		B: uint8(random.Intn(256)),
	}
}
