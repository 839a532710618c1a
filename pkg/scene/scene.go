package scene

import (
	"fmt"
	stdmath "math"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/math"
)

// ShadingModel selects how a light's diffuse contribution is measured
type ShadingModel int

const (
	// ShadingLambert uses max(n̂·l̂, 0)
	ShadingLambert ShadingModel = iota
	// ShadingAngular uses 1 - θ/π, with θ approximated as |n̂-l̂|·π/2
	ShadingAngular
)

// ParseShadingModel converts a name ("lambert", "angular") to a ShadingModel
func ParseShadingModel(name string) (ShadingModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lambert":
		return ShadingLambert, nil
	case "angular":
		return ShadingAngular, nil
	default:
		return 0, fmt.Errorf("unknown shading model %q: %w", name, core.ErrConfiguration)
	}
}

func (m ShadingModel) String() string {
	switch m {
	case ShadingLambert:
		return "lambert"
	case ShadingAngular:
		return "angular"
	default:
		return fmt.Sprintf("ShadingModel(%d)", int(m))
	}
}

// level returns the diffuse contribution in [0, 1] for unit vectors
func (m ShadingModel) level(normal, toLight math.Vec3) float64 {
	if m == ShadingAngular {
		angle := math.Distance(normal, toLight) * stdmath.Pi / 2
		return 1 - angle/stdmath.Pi
	}
	return stdmath.Max(normal.Dot(toLight), 0)
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name    string
	Shading ShadingModel

	camera     *geometry.Camera
	primitives []geometry.Primitive
	lights     []*lights.PointLight
}

// New creates an empty scene with Lambert shading and no camera
func New(name string) *Scene {
	return &Scene{Name: name, Shading: ShadingLambert}
}

// AddPrimitive appends primitives to the scene
func (s *Scene) AddPrimitive(primitives ...geometry.Primitive) {
	s.primitives = append(s.primitives, primitives...)
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(pointLights ...*lights.PointLight) {
	s.lights = append(s.lights, pointLights...)
}

// SetCamera sets the camera used for rendering
func (s *Scene) SetCamera(camera *geometry.Camera) {
	s.camera = camera
}

// GetCamera returns the scene camera, or nil if none was set
func (s *Scene) GetCamera() *geometry.Camera {
	return s.camera
}

// GetPrimitives returns the primitives in insertion order
func (s *Scene) GetPrimitives() []geometry.Primitive {
	return s.primitives
}

// GetLights returns the lights in insertion order
func (s *Scene) GetLights() []*lights.PointLight {
	return s.lights
}

// Validate checks the scene can be rendered
func (s *Scene) Validate() error {
	if s.camera == nil {
		return fmt.Errorf("scene %q has no camera: %w", s.Name, core.ErrConfiguration)
	}
	return nil
}

// NearestHit returns the intersection with the smallest t. On equal t the
// primitive added first wins.
func (s *Scene) NearestHit(ray math.Ray) (geometry.Hit, bool) {
	var nearest geometry.Hit
	found := false

	for _, primitive := range s.primitives {
		hit, isHit := primitive.Intersect(ray)
		if !isHit {
			continue
		}
		if !found || hit.T < nearest.T {
			nearest = hit
			found = true
		}
	}

	return nearest, found
}

// Resolve returns the shaded color seen along ray, or black on a miss
func (s *Scene) Resolve(ray math.Ray) (core.Color, error) {
	hit, isHit := s.NearestHit(ray)
	if !isHit {
		return core.Black, nil
	}
	return s.shade(ray, hit)
}

// shade sums the diffuse level of every light at the hit point and scales
// the primitive's base color by it. There is no shadow test and no ambient term.
func (s *Scene) shade(ray math.Ray, hit geometry.Hit) (core.Color, error) {
	point := ray.At(hit.T)

	normal, err := hit.Primitive.NormalAt(point).Unit()
	if err != nil {
		return core.Black, fmt.Errorf("surface normal at %v: %w", point, err)
	}

	diffuse := 0.0
	for i, light := range s.lights {
		toLight, err := light.DirectionFrom(point)
		if err != nil {
			return core.Black, fmt.Errorf("light %d at %v: %w", i, light.Position, err)
		}
		diffuse += s.Shading.level(normal, toLight)
	}

	return hit.Primitive.Color().Scale(stdmath.Min(diffuse, 1.0)), nil
}
