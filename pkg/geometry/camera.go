package geometry

import (
	"fmt"
	stdmath "math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/math"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position       math.Vec3 // Eye position
	Direction      math.Vec3 // View direction, normalized by NewCamera
	FocalDistance  float64   // Distance from the eye to the view plane along Direction
	Width          int       // Horizontal pixel resolution
	Height         int       // Vertical pixel resolution
	ViewportWidth  float64   // Logical width of the view plane, centered at 0
	ViewportHeight float64   // Logical height of the view plane, centered at 0
}

// DefaultCameraConfig returns a camera 40 units behind the origin looking
// down +Z onto a 20x20 view plane sampled at 500x500 pixels
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:       math.NewVec3(0, 0, -40),
		Direction:      math.NewVec3(0, 0, 1),
		FocalDistance:  30,
		Width:          500,
		Height:         500,
		ViewportWidth:  20,
		ViewportHeight: 20,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Position.IsZero() {
		result.Position = override.Position
	}
	if !override.Direction.IsZero() {
		result.Direction = override.Direction
	}
	if override.FocalDistance != 0 {
		result.FocalDistance = override.FocalDistance
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.ViewportWidth != 0 {
		result.ViewportWidth = override.ViewportWidth
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	return result
}

// Camera is a pinhole camera mapping a pixel grid onto a view plane
type Camera struct {
	config    CameraConfig
	direction math.Vec3 // unit length
	planeZ    float64
	xMin      float64
	yMin      float64
	xInc      float64
	yInc      float64
}

// NewCamera validates config and precomputes the viewport mapping
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width < 1 || config.Height < 1 {
		return nil, fmt.Errorf("camera resolution %dx%d must be at least 1x1: %w",
			config.Width, config.Height, core.ErrConfiguration)
	}
	if !positiveFinite(config.ViewportWidth) || !positiveFinite(config.ViewportHeight) {
		return nil, fmt.Errorf("camera viewport %gx%g must be positive: %w",
			config.ViewportWidth, config.ViewportHeight, core.ErrConfiguration)
	}

	direction, err := config.Direction.Unit()
	if err != nil {
		return nil, fmt.Errorf("camera direction: %w", err)
	}

	return &Camera{
		config:    config,
		direction: direction,
		planeZ:    config.Position.Z + direction.Z*config.FocalDistance,
		xMin:      -config.ViewportWidth / 2,
		yMin:      -config.ViewportHeight / 2,
		xInc:      config.ViewportWidth / float64(config.Width),
		yInc:      config.ViewportHeight / float64(config.Height),
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Width returns the horizontal pixel resolution
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the vertical pixel resolution
func (c *Camera) Height() int {
	return c.config.Height
}

// Position returns the eye position
func (c *Camera) Position() math.Vec3 {
	return c.config.Position
}

// Direction returns the unit view direction
func (c *Camera) Direction() math.Vec3 {
	return c.direction
}

// Increment returns the logical size of one pixel along each axis
func (c *Camera) Increment() (x, y float64) {
	return c.xInc, c.yInc
}

// ScreenPoint maps pixel (col, row) to its world-space point on the view plane.
// x and y are the logical viewport coordinates; z is offset from the eye
// along the view direction by the focal distance.
func (c *Camera) ScreenPoint(col, row int) math.Vec3 {
	return math.NewVec3(
		c.xMin+c.xInc*float64(col),
		c.yMin+c.yInc*float64(row),
		c.planeZ,
	)
}

// RayTo returns a ray from the eye toward dest
func (c *Camera) RayTo(dest math.Vec3) (math.Ray, error) {
	ray, err := math.NewRay(c.config.Position, math.Between(c.config.Position, dest))
	if err != nil {
		return math.Ray{}, fmt.Errorf("view ray toward %v: %w", dest, err)
	}
	return ray, nil
}

// PixelRay returns the view ray through pixel (col, row)
func (c *Camera) PixelRay(col, row int) (math.Ray, error) {
	return c.RayTo(c.ScreenPoint(col, row))
}

func positiveFinite(v float64) bool {
	return v > 0 && !stdmath.IsInf(v, 0)
}
