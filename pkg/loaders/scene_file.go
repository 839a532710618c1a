package loaders

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/math"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Triple is a YAML sequence of three numbers
type Triple []float64

// ColorValue is a YAML sequence of three channel values in [0, 255]
type ColorValue []int

// CameraBlock describes the scene camera. Zero fields take the defaults
// of geometry.DefaultCameraConfig.
type CameraBlock struct {
	Position       Triple  `yaml:"position"`
	Direction      Triple  `yaml:"direction"`
	FocalDistance  float64 `yaml:"focal_distance"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
}

// PrimitiveBlock describes a sphere or a plane
type PrimitiveBlock struct {
	Type   string     `yaml:"type"` // "sphere" | "plane"
	Center Triple     `yaml:"center,omitempty"`
	Radius float64    `yaml:"radius,omitempty"`
	Point  Triple     `yaml:"point,omitempty"`
	Normal Triple     `yaml:"normal,omitempty"`
	Color  ColorValue `yaml:"color,omitempty"`
}

// LightBlock describes a point light. Color defaults to white.
type LightBlock struct {
	Position Triple     `yaml:"position"`
	Color    ColorValue `yaml:"color,omitempty"`
}

// SceneFile is the on-disk YAML scene description
type SceneFile struct {
	Name       string           `yaml:"name"`
	Shading    string           `yaml:"shading,omitempty"` // "lambert" | "angular"
	Seed       *int64           `yaml:"seed,omitempty"`    // Required when any primitive omits its color
	Camera     *CameraBlock     `yaml:"camera"`
	Primitives []PrimitiveBlock `yaml:"primitives"`
	Lights     []LightBlock     `yaml:"lights"`
}

// ParseSceneFile decodes a YAML scene description
func ParseSceneFile(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene file: %w: %v", core.ErrConfiguration, err)
	}
	return &sf, nil
}

// LoadScene reads a YAML scene file and builds the scene
func LoadScene(path string, logger zerolog.Logger, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	sf, err := ParseSceneFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := sf.Build(logger, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Build converts the description into a renderable scene
func (sf *SceneFile) Build(logger zerolog.Logger, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	shading, err := scene.ParseShadingModel(sf.Shading)
	if err != nil {
		return nil, err
	}

	s := scene.New(sf.Name)
	s.Shading = shading

	var random *rand.Rand
	if sf.Seed != nil {
		random = rand.New(rand.NewSource(*sf.Seed))
	}

	for i, block := range sf.Primitives {
		primitive, err := block.build(i, random, logger)
		if err != nil {
			return nil, err
		}
		s.AddPrimitive(primitive)
	}

	for i, block := range sf.Lights {
		light, err := block.build(i)
		if err != nil {
			return nil, err
		}
		s.AddLight(light)
	}

	if sf.Camera == nil {
		return nil, fmt.Errorf("scene %q has no camera block: %w", sf.Name, core.ErrConfiguration)
	}
	cameraConfig, err := sf.Camera.config()
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}
	s.SetCamera(camera)

	logger.Debug().
		Str("scene", sf.Name).
		Int("primitives", len(sf.Primitives)).
		Int("lights", len(sf.Lights)).
		Str("shading", shading.String()).
		Msg("scene file loaded")

	return s, nil
}

func (cb *CameraBlock) config() (geometry.CameraConfig, error) {
	config := geometry.MergeCameraConfig(geometry.DefaultCameraConfig(), geometry.CameraConfig{
		FocalDistance:  cb.FocalDistance,
		Width:          cb.Width,
		Height:         cb.Height,
		ViewportWidth:  cb.ViewportWidth,
		ViewportHeight: cb.ViewportHeight,
	})

	// Vectors are applied directly so an explicit origin is not mistaken
	// for an unset field.
	if cb.Position != nil {
		position, err := cb.Position.required("camera position")
		if err != nil {
			return geometry.CameraConfig{}, err
		}
		config.Position = position
	}
	if cb.Direction != nil {
		direction, err := cb.Direction.required("camera direction")
		if err != nil {
			return geometry.CameraConfig{}, err
		}
		config.Direction = direction
	}

	return config, nil
}

func (pb PrimitiveBlock) build(index int, random *rand.Rand, logger zerolog.Logger) (geometry.Primitive, error) {
	color, err := pb.Color.resolve(fmt.Sprintf("primitive %d color", index))
	if err != nil {
		return nil, err
	}
	if pb.Color == nil {
		if random == nil {
			return nil, fmt.Errorf("primitive %d has no color and the scene has no seed: %w", index, core.ErrConfiguration)
		}
		color = geometry.RandomColor(random)
		logger.Debug().Int("primitive", index).Stringer("color", color).Msg("assigned seeded color")
	}

	switch strings.ToLower(pb.Type) {
	case "sphere":
		center, err := pb.Center.required(fmt.Sprintf("primitive %d center", index))
		if err != nil {
			return nil, err
		}
		sphere, err := geometry.NewSphere(center, pb.Radius, color)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", index, err)
		}
		return sphere, nil
	case "plane":
		point, err := pb.Point.required(fmt.Sprintf("primitive %d point", index))
		if err != nil {
			return nil, err
		}
		normal, err := pb.Normal.required(fmt.Sprintf("primitive %d normal", index))
		if err != nil {
			return nil, err
		}
		plane, err := geometry.NewPlane(point, normal, color)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", index, err)
		}
		return plane, nil
	default:
		return nil, fmt.Errorf("primitive %d has unknown type %q: %w", index, pb.Type, core.ErrConfiguration)
	}
}

func (lb LightBlock) build(index int) (*lights.PointLight, error) {
	position, err := lb.Position.required(fmt.Sprintf("light %d position", index))
	if err != nil {
		return nil, err
	}
	color := core.White
	if lb.Color != nil {
		if color, err = lb.Color.resolve(fmt.Sprintf("light %d color", index)); err != nil {
			return nil, err
		}
	}
	return lights.NewPointLight(position, color), nil
}

func (t Triple) required(what string) (math.Vec3, error) {
	if t == nil {
		return math.Vec3{}, fmt.Errorf("%s is missing: %w", what, core.ErrConfiguration)
	}
	if len(t) != 3 {
		return math.Vec3{}, fmt.Errorf("%s needs 3 components, got %d: %w", what, len(t), core.ErrConfiguration)
	}
	return math.NewVec3(t[0], t[1], t[2]), nil
}

func (c ColorValue) resolve(what string) (core.Color, error) {
	if c == nil {
		return core.Black, nil
	}
	if len(c) != 3 {
		return core.Black, fmt.Errorf("%s needs 3 channels, got %d: %w", what, len(c), core.ErrConfiguration)
	}
	for _, channel := range c {
		if channel < 0 || channel > 255 {
			return core.Black, fmt.Errorf("%s channel %d outside [0, 255]: %w", what, channel, core.ErrConfiguration)
		}
	}
	return core.NewColor(c[0], c[1], c[2]), nil
}
