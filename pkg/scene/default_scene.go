package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/math"
)

// NewDefaultScene creates five colored spheres in front of a grey back wall,
// lit by one white light between the camera and the spheres
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	s := New("default")

	spheres := []struct {
		center math.Vec3
		color  core.Color
	}{
		{math.NewVec3(-5, -5, 0), core.NewColor(255, 0, 0)},
		{math.NewVec3(5, -5, 10), core.NewColor(0, 255, 0)},
		{math.NewVec3(5, 5, 0), core.NewColor(0, 0, 255)},
		{math.NewVec3(-5, 5, 10), core.NewColor(0, 0, 0)},
		{math.NewVec3(0, 0, 20), core.NewColor(255, 255, 255)},
	}
	for _, spec := range spheres {
		sphere, err := geometry.NewSphere(spec.center, 5, spec.color)
		if err != nil {
			return nil, err
		}
		s.AddPrimitive(sphere)
	}

	backWall, err := geometry.NewPlane(math.NewVec3(0, 0, 40), math.NewVec3(0, 0, -1), core.NewColor(128, 128, 128))
	if err != nil {
		return nil, err
	}
	s.AddPrimitive(backWall)

	s.AddLight(lights.NewWhitePointLight(math.NewVec3(0, 0, -10)))

	if err := s.attachCamera(geometry.DefaultCameraConfig(), cameraOverrides); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSingleSphereScene creates one red sphere at the origin lit from in
// front and off to one side
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	s := New("single-sphere")

	sphere, err := geometry.NewSphere(math.NewVec3(0, 0, 0), 5, core.NewColor(255, 0, 0))
	if err != nil {
		return nil, err
	}
	s.AddPrimitive(sphere)
	s.AddLight(lights.NewWhitePointLight(math.NewVec3(-10, -10, -30)))

	if err := s.attachCamera(geometry.DefaultCameraConfig(), cameraOverrides); err != nil {
		return nil, err
	}
	return s, nil
}

// NewEmptyScene creates a scene with a camera and nothing else. It renders
// solid black.
func NewEmptyScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	s := New("empty")
	if err := s.attachCamera(geometry.DefaultCameraConfig(), cameraOverrides); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) attachCamera(base geometry.CameraConfig, overrides []geometry.CameraConfig) error {
	config := base
	if len(overrides) > 0 {
		config = geometry.MergeCameraConfig(base, overrides[0])
	}

	camera, err := geometry.NewCamera(config)
	if err != nil {
		return err
	}
	s.SetCamera(camera)
	return nil
}
