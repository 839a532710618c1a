package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	BaseColor    string                 `json:"baseColor,omitempty"`
	ShadedColor  string                 `json:"shadedColor"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractGeometryInfo describes a primitive with a type switch over the
// closed primitive set
func extractGeometryInfo(primitive geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch p := primitive.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{p.Center.X, p.Center.Y, p.Center.Z}
		properties["radius"] = p.Radius
		return "sphere", properties
	case *geometry.Plane:
		properties["point"] = [3]float64{p.Point.X, p.Point.Y, p.Point.Z}
		properties["normal"] = [3]float64{p.Normal.X, p.Normal.Y, p.Normal.Z}
		return "plane", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts the view ray through (pixelX, pixelY) and describes
// the nearest primitive it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResponse, error) {
	camera := sceneObj.GetCamera()
	if camera == nil {
		return InspectResponse{}, fmt.Errorf("scene has no camera: %w", core.ErrConfiguration)
	}

	ray, err := camera.PixelRay(pixelX, pixelY)
	if err != nil {
		return InspectResponse{}, err
	}

	shaded, err := sceneObj.Resolve(ray)
	if err != nil {
		return InspectResponse{}, err
	}

	response := InspectResponse{ShadedColor: hexColor(shaded)}
	hit, isHit := sceneObj.NearestHit(ray)
	if !isHit {
		return response, nil
	}

	point := ray.At(hit.T)
	normal, err := hit.Primitive.NormalAt(point).Unit()
	if err != nil {
		return InspectResponse{}, err
	}

	response.Hit = true
	response.Distance = hit.T
	response.Point = [3]float64{point.X, point.Y, point.Z}
	response.Normal = [3]float64{normal.X, normal.Y, normal.Z}
	response.BaseColor = hexColor(hit.Primitive.Color())
	response.GeometryType, response.Properties = extractGeometryInfo(hit.Primitive)
	return response, nil
}

// handleInspect reports what the view ray through a pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pixelX, err := parseIntParam(r.URL.Query(), "x", -1, 0, req.Resolution-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pixelY, err := parseIntParam(r.URL.Query(), "y", -1, 0, req.Resolution-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if pixelX < 0 || pixelY < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	response, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func hexColor(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
