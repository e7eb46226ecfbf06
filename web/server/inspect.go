package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

// handleInspect casts the camera ray through the center of pixel (x, y) and
// reports the first surface it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(w, r)
	if err != nil {
		writeError(w, statusFor(err), fmt.Errorf("invalid request: %w", err))
		return
	}

	width, height := req.Scene.Camera.Resolution()
	x, err := parseIntParam(r.URL.Query(), "x", -1, 0, width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(r.URL.Query(), "y", -1, 0, height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return
	}

	ray := req.Scene.Camera.GenerateRay(core.NewVec2(float64(x)+0.5, float64(y)+0.5))
	writeJSON(w, http.StatusOK, inspectRay(req.Scene.GetWorld(), ray))
}

// inspectRay intersects ray with world and describes the hit
func inspectRay(world core.Surface, ray core.Ray) InspectResponse {
	hit, ok := world.Intersect(ray)
	if !ok {
		return InspectResponse{Hit: false}
	}

	materialType, properties := extractMaterialInfo(hit.Material)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.ShadingNormal.X, hit.ShadingNormal.Y, hit.ShadingNormal.Z},
		Distance:     hit.T * ray.Direction.Length(),
		Properties:   properties,
	}
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case nil:
		return "none", properties

	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["roughness"] = m.Roughness
		return "metal", properties

	case *material.Dielectric:
		properties["ior"] = m.IOR
		properties["fresnel"] = m.Fresnel
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.Light:
		properties["power"] = vecArray(m.Power)
		properties["color"] = hexColor(m.Power)
		return "light", properties

	default:
		return fmt.Sprintf("%T", mat), properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a linear color as a display hex string, clamped to [0, 1]
func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
