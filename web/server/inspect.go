package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

var inspectRange = core.UniverseInterval.WithMin(0.001)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Object    geometry.Hittable // nil if the hit could not be attributed
}

// hexColor formats a linear color as #rrggbb without gamma correction
func hexColor(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(mgl64.Clamp(c[0], 0, 1)*255), int(mgl64.Clamp(c[1], 0, 1)*255), int(mgl64.Clamp(c[2], 0, 1)*255))
}

// extractMaterialInfo reports the type and parameters of a material
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["luminance"] = core.Luminance(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["luminance"] = core.Luminance(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case nil:
		return "none", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo reports the type and parameters of a hit object
func extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.HittableList:
		properties["objects"] = geom.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the first camera ray through a pixel and returns the nearest object hit.
// The ray is reproducible because the sampler is seeded with a fixed value.
func inspectPixel(world *geometry.HittableList, camera *renderer.Camera, pixelX, pixelY int) InspectResult {
	ray := camera.GetRay(pixelX, pixelY, core.NewSeededSampler(0))

	hit, isHit := world.Hit(ray, inspectRange)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The list does not report which object it hit, so find the one with the same distance
	for _, object := range world.Objects() {
		if objectHit, ok := object.Hit(ray, inspectRange); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Object: object}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req SceneRequest
	if err := s.parseCommonSceneParams(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, camera, err := s.loadScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if pixelX < 0 || pixelX >= camera.Width() || pixelY < 0 || pixelY >= camera.Height() {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	writeJSON(w, http.StatusOK, buildInspectResponse(inspectPixel(sceneObj.World, camera, pixelX, pixelY)))
}

// buildInspectResponse converts an inspection result to its JSON form
func buildInspectResponse(result InspectResult) InspectResponse {
	if !result.Hit {
		return InspectResponse{Hit: false}
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Object)

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64(result.HitRecord.Point),
		Normal:       [3]float64(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
}
