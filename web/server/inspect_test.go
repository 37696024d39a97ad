package server

import (
	"math"
	"net/http"
	"net/url"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

func inspect(t *testing.T, s *Server, x, y string) InspectResponse {
	t.Helper()
	rec := get(t, s, "/api/inspect", url.Values{"scene": {"file:pair"}, "x": {x}, "y": {y}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response InspectResponse
	decodeJSON(t, rec, &response)
	return response
}

func TestInspect_CenterSphere(t *testing.T) {
	s := newTestServer(t)
	response := inspect(t, s, "16", "9")

	if !response.Hit {
		t.Fatal("Expected center pixel to hit the center sphere")
	}
	if response.MaterialType != "lambertian" || response.GeometryType != "sphere" {
		t.Errorf("Expected lambertian sphere, got %s %s", response.MaterialType, response.GeometryType)
	}
	if math.Abs(response.Distance-0.5) > 0.05 {
		t.Errorf("Expected distance near 0.5, got %f", response.Distance)
	}
	if !response.FrontFace {
		t.Error("Expected front face hit")
	}

	mat, ok := response.Properties["material"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected material properties, got %v", response.Properties)
	}
	if lum, _ := mat["luminance"].(float64); math.Abs(lum-0.5) > 1e-9 {
		t.Errorf("Expected luminance 0.5 for mid gray, got %v", mat["luminance"])
	}

	geom, ok := response.Properties["geometry"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected geometry properties, got %v", response.Properties)
	}
	if geom["radius"] != 0.5 {
		t.Errorf("Expected radius 0.5, got %v", geom["radius"])
	}
}

func TestInspect_GroundAndSky(t *testing.T) {
	s := newTestServer(t)

	ground := inspect(t, s, "16", "17")
	if !ground.Hit {
		t.Fatal("Expected bottom pixel to hit the ground")
	}
	geom := ground.Properties["geometry"].(map[string]interface{})
	if geom["radius"] != 100.0 {
		t.Errorf("Expected ground radius 100, got %v", geom["radius"])
	}

	sky := inspect(t, s, "0", "0")
	if sky.Hit {
		t.Errorf("Expected top-left pixel to miss, got %+v", sky)
	}
}

func TestInspect_InvalidCoordinates(t *testing.T) {
	s := newTestServer(t)
	tests := []url.Values{
		{"scene": {"file:pair"}, "y": {"0"}},
		{"scene": {"file:pair"}, "x": {"a"}, "y": {"0"}},
		{"scene": {"file:pair"}, "x": {"32"}, "y": {"0"}},
		{"scene": {"file:pair"}, "x": {"0"}, "y": {"-1"}},
		{"scene": {"nope"}, "x": {"0"}, "y": {"0"}},
	}
	for _, params := range tests {
		rec := get(t, s, "/api/inspect", params)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%v: expected 400, got %d", params, rec.Code)
		}
	}
}

func TestExtractMaterialInfo(t *testing.T) {
	tests := []struct {
		mat      material.Material
		wantType string
		key      string
		want     interface{}
	}{
		{material.NewLambertian(core.NewColor(1, 0, 0)), "lambertian", "color", "#ff0000"},
		{material.NewLambertian(core.NewColor(1, 0, 0)), "lambertian", "luminance", 0.299},
		{material.NewMetal(core.NewColor(0, 1, 0), 0), "metal", "luminance", 0.587},
		{material.NewMetal(core.NewColor(0.5, 0.5, 0.5), 0.3), "metal", "fuzz", 0.3},
		{material.NewDielectric(1.5), "dielectric", "refractionIndex", 1.5},
	}

	for _, tt := range tests {
		gotType, props := extractMaterialInfo(tt.mat)
		if gotType != tt.wantType {
			t.Errorf("Expected %s, got %s", tt.wantType, gotType)
		}
		if props[tt.key] != tt.want {
			t.Errorf("%s: expected %s=%v, got %v", tt.wantType, tt.key, tt.want, props[tt.key])
		}
	}

	if gotType, _ := extractMaterialInfo(nil); gotType != "none" {
		t.Errorf("Expected none for nil material, got %s", gotType)
	}
}

func TestExtractGeometryInfo_Unattributed(t *testing.T) {
	if gotType, _ := extractGeometryInfo(nil); gotType != "unknown" {
		t.Errorf("Expected unknown, got %s", gotType)
	}
	list := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil))
	gotType, props := extractGeometryInfo(list)
	if gotType != "list" || props["objects"] != 1 {
		t.Errorf("Expected list of 1, got %s %v", gotType, props)
	}
}
