package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Scene file errors
var (
	ErrUnknownMaterialType = errors.New("unknown material type")
	ErrUndefinedMaterial   = errors.New("undefined material")
	ErrInvalidSphere       = errors.New("invalid sphere")
)

// File is the JSON representation of a scene. Materials are declared once by
// name and shared by every sphere that references them.
type File struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Group       string                  `json:"group,omitempty"`
	Camera      json.RawMessage         `json:"camera,omitempty"`
	Environment json.RawMessage         `json:"environment,omitempty"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Spheres     []SphereSpec            `json:"spheres"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type            string     `json:"type"` // "lambertian", "metal" or "dielectric"
	Albedo          core.Color `json:"albedo,omitempty"`
	Fuzz            float64    `json:"fuzz,omitempty"`
	RefractionIndex float64    `json:"refractionIndex,omitempty"`
}

// SphereSpec places a sphere with a named material
type SphereSpec struct {
	Center   core.Vec3 `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

// LoadFile reads a JSON scene from disk. The scene is named after the file
// when the document has no name.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", path, err)
	}

	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a JSON scene. Camera and environment fields that are absent
// keep their defaults.
func Parse(r io.Reader) (*Scene, error) {
	var file File
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return file.Build()
}

// decodeStrict decodes a nested block onto v, rejecting unknown fields.
// An empty block leaves v unchanged.
func decodeStrict(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// Build converts a decoded scene file into a scene
func (f *File) Build() (*Scene, error) {
	s := NewScene(f.Name)

	if err := decodeStrict(f.Camera, &s.CameraConfig); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if err := decodeStrict(f.Environment, &s.Environment); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for name, spec := range f.Materials {
		mat, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, spec := range f.Spheres {
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius %g: %w", i, spec.Radius, ErrInvalidSphere)
		}
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: material %q: %w", i, spec.Material, ErrUndefinedMaterial)
		}
		s.World.Add(geometry.NewSphere(spec.Center, spec.Radius, mat))
	}

	return s, nil
}

// Build creates the material described by m
func (m MaterialSpec) Build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(m.Albedo), nil
	case "metal":
		return material.NewMetal(m.Albedo, m.Fuzz), nil
	case "dielectric":
		if m.RefractionIndex <= 0 {
			return nil, fmt.Errorf("refraction index %g must be positive", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("%q: %w", m.Type, ErrUnknownMaterialType)
	}
}
