package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// ParseError reports malformed scene input. Path locates the offending
// value, e.g. "surfaces[2].transform".
type ParseError struct {
	Path string
	Msg  string
	Err  error // Optional underlying cause
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "scene parse error: " + e.Msg
	}
	return fmt.Sprintf("scene parse error at %s: %s", e.Path, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(path, format string, args ...interface{}) *ParseError {
	return &ParseError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// sceneFile is the top level of a scene document. Fields the renderer does
// not need (name, description, ...) are ignored here.
type sceneFile struct {
	NumSamples *int            `json:"num_samples"`
	Background json.RawMessage `json:"background"`
	Camera     json.RawMessage `json:"camera"`
	Materials  json.RawMessage `json:"materials"`
	Surfaces   json.RawMessage `json:"surfaces"`
}

type cameraJSON struct {
	Transform  json.RawMessage `json:"transform"`
	Resolution json.RawMessage `json:"resolution"`
	VFov       *float64        `json:"vfov"`
	FocalDist  *float64        `json:"focal_dist"`
}

type materialJSON struct {
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Albedo    json.RawMessage `json:"albedo"`
	Roughness *float64        `json:"roughness"`
	IOR       *float64        `json:"ior"`
	Fresnel   bool            `json:"fresnel"`
	Power     json.RawMessage `json:"power"`
}

type surfaceJSON struct {
	Type      string          `json:"type"`
	Radius    *float64        `json:"radius"`
	Size      json.RawMessage `json:"size"`
	Transform json.RawMessage `json:"transform"`
	Material  *string         `json:"material"`
}

// LoadSceneFile reads a scene from a .json file
func LoadSceneFile(filename string) (*scene.Scene, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return nil, fmt.Errorf("input file must have '.json' extension: %s", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := LoadScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadScene parses a scene document. Structural problems are reported as
// *ParseError; a surface naming an unknown material yields an error wrapping
// material.ErrMaterialNotFound.
func LoadScene(r io.Reader) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	var doc sceneFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Msg: "invalid JSON", Err: err}
	}

	if isAbsent(doc.Camera) {
		return nil, parseErrorf("", "scene must include a camera")
	}
	cameraConfig, err := parseCamera(doc.Camera)
	if err != nil {
		return nil, err
	}

	s := scene.NewScene(cameraConfig)

	if doc.NumSamples != nil {
		if *doc.NumSamples < 1 {
			return nil, parseErrorf("num_samples", "must be at least 1, got %d", *doc.NumSamples)
		}
		s.SamplesPerPixel = *doc.NumSamples
	}

	if !isAbsent(doc.Background) {
		if s.Background, err = parseVec3(doc.Background, "background"); err != nil {
			return nil, err
		}
	}

	if !isAbsent(doc.Materials) {
		if err := loadMaterials(doc.Materials, s.Materials); err != nil {
			return nil, err
		}
	}

	if !isAbsent(doc.Surfaces) {
		if err := loadSurfaces(doc.Surfaces, s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func parseCamera(raw json.RawMessage) (renderer.CameraConfig, error) {
	config := renderer.DefaultCameraConfig()

	var cam cameraJSON
	if err := json.Unmarshal(raw, &cam); err != nil {
		return config, &ParseError{Path: "camera", Msg: "camera must be an object", Err: err}
	}

	if !isAbsent(cam.Transform) {
		t, err := ParseTransform(cam.Transform, "camera.transform")
		if err != nil {
			return config, err
		}
		config.Transform = t
	}

	if !isAbsent(cam.Resolution) {
		res, err := parseFloats(cam.Resolution, 2, "camera.resolution")
		if err != nil {
			return config, err
		}
		width, height := int(res[0]), int(res[1])
		if float64(width) != res[0] || float64(height) != res[1] || width < 1 || height < 1 {
			return config, parseErrorf("camera.resolution", "must be two positive integers, got %v", res)
		}
		config.Width, config.Height = width, height
	}

	if cam.VFov != nil {
		if *cam.VFov <= 0 || *cam.VFov >= 180 {
			return config, parseErrorf("camera.vfov", "must be in (0, 180) degrees, got %v", *cam.VFov)
		}
		config.VFov = *cam.VFov
	}

	if cam.FocalDist != nil {
		if *cam.FocalDist <= 0 {
			return config, parseErrorf("camera.focal_dist", "must be positive, got %v", *cam.FocalDist)
		}
		config.FocalDist = *cam.FocalDist
	}

	return config, nil
}

func loadMaterials(raw json.RawMessage, lib *material.Library) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return &ParseError{Path: "materials", Msg: "materials property must be an array", Err: err}
	}

	for i, entry := range entries {
		path := fmt.Sprintf("materials[%d]", i)

		var m materialJSON
		if err := json.Unmarshal(entry, &m); err != nil {
			return &ParseError{Path: path, Msg: "material must be an object", Err: err}
		}
		if m.Type == "" {
			return parseErrorf(path, "material found without type")
		}
		if m.Name == "" {
			return parseErrorf(path, "material found without name")
		}

		mat, err := buildMaterial(m, path)
		if err != nil {
			return err
		}
		if err := lib.Add(m.Name, mat); err != nil {
			return &ParseError{Path: path, Msg: fmt.Sprintf("duplicate material names in input: %s", m.Name), Err: err}
		}
	}
	return nil
}

func buildMaterial(m materialJSON, path string) (core.Material, error) {
	white := core.NewVec3(1, 1, 1)

	switch m.Type {
	case "lambertian":
		albedo, err := optionalVec3(m.Albedo, white, path+".albedo")
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil

	case "metal":
		albedo, err := optionalVec3(m.Albedo, white, path+".albedo")
		if err != nil {
			return nil, err
		}
		roughness := 0.0
		if m.Roughness != nil {
			roughness = *m.Roughness
		}
		return material.NewMetal(albedo, roughness), nil

	case "dielectric":
		ior := 1.0
		if m.IOR != nil {
			ior = *m.IOR
		}
		if ior <= 0 {
			return nil, parseErrorf(path+".ior", "must be positive, got %v", ior)
		}
		if m.Fresnel {
			return material.NewFresnelDielectric(ior), nil
		}
		return material.NewDielectric(ior), nil

	case "light":
		power, err := optionalVec3(m.Power, white, path+".power")
		if err != nil {
			return nil, err
		}
		return material.NewLight(power), nil

	default:
		return nil, parseErrorf(path+".type", "unrecognized material type: %s", m.Type)
	}
}

func loadSurfaces(raw json.RawMessage, s *scene.Scene) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return &ParseError{Path: "surfaces", Msg: "surfaces should be an array", Err: err}
	}

	for i, entry := range entries {
		path := fmt.Sprintf("surfaces[%d]", i)

		var sj surfaceJSON
		if err := json.Unmarshal(entry, &sj); err != nil {
			return &ParseError{Path: path, Msg: "surface must be an object", Err: err}
		}
		if sj.Type == "" {
			return parseErrorf(path, "surface found without type")
		}

		transform := core.IdentityTransform()
		if !isAbsent(sj.Transform) {
			t, err := ParseTransform(sj.Transform, path+".transform")
			if err != nil {
				return err
			}
			transform = t
		}

		// Surfaces without a material are allowed and render black
		var mat core.Material
		if sj.Material != nil {
			found, err := s.Materials.Find(*sj.Material)
			if err != nil {
				return fmt.Errorf("%s.material: %w", path, err)
			}
			mat = found
		}

		switch sj.Type {
		case "sphere":
			radius := 1.0
			if sj.Radius != nil {
				radius = *sj.Radius
			}
			if radius <= 0 {
				return parseErrorf(path+".radius", "must be positive, got %v", radius)
			}
			s.AddSurface(geometry.NewSphere(radius, transform, mat))

		case "quad":
			size := core.NewVec2(1, 1)
			if !isAbsent(sj.Size) {
				v, err := parseFloats(sj.Size, 2, path+".size")
				if err != nil {
					return err
				}
				size = core.NewVec2(v[0], v[1])
			}
			if size.X <= 0 || size.Y <= 0 {
				return parseErrorf(path+".size", "must be positive, got [%v, %v]", size.X, size.Y)
			}
			s.AddSurface(geometry.NewQuad(size, transform, mat))

		default:
			return parseErrorf(path+".type", "surface type '%s' not recognized", sj.Type)
		}
	}
	return nil
}

// isAbsent reports whether an optional field was missing or null
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseFloats decodes an array of exactly n numbers
func parseFloats(raw json.RawMessage, n int, path string) ([]float64, error) {
	var values []float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, &ParseError{Path: path, Msg: fmt.Sprintf("can't parse Vec%d - must be an array of numbers", n), Err: err}
	}
	if len(values) != n {
		return nil, parseErrorf(path, "can't parse Vec%d - invalid array size %d", n, len(values))
	}
	return values, nil
}

func parseVec3(raw json.RawMessage, path string) (core.Vec3, error) {
	v, err := parseFloats(raw, 3, path)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func optionalVec3(raw json.RawMessage, fallback core.Vec3, path string) (core.Vec3, error) {
	if isAbsent(raw) {
		return fallback, nil
	}
	return parseVec3(raw, path)
}
