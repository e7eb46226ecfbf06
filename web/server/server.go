package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// maxSceneBytes bounds the size of a scene document posted to the server
const maxSceneBytes = 1 << 20

// Server handles web requests for the recursive raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server that also serves the .json scenes
// found in scenesDir
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest is a parsed and validated render request
type RenderRequest struct {
	Scene  *scene.Scene
	Name   string
	Config renderer.SamplingConfig
	Bias   float64
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	AverageSamples  float64 `json:"averageSamples"`
	Tiles           int     `json:"tiles"`
	NonFinitePixels int     `json:"nonFinitePixels"`
	NegativePixels  int     `json:"negativePixels"`
	DurationMs      int64   `json:"durationMs"`
}

func newStats(s renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     s.TotalPixels,
		TotalSamples:    s.TotalSamples,
		SamplesPerPixel: s.SamplesPerPixel,
		AverageSamples:  s.AverageSamples(),
		Tiles:           s.Tiles,
		NonFinitePixels: s.NonFinitePixels,
		NegativePixels:  s.NegativePixels,
		DurationMs:      s.Duration.Milliseconds(),
	}
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// parseRenderRequest resolves the scene and sampling parameters of a request.
// A POST body is a scene document; otherwise the "scene" query parameter
// names a built-in scene or a .json file in the scenes directory.
func (s *Server) parseRenderRequest(w http.ResponseWriter, r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{Config: renderer.DefaultSamplingConfig()}
	query := r.URL.Query()

	var err error
	if req.Scene, req.Name, err = s.loadScene(w, r); err != nil {
		return nil, err
	}

	if req.Config.SamplesPerPixel, err = parseIntParam(query, "samples", 0, 1, 10000); err != nil {
		return nil, err
	}
	if req.Config.MaxDepth, err = parseIntParam(query, "depth", req.Config.MaxDepth, 1, 1000); err != nil {
		return nil, err
	}
	if req.Config.NumWorkers, err = parseIntParam(query, "workers", 0, 1, 256); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", int(req.Config.Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Config.Seed = int64(seed)
	if req.Bias, err = parseFloatParam(query, "bias", 1.0, 0.01, 100); err != nil {
		return nil, err
	}

	// Overriding the resolution rebuilds the camera with the same framing
	cameraConfig := req.Scene.CameraConfig
	if cameraConfig.Width, err = parseIntParam(query, "width", cameraConfig.Width, 1, 2000); err != nil {
		return nil, err
	}
	if cameraConfig.Height, err = parseIntParam(query, "height", cameraConfig.Height, 1, 2000); err != nil {
		return nil, err
	}
	if cameraConfig != req.Scene.CameraConfig {
		req.Scene.CameraConfig = cameraConfig
		req.Scene.Camera = renderer.NewCamera(cameraConfig)
	}

	return req, nil
}

func (s *Server) loadScene(w http.ResponseWriter, r *http.Request) (*scene.Scene, string, error) {
	if r.Method == http.MethodPost {
		sc, err := loaders.LoadScene(http.MaxBytesReader(w, r.Body, maxSceneBytes))
		if err != nil {
			return nil, "", err
		}
		return sc, "posted", nil
	}

	name := r.URL.Query().Get("scene")
	if name == "" {
		name = "cornell-box" // Default scene
	}

	if strings.HasSuffix(strings.ToLower(name), ".json") {
		// Only files directly inside the scenes directory are reachable
		sc, err := loaders.LoadSceneFile(filepath.Join(s.scenesDir, filepath.Base(name)))
		if err != nil {
			return nil, "", err
		}
		return sc, name, nil
	}

	sc, err := scene.NewBuiltinScene(name)
	if err != nil {
		return nil, "", err
	}
	return sc, name, nil
}

// statusFor maps request errors to HTTP status codes. Malformed scenes and
// parameters are the client's fault.
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, scene.ErrUnknownScene), errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
