package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Request limits shared by the render, image and inspect endpoints
const (
	DefaultScene = "default"
	MinWidth     = 8
	MaxWidth     = 2000
	MaxSamples   = 10000
	MaxDepth     = 1000
	MaxPasses    = 100
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	logger    *slog.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server. Scene files are listed from scenesDir.
func NewServer(port int, scenesDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = core.NewNopSlogLogger()
	}
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/scenes", s.handleScenes)
	s.mux.HandleFunc("GET /api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("GET /api/render", s.handleRender)
	s.mux.HandleFunc("GET /api/image", s.handleImage)
	s.mux.HandleFunc("GET /api/inspect", s.handleInspect)

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "addr", "http://localhost"+srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// SceneRequest holds the scene parameters common to every endpoint
type SceneRequest struct {
	Scene   string `json:"scene"`   // Scene ID from /api/scenes
	Width   int    `json:"width"`   // Image width (0 = scene default)
	Samples int    `json:"samples"` // Samples per pixel (0 = scene default)
	Depth   int    `json:"depth"`   // Maximum bounces (0 = scene default)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default camera of a scene together with the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = DefaultScene
	}

	sceneObj, err := scene.Load(sceneName, s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Unknown scene: "+sceneName)
		return
	}

	response := map[string]interface{}{
		"scene":    sceneName,
		"objects":  sceneObj.ObjectCount(),
		"defaults": sceneObj.CameraConfig,
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": MinWidth, "max": MaxWidth},
			"samples": map[string]int{"min": 1, "max": MaxSamples},
			"depth":   map[string]int{"min": 0, "max": MaxDepth},
			"passes":  map[string]int{"min": 1, "max": MaxPasses},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene, width, samples and depth parameters
func (s *Server) parseCommonSceneParams(r *http.Request, req *SceneRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, MinWidth, MaxWidth); err != nil {
		return err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, MaxSamples); err != nil {
		return err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 0, MaxDepth); err != nil {
		return err
	}
	return nil
}

// loadScene builds the requested scene and a camera with the request overrides applied.
// A depth of 0 keeps the scene default.
func (s *Server) loadScene(req SceneRequest) (*scene.Scene, *renderer.Camera, error) {
	sceneObj, err := scene.Load(req.Scene, s.scenesDir)
	if err != nil {
		return nil, nil, err
	}
	camera, err := sceneObj.NewCamera(renderer.CameraConfig{
		ImageWidth:      req.Width,
		SamplesPerPixel: req.Samples,
		MaxBounces:      req.Depth,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scene %q: %w", req.Scene, err)
	}
	return sceneObj, camera, nil
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

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeJSONError writes {"error": message}
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
