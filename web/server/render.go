package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// RenderRequest holds the parameters of a progressive render
type RenderRequest struct {
	SceneRequest
	MaxPasses int  // Number of progressive passes
	Tiles     bool // Whether to stream tile updates
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"`
	TileNumber  int    `json:"tileNumber"`  // Current tile number in this pass (1-based)
	TotalTiles  int    `json:"totalTiles"`  // Total number of tiles in the image
	TotalPasses int    `json:"totalPasses"` // Total number of passes planned
}

// PassUpdate is sent once per completed pass with the full image so far
type PassUpdate struct {
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	IsLast         bool    `json:"isLast"`
	ElapsedMs      int64   `json:"elapsedMs"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG of the whole image
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	ObjectCount    int     `json:"objectCount"`
}

// sseWriter writes Server-Sent Events. Only the handler goroutine may use it.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	flusher, _ := w.(http.Flusher)
	return &sseWriter{w: w, flusher: flusher}
}

// send writes one event. data is JSON-encoded unless it is already a string.
func (sw *sseWriter) send(event string, data interface{}) error {
	var payload string
	switch v := data.(type) {
	case string:
		payload = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		payload = string(encoded)
	}

	if _, err := fmt.Fprintf(sw.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	if sw.flusher != nil {
		sw.flusher.Flush()
	}
	return nil
}

// handleRender handles progressive rendering with real-time tile streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sse := newSSEWriter(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		sse.send("error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)

	sceneObj, camera, err := s.loadScene(req.SceneRequest)
	if err != nil {
		sse.send("error", err.Error())
		return
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxPasses = req.MaxPasses
	config.MaxSamplesPerPixel = 0 // camera samples per pixel
	raytracer := renderer.NewProgressiveRaytracer(sceneObj.World, camera, sceneObj.Environment, config, webLogger)

	webLogger.Printf("Rendering %s: %dx%d, %d samples, %d passes\n",
		sceneObj.Name, camera.Width(), camera.Height(), camera.SamplesPerPixel(), req.MaxPasses)

	startTime := time.Now()
	passChan, tileChan, errChan := raytracer.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: req.Tiles})

	if err := s.streamRender(ctx, sse, consoleChan, passChan, tileChan, errChan, sceneObj, req, startTime); err != nil {
		// Client is gone; stop rendering
		cancel()
		s.logger.Debug("render stream ended", "render", renderID, "error", err)
	}
}

// streamRender forwards render events until rendering finishes or the client disconnects
func (s *Server) streamRender(ctx context.Context, sse *sseWriter, consoleChan <-chan ConsoleMessage,
	passChan <-chan renderer.PassResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	sceneObj *scene.Scene, req *RenderRequest, startTime time.Time) error {

	for passChan != nil || tileChan != nil || errChan != nil {
		select {
		case msg := <-consoleChan:
			if err := sse.send("console", msg); err != nil {
				return err
			}

		case result, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			if err := s.sendPass(sse, result, sceneObj, req, startTime); err != nil {
				return err
			}

		case result, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			if err := s.sendTile(sse, result); err != nil {
				return err
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			s.drainConsole(sse, consoleChan)
			return sse.send("error", fmt.Sprintf("Rendering failed: %v", err))

		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.drainConsole(sse, consoleChan)
	return sse.send("complete", "Rendering completed")
}

// drainConsole sends console messages that are already queued
func (s *Server) drainConsole(sse *sseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := sse.send("console", msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// sendPass encodes a completed pass and sends it as a passComplete event
func (s *Server) sendPass(sse *sseWriter, result renderer.PassResult, sceneObj *scene.Scene, req *RenderRequest, startTime time.Time) error {
	imageData, err := imageToBase64PNG(result.Buffer.Image())
	if err != nil {
		return sse.send("error", fmt.Sprintf("Error encoding pass %d: %v", result.PassNumber, err))
	}

	return sse.send("passComplete", PassUpdate{
		PassNumber:     result.PassNumber,
		TotalPasses:    req.MaxPasses,
		IsLast:         result.IsLast,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		Width:          result.Buffer.Width,
		Height:         result.Buffer.Height,
		ImageData:      imageData,
		TotalPixels:    result.Stats.TotalPixels,
		TotalSamples:   result.Stats.TotalSamples,
		AverageSamples: result.Stats.AverageSamples,
		MaxSamples:     result.Stats.MaxSamples,
		MinSamples:     result.Stats.MinSamples,
		ObjectCount:    sceneObj.ObjectCount(),
	})
}

// sendTile encodes a finished tile and sends it as a tile event
func (s *Server) sendTile(sse *sseWriter, result renderer.TileCompletionResult) error {
	tileData, err := imageToBase64PNG(result.TileImage)
	if err != nil {
		s.logger.Warn("error encoding tile image", "x", result.TileX, "y", result.TileY, "error", err)
		return nil
	}

	return sse.send("tile", TileUpdate{
		TileX:       result.TileX,
		TileY:       result.TileY,
		ImageData:   tileData,
		PassNumber:  result.PassNumber,
		TileNumber:  result.TileNumber,
		TotalTiles:  result.TotalTiles,
		TotalPasses: result.TotalPasses,
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, &req.SceneRequest); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxPasses, err = parseIntParam(query, "passes", renderer.DefaultProgressiveConfig().MaxPasses, 1, MaxPasses); err != nil {
		return nil, err
	}

	req.Tiles = true
	if tiles := query.Get("tiles"); tiles != "" {
		switch tiles {
		case "true", "1":
			req.Tiles = true
		case "false", "0":
			req.Tiles = false
		default:
			return nil, fmt.Errorf("invalid tiles: %s", tiles)
		}
	}

	return req, nil
}
