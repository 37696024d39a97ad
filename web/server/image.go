package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const (
	minImageScale = 0.1
	maxImageScale = 8
)

// handleImage renders a scene in one shot and returns the encoded image
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	var req SceneRequest
	if err := s.parseCommonSceneParams(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	format := output.FormatPNG
	if name := query.Get("format"); name != "" {
		parsed, err := output.ParseFormat(name)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = parsed
	}

	scale, err := parseFloatParam(query, "scale", 1, minImageScale, maxImageScale)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, camera, err := s.loadScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	raytracer := renderer.NewRaytracer(sceneObj.World, camera,
		renderer.WithEnvironment(sceneObj.Environment),
		renderer.WithLogger(core.NewSlogLogger(s.logger.With("scene", sceneObj.Name))))

	buf, _, err := raytracer.Render(r.Context())
	if err != nil {
		if errors.Is(err, r.Context().Err()) {
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var encoded bytes.Buffer
	if err := output.Encode(&encoded, buf, format, scale); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(encoded.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(encoded.Bytes())
}
