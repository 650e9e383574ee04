package server

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// contentTypes maps the supported output formats to their MIME types
var contentTypes = map[string]string{
	"png":  "image/png",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"pfm":  "application/x-portable-floatmap",
	"hdr":  "image/vnd.radiance",
}

// handleRender renders the requested scene and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "png"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unsupported format: "+format)
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	rt, err := renderer.NewRaytracer(sceneObj)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The request context aborts the render when the client disconnects
	img, stats, err := rt.Render(r.Context())
	if err != nil {
		s.logger.Warn("render failed", "request", requestID(r), "err", err)
		writeError(w, http.StatusServiceUnavailable, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := loaders.EncodeImage(&buf, "."+format, img.Pixels); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Job", stats.JobID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Rays", strconv.FormatInt(stats.Rays, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
