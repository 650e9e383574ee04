package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Image size limits accepted by the API
const (
	minImageSize = 8
	maxImageSize = 2000
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	logger    *log.Logger
}

// NewServer creates a new web server serving scene files from the discovered scenes directory
func NewServer(port int) *Server {
	return &Server{
		port:      port,
		scenesDir: scene.FindScenesDir(),
		logger:    core.DefaultLogger().WithPrefix("web"),
	}
}

// RenderRequest represents the scene parameters shared by render and inspect requests
type RenderRequest struct {
	Scene        string             // Builtin name, file ID or scene file path
	Width        int                // Image width
	Height       int                // Image height
	Samples      int                // Samples per pixel, 0 keeps the scene's value
	Depth        int                // Max recursion depth, 0 keeps the scene's value
	AntiAliasing scene.AntiAliasing // Strategy override, empty keeps the scene's value
}

// Handler returns the API routes wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	return s.withRequestLogging(mux)
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "url", "http://localhost"+addr, "scenes", s.scenesDir)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists builtin scenes and discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene selection and size parameters
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 300, minImageSize, maxImageSize); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses render parameters on top of the common scene parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, 1024); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, 64); err != nil {
		return nil, err
	}
	if aa := query.Get("aa"); aa != "" {
		if req.AntiAliasing, err = scene.ParseAntiAliasing(aa); err != nil {
			return nil, err
		}
	}

	if req.Width*req.Height > 800*600 && req.Samples > 64 {
		s.logger.Warn("large image with high samples may render slowly",
			"width", req.Width, "height", req.Height, "samples", req.Samples)
	}
	return req, nil
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

// createScene loads the requested scene and applies the request overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Load(req.Scene, s.scenesDir)
	if err != nil {
		return nil, err
	}
	if err := sceneObj.SetImageSize(req.Width, req.Height); err != nil {
		return nil, err
	}
	if req.Samples > 0 {
		sceneObj.Settings.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		sceneObj.Settings.MaxDepth = req.Depth
	}
	if req.AntiAliasing != "" {
		sceneObj.Settings.AntiAliasing = req.AntiAliasing
	}
	return sceneObj, nil
}

// sceneErrorStatus maps scene loading errors to HTTP status codes
func sceneErrorStatus(err error) int {
	if errors.Is(err, core.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
