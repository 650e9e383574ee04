package server

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func newTestServer() *Server {
	return &Server{
		port:      0,
		scenesDir: "../../scenes",
		logger:    core.NewLogger(io.Discard, "web"),
	}
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected a request ID header")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected request ID abc-123, got %q", got)
	}
}

func TestScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var response scene.ScenesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Groups) < 2 {
		t.Fatalf("Expected builtin and file groups, got %d groups", len(response.Groups))
	}
	if len(response.Groups[0].Scenes) != len(scene.Builtins()) {
		t.Errorf("Expected %d builtin scenes, got %d", len(scene.Builtins()), len(response.Groups[0].Scenes))
	}
}

func TestRenderPNG(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?scene=ambient&width=16&height=12&aa=none")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if rec.Header().Get("X-Render-Job") == "" {
		t.Error("Expected a render job header")
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Body is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("Expected 16x12, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderPFM(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?scene=file:two-mirrors&width=8&height=8&samples=1&depth=2&format=pfm")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "PF\n8 8\n") {
		t.Errorf("Expected a PFM header, got %q", rec.Body.String()[:min(rec.Body.Len(), 12)])
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"width too small", "/api/render?scene=ambient&width=2", http.StatusBadRequest},
		{"width not a number", "/api/render?width=wide", http.StatusBadRequest},
		{"unknown antialiasing", "/api/render?scene=ambient&aa=blurry", http.StatusBadRequest},
		{"unknown format", "/api/render?scene=ambient&format=gif", http.StatusBadRequest},
		{"unknown scene", "/api/render?scene=nonexistent", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(), tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON error body, got %q", ct)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer()

	t.Run("sphere at center", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=ambient&width=101&height=101&x=50&y=50")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var response InspectResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if !response.Hit || response.GeometryType != "sphere" || !response.FrontFace {
			t.Fatalf("Expected front-face sphere hit, got %+v", response)
		}
		// Camera at z=5 looking at a unit sphere at the origin
		if diff := response.Distance - 4; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Expected distance 4, got %f", response.Distance)
		}
		normal := core.NewVec3(response.Normal[0], response.Normal[1], response.Normal[2])
		if !normal.Equals(core.NewVec3(0, 0, 1), 1e-9) {
			t.Errorf("Expected normal (0,0,1), got %v", response.Normal)
		}
	})

	t.Run("corner misses", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=ambient&width=101&height=101&x=0&y=0")
		var response InspectResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if response.Hit {
			t.Errorf("Expected a miss, got %+v", response)
		}
	})

	errorTests := []struct {
		name   string
		target string
	}{
		{"missing x", "/api/inspect?scene=ambient&y=1"},
		{"out of bounds", "/api/inspect?scene=ambient&width=10&height=10&x=10&y=0"},
		{"negative", "/api/inspect?scene=ambient&x=-1&y=0"},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := get(t, s, tt.target); rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: inner}
	rec.Write([]byte("hello"))

	if rec.status != http.StatusOK || rec.bytes != 5 {
		t.Errorf("Expected status 200 and 5 bytes, got %d and %d", rec.status, rec.bytes)
	}
}
