package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/encoder"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Server handles web requests for the raycaster
type Server struct {
	port      int
	scenesDir string // YAML scene directory, empty disables file scenes
	logger    zerolog.Logger
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string, logger zerolog.Logger) *Server {
	return &Server{port: port, scenesDir: scenesDir, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string              // Built-in scene name or "file:<name>"
	Resolution  int                 // Square image size in pixels
	Workers     int                 // Render goroutines, 0 = auto
	Shading     *scene.ShadingModel // Diffuse model, nil keeps the scene's own
	Compression encoder.Compression // PNG compression level
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int   `json:"totalPixels"`
	LitPixels   int   `json:"litPixels"`
	Workers     int   `json:"workers"`
	ElapsedMs   int64 `json:"elapsedMs"`
	Bytes       int   `json:"bytes"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/ws", s.handleRenderWS)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	s.logger.Info().Str("addr", addr).Msg("HTTP server starting")
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes followed by any file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := scene.ListBuiltinScenes()
	if s.scenesDir != "" {
		fileScenes, err := scene.ListFileScenes(s.scenesDir)
		if err != nil {
			s.logger.Warn().Err(err).Str("dir", s.scenesDir).Msg("skipped unreadable scene files")
		}
		scenes = append(scenes, fileScenes...)
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders the requested scene and responds with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, stats, err := s.render(req, nil)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// render builds the scene, renders it and encodes the frame
func (s *Server) render(req *RenderRequest, onRow renderer.ProgressFunc) ([]byte, Stats, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, Stats{}, err
	}

	raytracer := renderer.NewRaytracer(sceneObj, renderer.Config{
		NumWorkers: req.Workers,
		Logger:     s.logger.With().Str("scene", req.Scene).Logger(),
		OnRow:      onRow,
	})
	frame, renderStats, err := raytracer.RenderPass()
	if err != nil {
		return nil, Stats{}, err
	}

	data, err := encoder.EncodeWithOptions(frame, encoder.Options{Compression: req.Compression})
	if err != nil {
		return nil, Stats{}, err
	}

	return data, Stats{
		TotalPixels: renderStats.TotalPixels,
		LitPixels:   renderStats.LitPixels,
		Workers:     renderStats.Workers,
		ElapsedMs:   renderStats.Elapsed.Milliseconds(),
		Bytes:       len(data),
	}, nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Resolution, err = parseIntParam(values, "resolution", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(values, "workers", 0, 0, 64); err != nil {
		return nil, err
	}
	if values.Has("shading") {
		shading, err := scene.ParseShadingModel(values.Get("shading"))
		if err != nil {
			return nil, err
		}
		req.Shading = &shading
	}
	if req.Compression, err = encoder.ParseCompression(values.Get("compression")); err != nil {
		return nil, err
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

// createScene creates the scene named in req at the requested size
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	overrides := geometry.CameraConfig{Width: req.Resolution, Height: req.Resolution}

	var sceneObj *scene.Scene
	var err error
	if name, ok := strings.CutPrefix(req.Scene, scene.FileScenePrefix); ok {
		var path string
		if path, err = s.sceneFilePath(name); err != nil {
			return nil, err
		}
		sceneObj, err = loaders.LoadScene(path, s.logger, overrides)
	} else {
		sceneObj, err = scene.CreateBuiltin(req.Scene, overrides)
	}
	if err != nil {
		return nil, err
	}
	if req.Shading != nil {
		sceneObj.Shading = *req.Shading
	}
	return sceneObj, nil
}

// sceneFilePath maps a file scene name to its path under the scenes directory
func (s *Server) sceneFilePath(name string) (string, error) {
	if s.scenesDir == "" || name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("unknown scene %q: %w", scene.FileScenePrefix+name, core.ErrConfiguration)
	}
	path := filepath.Join(s.scenesDir, name+".yaml")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("unknown scene %q: %w", scene.FileScenePrefix+name, core.ErrConfiguration)
	}
	return path, nil
}

func statusFor(err error) int {
	if errors.Is(err, core.ErrConfiguration) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
