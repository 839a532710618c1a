package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/math"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	Resolve(ray math.Ray) (core.Color, error)
}

// ProgressFunc is called once per finished row, always from the goroutine
// that called RenderPass. completed counts rows finished so far.
type ProgressFunc func(row, completed, total int)

// Config contains rendering configuration
type Config struct {
	NumWorkers int            // 0 = runtime.NumCPU(), 1 = render on the calling goroutine
	Logger     zerolog.Logger // Defaults to a disabled logger
	OnRow      ProgressFunc   // Optional
}

// DefaultConfig renders sequentially without logging
func DefaultConfig() Config {
	return Config{
		NumWorkers: 1,
		Logger:     zerolog.Nop(),
	}
}

// Raytracer casts one ray per pixel through the scene camera
type Raytracer struct {
	scene  Scene
	camera *geometry.Camera
	config Config
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config Config) *Raytracer {
	return &Raytracer{
		scene:  scene,
		config: config,
	}
}

// Render renders scene sequentially and returns the frame
func Render(scene Scene) (*core.Frame, error) {
	frame, _, err := NewRaytracer(scene, DefaultConfig()).RenderPass()
	return frame, err
}

// RenderPass renders every pixel, row-major from row 0, and returns the
// frame. Any pixel error aborts the pass; no partial frame is returned.
func (rt *Raytracer) RenderPass() (*core.Frame, RenderStats, error) {
	rt.camera = rt.scene.GetCamera()
	if rt.camera == nil {
		return nil, RenderStats{}, fmt.Errorf("render: scene has no camera: %w", core.ErrConfiguration)
	}

	width, height := rt.camera.Width(), rt.camera.Height()
	workers := rt.numWorkers(height)
	logger := rt.config.Logger

	logger.Debug().
		Int("width", width).
		Int("height", height).
		Int("workers", workers).
		Msg("render started")

	startTime := time.Now()
	frame := core.NewFrame(width, height)

	var err error
	if workers == 1 {
		err = rt.renderSequential(frame)
	} else {
		err = rt.renderParallel(frame, workers)
	}
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels: width * height,
		LitPixels:   countLitPixels(frame),
		Workers:     workers,
		Elapsed:     time.Since(startTime),
	}

	logger.Info().
		Int("pixels", stats.TotalPixels).
		Int("lit", stats.LitPixels).
		Dur("elapsed", stats.Elapsed).
		Msg("render completed")

	return frame, stats, nil
}

func (rt *Raytracer) numWorkers(height int) int {
	workers := rt.config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return max(1, min(workers, height))
}

func (rt *Raytracer) renderSequential(frame *core.Frame) error {
	for row := 0; row < frame.Height; row++ {
		if err := rt.renderRow(row, frame.Pixels[row]); err != nil {
			return err
		}
		rt.reportProgress(row, row+1, frame.Height)
	}
	return nil
}

func (rt *Raytracer) renderParallel(frame *core.Frame, workers int) error {
	pool := NewWorkerPool(rt, frame, workers)
	pool.Start()

	for row := 0; row < frame.Height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}

	// Report the error from the lowest failing row so the result does not
	// depend on scheduling.
	var firstErr error
	firstErrRow := frame.Height
	for completed := 1; completed <= frame.Height; completed++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if result.Row < firstErrRow {
				firstErr, firstErrRow = result.Error, result.Row
			}
			continue
		}
		if firstErr == nil {
			rt.reportProgress(result.Row, completed, frame.Height)
		}
	}

	pool.Stop()
	return firstErr
}

// renderRow fills pixels with the colors of one row
func (rt *Raytracer) renderRow(row int, pixels []core.Color) error {
	for col := range pixels {
		ray, err := rt.camera.PixelRay(col, row)
		if err != nil {
			return fmt.Errorf("pixel (%d,%d): %w", col, row, err)
		}
		color, err := rt.scene.Resolve(ray)
		if err != nil {
			return fmt.Errorf("pixel (%d,%d): %w", col, row, err)
		}
		pixels[col] = color
	}
	return nil
}

func (rt *Raytracer) reportProgress(row, completed, total int) {
	if rt.config.OnRow != nil {
		rt.config.OnRow(row, completed, total)
	}
}
