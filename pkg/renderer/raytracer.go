package renderer

import (
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Rays per pixel (0 = use the scene's value)
	MaxDepth        int   // Maximum ray bounce depth (0 = integrator default)
	Seed            int64 // Base seed for every random stream
	NumWorkers      int   // Parallel workers (0 = CPU count, 1 = single sequential stream)
	TileSize        int   // Edge length of a parallel work unit in pixels
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 0,
		MaxDepth:        integrator.DefaultMaxDepth,
		Seed:            42,
		NumWorkers:      0,
		TileSize:        32,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() core.Surface
	GetBackground() core.Vec3
	GetSamplesPerPixel() int
}

// Raytracer renders a scene to a linear framebuffer
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	integrator *integrator.RecursiveIntegrator
	progress   *Progress
	logger     core.Logger
}

// NewRaytracer creates a raytracer. Zero fields of config fall back to the
// scene and DefaultSamplingConfig.
func NewRaytracer(scene Scene, config SamplingConfig, logger core.Logger) *Raytracer {
	defaults := DefaultSamplingConfig()
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = max(1, scene.GetSamplesPerPixel())
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	if config.TileSize <= 0 {
		config.TileSize = defaults.TileSize
	}
	if logger == nil {
		logger = discardLogger{}
	}

	width, height := scene.GetCamera().Resolution()
	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewRecursiveIntegrator(config.MaxDepth, scene.GetBackground()),
		progress:   NewProgress(int64(width * height)),
		logger:     logger,
	}
}

// Config returns the effective sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Progress returns the per-pixel progress counter of this raytracer
func (rt *Raytracer) Progress() *Progress {
	return rt.progress
}

// Render traces the whole image. With one worker the image is produced by a
// single random stream in scanline order; otherwise tiles are rendered in
// parallel, each with a stream derived from the seed and the tile ID, so the
// result does not depend on how many workers ran or in which order.
func (rt *Raytracer) Render() (*Image, RenderStats) {
	start := time.Now()
	rt.progress.Reset()
	camera := rt.scene.GetCamera()
	width, height := camera.Resolution()
	img := NewImage(width, height)
	tileRenderer := NewTileRenderer(camera, rt.scene.GetWorld(), rt.integrator, rt.config.SamplesPerPixel, rt.progress)

	var stats RenderStats
	if rt.config.NumWorkers == 1 {
		rt.logger.Printf("Rendering %dx%d, %d spp, sequential\n", width, height, rt.config.SamplesPerPixel)
		stats = tileRenderer.RenderTileBounds(img.bounds(), img, core.NewSeededSampler(rt.config.Seed))
	} else {
		stats = rt.renderParallel(tileRenderer, img)
	}

	stats.SamplesPerPixel = rt.config.SamplesPerPixel
	stats.Duration = time.Since(start)
	if stats.NonFinitePixels > 0 || stats.NegativePixels > 0 {
		rt.logger.Printf("Warning: %d non-finite and %d negative pixels\n", stats.NonFinitePixels, stats.NegativePixels)
	}
	return img, stats
}

// renderParallel dispatches the tile grid to a worker pool and gathers stats
func (rt *Raytracer) renderParallel(tileRenderer *TileRenderer, img *Image) RenderStats {
	tiles := NewTileGrid(img.Width(), img.Height(), rt.config.TileSize, rt.config.Seed)
	pool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d, %d spp, %d tiles on %d workers\n",
		img.Width(), img.Height(), rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}

	var stats RenderStats
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()

	return stats
}
