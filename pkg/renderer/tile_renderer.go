package renderer

import (
	"image"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
)

// TileRenderer renders rectangular regions of the image with an integrator.
// It holds no per-render mutable state apart from the shared progress
// counter, so one instance can serve every worker.
type TileRenderer struct {
	camera          *Camera
	world           core.Surface
	integrator      integrator.Integrator
	samplesPerPixel int
	progress        *Progress
}

// NewTileRenderer creates a tile renderer. progress may be nil.
func NewTileRenderer(camera *Camera, world core.Surface, integratorInst integrator.Integrator, samplesPerPixel int, progress *Progress) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		world:           world,
		integrator:      integratorInst,
		samplesPerPixel: samplesPerPixel,
		progress:        progress,
	}
}

// RenderTileBounds renders every pixel inside bounds into img, rows top to
// bottom and pixels left to right, drawing all randomness from sampler
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *Image, sampler core.Sampler) RenderStats {
	stats := RenderStats{Tiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color := tr.samplePixel(x, y, sampler)
			img.Set(x, y, color)

			stats.TotalPixels++
			stats.TotalSamples += tr.samplesPerPixel
			if !color.IsFinite() {
				stats.NonFinitePixels++
			} else if color.IsNegative() {
				stats.NegativePixels++
			}

			if tr.progress != nil {
				tr.progress.Step()
			}
		}
	}
	return stats
}

// samplePixel averages jittered camera samples through pixel (x, y)
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for s := 0; s < tr.samplesPerPixel; s++ {
		jitter := sampler.Get2D()
		ray := tr.camera.GenerateRay(core.NewVec2(float64(x)+jitter.X, float64(y)+jitter.Y))
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}
	return ps.GetColor()
}
