package renderer

import (
	"image"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Tile is a rectangular region of the image rendered as one unit of work.
// Each tile owns its sampler, so a tile's pixels depend only on the render
// seed and the tile's ID.
type Tile struct {
	ID      int
	Bounds  image.Rectangle
	Sampler core.Sampler
}

// NewTile creates a tile whose sampler is derived from seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(TileSeed(seed, id)),
	}
}

// TileSeed mixes the render seed with a tile ID (splitmix64 finalizer) so that
// neighbouring tiles get unrelated random streams
func TileSeed(seed int64, id int) int64 {
	z := uint64(seed) + uint64(id+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}

// NewTileGrid covers a width x height image with tileSize tiles, row by row.
// Edge tiles are clipped to the image.
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	id := 0
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			bounds := image.Rect(
				tx*tileSize,
				ty*tileSize,
				min((tx+1)*tileSize, width),
				min((ty+1)*tileSize, height),
			)
			tiles = append(tiles, NewTile(id, bounds, seed))
			id++
		}
	}
	return tiles
}
