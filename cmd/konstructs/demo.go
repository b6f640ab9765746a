package main

import (
	"konstructs/internal/chunk"
	"konstructs/internal/geometry"
	"konstructs/internal/graphics"
	"konstructs/internal/graphics/renderables/chunks"
	"konstructs/internal/graphics/renderables/cube"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Stand-in for the mesher: one platform mesh drawn at two offsets, sharing
// its buffers.
var (
	nearChunk = mgl32.Vec3{3, -2, -15}
	farChunk  = mgl32.Vec3{0, -2, -100}
)

func seedChunks(cr *chunks.Renderer, registry *chunk.Registry) error {
	mesh := geometry.Platform(16, 4, 0, graphics.AtlasTiles)
	near, err := cr.NewChunk(nearChunk, mesh.Positions, mesh.Normals, mesh.UVs)
	if err != nil {
		return err
	}
	registry.Put(coordOf(nearChunk), near)
	registry.Put(coordOf(farChunk), near.WithOffset(farChunk))
	return nil
}

func coordOf(offset mgl32.Vec3) chunk.Coord {
	const size = 16
	return chunk.Coord{
		int(math32.Floor(offset[0] / size)),
		int(math32.Floor(offset[1] / size)),
		int(math32.Floor(offset[2] / size)),
	}
}

// three grey swatches in the bottom-left corner
func seedCubes(c *cube.Cube) error {
	for i, intensity := range []float32{0.25, 0.5, 0.75} {
		x := float32(16 + i*48)
		box := geometry.Box(mgl32.Vec3{x, 16, 0.5}, mgl32.Vec3{x + 40, 56, 0.9})
		if err := c.Add(box, intensity); err != nil {
			return err
		}
	}
	return nil
}
