// Package geometry builds small fixed meshes for demos and tests: unit
// blocks and boxes in the flat position/normal/uv layout the chunk renderer
// consumes. It does not do face culling or merging.
package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VerticesPerBlock is six faces of two triangles.
const VerticesPerBlock = 36

type face struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3 // counter-clockwise seen from outside
}

var faces = [6]face{
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
}

var (
	cornerUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	// two triangles per quad
	quadOrder = [6]int{0, 1, 2, 0, 2, 3}
)

// Mesh is vertex data split into the three attribute streams.
type Mesh struct {
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	UVs       []float32 // 2 per vertex
}

// Len returns the vertex count.
func (m *Mesh) Len() int { return len(m.Positions) / 3 }

// AddBlock appends a unit block with its minimum corner at (x, y, z),
// textured with atlas tile number tile of an atlas tiles×tiles wide.
func (m *Mesh) AddBlock(x, y, z int, tile, tiles int) {
	origin := mgl32.Vec3{float32(x), float32(y), float32(z)}
	tu := float32(tile % tiles)
	tv := float32(tile / tiles)
	scale := 1 / float32(tiles)

	for _, f := range faces {
		for _, i := range quadOrder {
			p := origin.Add(f.corners[i])
			uv := cornerUV[i]
			m.Positions = append(m.Positions, p[0], p[1], p[2])
			m.Normals = append(m.Normals, f.normal[0], f.normal[1], f.normal[2])
			m.UVs = append(m.UVs, (tu+uv[0])*scale, (tv+uv[1])*scale)
		}
	}
}

// Platform returns a size×size slab of blocks one block thick, with a
// column of height blocks at its centre.
func Platform(size, height, tile, tiles int) *Mesh {
	m := &Mesh{}
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			m.AddBlock(x, 0, z, tile, tiles)
		}
	}
	c := size / 2
	for y := 1; y <= height; y++ {
		m.AddBlock(c, y, c, tile+1, tiles)
	}
	return m
}

// Box returns positions only for an axis-aligned box, in the same face order
// and winding as a block.
func Box(lo, hi mgl32.Vec3) []float32 {
	size := hi.Sub(lo)
	out := make([]float32, 0, VerticesPerBlock*3)
	for _, f := range faces {
		for _, i := range quadOrder {
			c := f.corners[i]
			out = append(out,
				lo[0]+c[0]*size[0],
				lo[1]+c[1]*size[1],
				lo[2]+c[2]*size[2],
			)
		}
	}
	return out
}
