package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Lens holds the perspective parameters for the world pass.
type Lens struct {
	FOV       float32 // vertical, degrees
	NearPlane float32
	FarPlane  float32
}

// DefaultLens is the world pass projection the viewer starts with.
func DefaultLens() Lens {
	return Lens{
		FOV:       65.0,
		NearPlane: 0.125,
		FarPlane:  1024.0,
	}
}

// Projection returns the perspective matrix for a viewport in pixels.
func (l Lens) Projection(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(l.FOV), aspect, l.NearPlane, l.FarPlane)
}

// Projection2D maps pixel coordinates with the origin at the bottom left.
func Projection2D(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), 0, float32(height), -1, 1)
}

// ProjectionCentered maps pixel coordinates with the origin at the screen centre.
func ProjectionCentered(width, height int) mgl32.Mat4 {
	hw, hh := float32(width)/2, float32(height)/2
	return mgl32.Ortho(-hw, hw, -hh, hh, -1, 1)
}
