package player

import (
	"github.com/go-gl/mathgl/mgl32"
)

// View returns the world-to-camera matrix Rx(pitch) · Ry(yaw) · T(-position).
//
// Yaw turns the world about the vertical axis first; pitch then tilts the
// turned frame about the camera's own X axis. Keep this order.
func (p *Player) View() mgl32.Mat4 {
	return Compose(p.Pitch, p.Yaw, p.Position)
}

// Compose builds the view transform for a pose.
func Compose(pitch, yaw float32, position mgl32.Vec3) mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(pitch)
	ry := mgl32.HomogRotate3DY(yaw)
	t := mgl32.Translate3D(-position[0], -position[1], -position[2])
	return rx.Mul4(ry).Mul4(t)
}
