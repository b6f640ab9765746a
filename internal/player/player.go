package player

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// StepDistance is how far one UpdatePosition call moves the player. It is
	// applied per call, not per second, so walking speed follows the frame
	// rate.
	StepDistance = 0.1

	MaxPitch = math32.Pi / 2
	FullTurn = 2 * math32.Pi
)

// Player is the first-person camera: a position plus pitch (Pitch, about X)
// and yaw (Yaw, about Y) in radians. Pitch stays within [-MaxPitch, MaxPitch]
// and Yaw within [0, FullTurn); only the methods below change them.
type Player struct {
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
	T        float32 // seconds since start
}

// New returns a player at the given pose. Out-of-range angles are brought
// into range.
func New(position mgl32.Vec3, pitch, yaw, t float32) *Player {
	p := &Player{Position: position, T: t}
	p.RotatePitch(pitch)
	p.Yaw = wrapAngle(yaw)
	return p
}

// RotatePitch adds delta to the pitch and clamps it to ±π/2. A NaN or
// infinite delta is ignored.
func (p *Player) RotatePitch(delta float32) {
	if !finite(delta) {
		return
	}
	p.Pitch = math32.Max(-MaxPitch, math32.Min(MaxPitch, p.Pitch+delta))
}

// RotateYaw adds delta to the yaw and wraps it into [0, 2π). Callers pass
// small per-frame deltas, so one add or subtract of 2π is enough; anything
// larger falls back to a full modulo. A NaN or infinite delta is ignored.
func (p *Player) RotateYaw(delta float32) {
	if !finite(delta) {
		return
	}
	y := p.Yaw + delta
	if y < 0 {
		y += FullTurn
	}
	if y >= FullTurn {
		y -= FullTurn
	}
	if y < 0 || y >= FullTurn {
		y = wrapAngle(y)
	}
	p.Yaw = y
}

// UpdatePosition moves the player one StepDistance in the horizontal plane.
// strafeZ and strafeX are -1, 0 or 1 (W/S and A/D); both zero is a no-op.
// The heading is atan2(strafeZ, strafeX) plus the yaw, so strafeZ = -1 walks
// towards the view direction.
func (p *Player) UpdatePosition(strafeZ, strafeX int) {
	if strafeZ == 0 && strafeX == 0 {
		return
	}
	heading := math32.Atan2(float32(strafeZ), float32(strafeX)) + p.Yaw
	p.Position[0] += math32.Cos(heading) * StepDistance
	p.Position[2] += math32.Sin(heading) * StepDistance
}

// Look turns the camera by a cursor movement in pixels: vertical travel
// pitches, horizontal travel yaws.
func (p *Player) Look(dx, dy, sensitivity float32) {
	p.RotatePitch(dy * sensitivity)
	p.RotateYaw(dx * sensitivity)
}

// Tick advances the elapsed time.
func (p *Player) Tick(dt float32) {
	p.T += dt
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func wrapAngle(a float32) float32 {
	if !finite(a) {
		return 0
	}
	a = math32.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// a tiny negative remainder rounds up to exactly FullTurn in float32
	if a >= FullTurn {
		a = 0
	}
	return a
}
