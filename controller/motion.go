package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraBasis returns the flattened forward and right vectors for a camera
// yaw (radians). Yaw 0 looks down -Z.
func CameraBasis(yaw float64) (forward, right mgl64.Vec3) {
	sin, cos := math.Sincos(yaw)
	forward = mgl64.Vec3{-sin, 0, -cos}
	right = mgl64.Vec3{cos, 0, -sin}
	return forward, right
}

// ToWorld turns a camera-relative input vector into a world XZ direction.
func ToWorld(move mgl64.Vec2, yaw float64) mgl64.Vec3 {
	forward, right := CameraBasis(yaw)
	return right.Mul(move.X()).Add(forward.Mul(move.Y()))
}

// ToCamera is the inverse of ToWorld for directions on the XZ plane.
func ToCamera(dir mgl64.Vec3, yaw float64) mgl64.Vec2 {
	forward, right := CameraBasis(yaw)
	return mgl64.Vec2{dir.Dot(right), dir.Dot(forward)}
}

// TargetSpeed is the horizontal speed a state drives toward.
func (c Config) TargetSpeed(s State, in Sample) float64 {
	switch s {
	case StateWalking:
		return c.WalkSpeed
	case StateRunning:
		return c.RunSpeed
	case StateJumping, StateAirborne:
		if in.Magnitude() <= c.WalkThreshold {
			return 0
		}
		if in.Sprint && !in.Walk {
			return c.RunSpeed
		}
		return c.WalkSpeed
	}
	return 0
}

// ResolveVelocity applies one tick of motion for the given state: gravity in
// the air, camera-relative horizontal steering everywhere else. The result is
// handed to the collision sweep.
func ResolveVelocity(cfg Config, s State, in Sample, yaw float64, vel mgl64.Vec3, dt float64) mgl64.Vec3 {
	dir := ToWorld(in.Move, yaw)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	target := dir.Mul(cfg.TargetSpeed(s, in))

	rate := cfg.Acceleration
	if target.Len() < 1e-9 {
		rate = cfg.Deceleration
	}
	if s.InAir() {
		rate *= cfg.AirControl
	}

	horiz := mgl64.Vec2{vel.X(), vel.Z()}
	horiz = moveToward(horiz, mgl64.Vec2{target.X(), target.Z()}, rate*dt)

	vy := vel.Y()
	if s.InAir() {
		vy -= cfg.Gravity * dt
		if vy < -cfg.TerminalVelocity {
			vy = -cfg.TerminalVelocity
		}
	} else if vy < 0 {
		vy = 0
	}

	return mgl64.Vec3{horiz.X(), vy, horiz.Y()}
}

func moveToward(from, to mgl64.Vec2, maxDelta float64) mgl64.Vec2 {
	d := to.Sub(from)
	l := d.Len()
	if l <= maxDelta || l < 1e-12 {
		return to
	}
	return from.Add(d.Mul(maxDelta / l))
}
