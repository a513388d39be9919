package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space pose. Y is up; Yaw rotates about Y in radians.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]("transform")
