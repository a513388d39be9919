package component

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
)

// Obstacle is static level geometry: an XZ box rising from y=0 to Top.
// Walls have an infinite top; platforms can be stood on.
type Obstacle struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
	Top        float64
	Color      color.Color

	Shape *cp.Shape
}

func (o Obstacle) IsWall() bool {
	return math.IsInf(o.Top, 1)
}

func (o Obstacle) Contains(x, z float64) bool {
	return x >= o.MinX && x <= o.MaxX && z >= o.MinZ && z <= o.MaxZ
}

var ObstacleComponent = NewComponent[Obstacle]("obstacle")
