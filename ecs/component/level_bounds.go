package component

// LevelBounds stores the walkable XZ rectangle of the current level.
type LevelBounds struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

func (b LevelBounds) Contains(x, z float64) bool {
	return x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ
}

var LevelBoundsComponent = NewComponent[LevelBounds]("level_bounds")
