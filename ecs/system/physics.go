package system

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeObstacle

	characterMass   = 1.0
	boundsThickness = 0.5
	floorEpsilon    = 1e-6
)

// PhysicsSystem sweeps characters across the XZ plane with chipmunk and
// integrates height itself. Chipmunk's Y axis carries world Z.
type PhysicsSystem struct {
	space *cp.Space

	bodies     map[ecs.Entity]*cp.Body
	heights    map[*cp.Body]characterHeight
	obstacles  map[*cp.Shape]float64 // shape -> top, +Inf for walls
	owners     map[*cp.Shape]ecs.Entity
	bounds     ecs.Entity
	boundsRect component.LevelBounds

	handlersReady bool
}

type characterHeight struct {
	y    float64
	step float64
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:     space,
		bodies:    make(map[ecs.Entity]*cp.Body),
		heights:   make(map[*cp.Body]characterHeight),
		obstacles: make(map[*cp.Shape]float64),
		owners:    make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Update syncs the world into the space, steps it once and writes poses,
// velocities and floor contact back.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanup(w)
	ps.syncBounds(w)
	ps.syncObstacles(w)
	ps.syncCharacters(w)

	ps.space.Step(common.FixedDt)

	ecs.ForEach2(w, component.CharacterBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.CharacterBody, transform *component.Transform) {
		if disabled(w, e) || body.Body == nil {
			return
		}
		ps.resolve(body, transform, common.FixedDt)
	})
}

// Walkable reports whether p is inside the level bounds and not inside a
// wall. Platform tops count as walkable.
func (ps *PhysicsSystem) Walkable(p mgl64.Vec3) bool {
	if ps == nil || ps.space == nil {
		return false
	}
	if ps.bounds != 0 && !ps.boundsRect.Contains(p.X(), p.Z()) {
		return false
	}
	info := ps.space.PointQueryNearest(cp.Vector{X: p.X(), Y: p.Z()}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return true
	}
	top, ok := ps.obstacles[info.Shape]
	if !ok {
		return true
	}
	return !math.IsInf(top, 1)
}

// FloorAt returns the highest surface under (x, z) that a character at
// height y can stand on, stepping up at most step.
func (ps *PhysicsSystem) FloorAt(x, z, y, step float64) float64 {
	floor := 0.0
	p := cp.Vector{X: x, Y: z}
	for shape, top := range ps.obstacles {
		if math.IsInf(top, 1) || top <= floor || top > y+step+floorEpsilon {
			continue
		}
		if info := shape.PointQuery(p); info.Distance <= 0 {
			floor = top
		}
	}
	return floor
}

func (ps *PhysicsSystem) resolve(body *component.CharacterBody, transform *component.Transform, dt float64) {
	pos := body.Body.Position()
	vel := body.Body.Velocity()

	y := transform.Position.Y() + body.Velocity.Y()*dt
	vy := body.Velocity.Y()

	floor := ps.FloorAt(pos.X, pos.Y, transform.Position.Y(), body.StepHeight)
	body.OnFloor = false
	if y <= floor+floorEpsilon && vy <= 0 {
		y = floor
		vy = 0
		body.OnFloor = true
	}
	body.FloorHeight = floor

	transform.Position = mgl64.Vec3{pos.X, y, pos.Y}
	body.Velocity = mgl64.Vec3{vel.X, vy, vel.Y}
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeObstacle)
	handler.UserData = ps
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		character, obstacle := shapeA, shapeB
		if _, isObstacle := sys.obstacles[shapeA]; isObstacle {
			character, obstacle = shapeB, shapeA
		}
		top, ok := sys.obstacles[obstacle]
		if !ok || math.IsInf(top, 1) {
			return true
		}
		h, ok := sys.heights[character.Body()]
		if !ok {
			return true
		}
		// above the lip: walk over it instead of into it
		return h.y < top-h.step
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncCharacters(w *ecs.World) {
	ecs.ForEach2(w, component.CharacterBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.CharacterBody, transform *component.Transform) {
		if disabled(w, e) {
			return
		}
		if body.Body == nil {
			if body.Radius <= 0 {
				disable(w, e, "physics: character body has no radius")
				return
			}
			ps.createCharacter(e, body, transform)
		}
		body.Body.SetVelocityVector(cp.Vector{X: body.Velocity.X(), Y: body.Velocity.Z()})
		body.Body.SetAngularVelocity(0)
		ps.heights[body.Body] = characterHeight{y: transform.Position.Y(), step: body.StepHeight}
	})
}

func (ps *PhysicsSystem) createCharacter(e ecs.Entity, body *component.CharacterBody, transform *component.Transform) {
	cpBody := cp.NewBody(characterMass, cp.INFINITY)
	cpBody.SetPosition(cp.Vector{X: transform.Position.X(), Y: transform.Position.Z()})
	ps.space.AddBody(cpBody)

	shape := cp.NewCircle(cpBody, body.Radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeCharacter)
	ps.space.AddShape(shape)

	body.Body = cpBody
	body.Shape = shape
	ps.bodies[e] = cpBody
	ps.owners[shape] = e
}

func (ps *PhysicsSystem) syncObstacles(w *ecs.World) {
	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(e ecs.Entity, o *component.Obstacle) {
		if o.Shape != nil {
			return
		}
		if o.MaxX <= o.MinX || o.MaxZ <= o.MinZ {
			log.Printf("physics: obstacle %s has an empty footprint, skipping", e)
			return
		}
		bb := cp.BB{L: o.MinX, B: o.MinZ, R: o.MaxX, T: o.MaxZ}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeObstacle)
		ps.space.AddShape(shape)
		o.Shape = shape
		ps.obstacles[shape] = o.Top
		ps.owners[shape] = e
	})
}

func (ps *PhysicsSystem) syncBounds(w *ecs.World) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok || e == ps.bounds {
		return
	}
	bounds, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	if !ok || bounds.MaxX <= bounds.MinX || bounds.MaxZ <= bounds.MinZ {
		return
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: bounds.MinX, Y: bounds.MinZ}, b: cp.Vector{X: bounds.MaxX, Y: bounds.MinZ}},
		{a: cp.Vector{X: bounds.MinX, Y: bounds.MaxZ}, b: cp.Vector{X: bounds.MaxX, Y: bounds.MaxZ}},
		{a: cp.Vector{X: bounds.MinX, Y: bounds.MinZ}, b: cp.Vector{X: bounds.MinX, Y: bounds.MaxZ}},
		{a: cp.Vector{X: bounds.MaxX, Y: bounds.MinZ}, b: cp.Vector{X: bounds.MaxX, Y: bounds.MaxZ}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, boundsThickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeObstacle)
		ps.space.AddShape(shape)
		ps.obstacles[shape] = math.Inf(1)
		ps.owners[shape] = e
	}
	ps.bounds = e
	ps.boundsRect = *bounds
}

// cleanup removes shapes and bodies whose entities are gone.
func (ps *PhysicsSystem) cleanup(w *ecs.World) {
	for shape, owner := range ps.owners {
		if ecs.IsAlive(w, owner) {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.owners, shape)
		delete(ps.obstacles, shape)
		if owner == ps.bounds {
			ps.bounds = 0
		}
	}
	for e, body := range ps.bodies {
		if ecs.IsAlive(w, e) {
			continue
		}
		ps.space.RemoveBody(body)
		delete(ps.bodies, e)
		delete(ps.heights, body)
	}
}
