package game

import "github.com/mlange-42/ark/ecs"

// EntityKind tags what a body is.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindBall
)

// Transform is where an entity is and which way it faces.
type Transform struct {
	Position Vec2
	Heading  Vec2 // unit length
}

// Motion is an entity's velocity and limits.
type Motion struct {
	Velocity Vec2
	MaxSpeed float64
	Mass     float64
}

// Body is an entity's collision footprint.
type Body struct {
	Radius float64
	Kind   EntityKind
}

// World stores every moving thing on the pitch as an ark entity and owns the
// motion system that integrates them.
type World struct {
	ecs ecs.World

	spawner    *ecs.Map3[Transform, Motion, Body]
	transforms *ecs.Map1[Transform]
	motions    *ecs.Map1[Motion]
	bodies     *ecs.Map1[Body]
	moving     *ecs.Filter2[Transform, Motion]
}

// NewWorld creates an empty world.
func NewWorld() *World {
	w := &World{ecs: ecs.NewWorld()}
	w.spawner = ecs.NewMap3[Transform, Motion, Body](&w.ecs)
	w.transforms = ecs.NewMap1[Transform](&w.ecs)
	w.motions = ecs.NewMap1[Motion](&w.ecs)
	w.bodies = ecs.NewMap1[Body](&w.ecs)
	w.moving = ecs.NewFilter2[Transform, Motion](&w.ecs)
	return w
}

// Spawn creates an entity with the given components.
func (w *World) Spawn(t Transform, m Motion, b Body) ecs.Entity {
	return w.spawner.NewEntity(&t, &m, &b)
}

// Transform returns a pointer into the entity's transform storage.
func (w *World) Transform(e ecs.Entity) *Transform {
	return w.transforms.Get(e)
}

// Motion returns a pointer into the entity's motion storage.
func (w *World) Motion(e ecs.Entity) *Motion {
	return w.motions.Get(e)
}

// Body returns a pointer into the entity's body storage.
func (w *World) Body(e ecs.Entity) *Body {
	return w.bodies.Get(e)
}

// Integrate advances every entity with a transform and motion by dt seconds.
func (w *World) Integrate(dt float64) {
	query := w.moving.Query()
	for query.Next() {
		t, m := query.Get()
		t.Position = t.Position.Add(m.Velocity.Scale(dt))
	}
}

// Count returns the number of live entities.
func (w *World) Count() int {
	n := 0
	query := w.moving.Query()
	for query.Next() {
		n++
	}
	return n
}
