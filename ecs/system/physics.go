package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeZone
)

// PhysicsSystem owns the Chipmunk2D space. Bodies and interaction-zone sensors
// are created lazily for entities that carry the matching components, and
// sensor overlaps are reported as zone enter/exit events.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities    map[ecs.Entity]*bodyInfo
	zones       map[ecs.Entity]*cp.Shape
	actorShapes map[*cp.Shape]ecs.Entity
	zoneShapes  map[*cp.Shape]ecs.Entity

	// world is only set while the space steps, for the collision callbacks.
	world *ecs.World
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:       newSpace(),
		entities:    make(map[ecs.Entity]*bodyInfo),
		zones:       make(map[ecs.Entity]*cp.Shape),
		actorShapes: make(map[*cp.Shape]ecs.Entity),
		zoneShapes:  make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanup(w)
	ps.syncBodies(w)
	ps.syncZones(w)

	ps.world = w
	ps.space.Step(1.0 / common.TPS)
	ps.world = nil

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeActor, collisionTypeZone)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.emitZoneEvent(arb, ecs.EventZoneEnter)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.emitZoneEvent(arb, ecs.EventZoneExit)
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) emitZoneEvent(arb *cp.Arbiter, eventType string) {
	if ps.world == nil {
		return
	}
	a, b := arb.Shapes()
	actor, okActor := ps.actorShapes[a]
	zone, okZone := ps.zoneShapes[b]
	if !okActor || !okZone {
		actor, okActor = ps.actorShapes[b]
		zone, okZone = ps.zoneShapes[a]
	}
	if !okActor || !okZone {
		return
	}
	ps.world.Events().Push(ecs.Event{Type: eventType, Data: ecs.ZoneEvent{Zone: zone, Actor: actor}})
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info, ok := ps.entities[e]; ok {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
			}
			return
		}

		isActor := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		info := ps.createBodyInfo(transform, bodyComp, isActor)
		ps.entities[e] = info
		if isActor {
			for _, shape := range info.shapes {
				ps.actorShapes[shape] = e
			}
		}
		bodyComp.Body = info.body
		if len(info.shapes) > 0 {
			bodyComp.Shape = info.shapes[0]
		}
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isActor bool) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 16, 16
	}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Top-down actors never rotate.
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeSolid)
	if isActor {
		shape.SetCollisionType(collisionTypeActor)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncZones(w *ecs.World) {
	ecs.ForEach2(w, component.InteractionZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, zone *component.InteractionZone, transform *component.Transform) {
		if _, ok := ps.zones[e]; ok || zone.Radius <= 0 {
			return
		}
		shape := cp.NewCircle(ps.space.StaticBody, zone.Radius, cp.Vector{X: transform.X, Y: transform.Y})
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeZone)
		ps.space.AddShape(shape)
		ps.zones[e] = shape
		ps.zoneShapes[shape] = e
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanup(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.actorShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}

	for e, shape := range ps.zones {
		if w.IsAlive(e) && ecs.Has(w, e, component.InteractionZoneComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.zoneShapes, shape)
		delete(ps.zones, e)
	}
}
