// Package physics integrates pitch bodies and reports trigger entries. It
// is a minimal stand-in for the engine's rigid-body simulation: bodies move
// on the XZ plane, bounce off the pitch bounds and are checked against goal
// volumes in a resolv space.
package physics

import (
	"github.com/automoto/pitchclash/components"
	"github.com/automoto/pitchclash/shared/arena"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

const (
	cellSize    = 16
	restEpsilon = 0.01
)

// TriggerEvent is emitted when a body enters a goal volume.
type TriggerEvent struct {
	Goal     netconfig.Team
	Ball     bool
	PlayerID netconfig.PeerID // Set when Ball is false
}

type overlapKey struct {
	body *resolv.Object
	goal *resolv.Object
}

// World owns the collision space of one pitch.
type World struct {
	world  donburi.World
	space  *resolv.Space
	width  float64
	depth  float64
	goals  map[*resolv.Object]netconfig.Team
	inside map[overlapKey]bool
}

// NewWorld builds an empty resolv.Space sized to the pitch.
func NewWorld(w donburi.World, layout *arena.Layout) *World {
	return &World{
		world:  w,
		space:  resolv.NewSpace(int(layout.Width), int(layout.Depth), cellSize, cellSize),
		width:  layout.Width,
		depth:  layout.Depth,
		goals:  make(map[*resolv.Object]netconfig.Team),
		inside: make(map[overlapKey]bool),
	}
}

// NewBodyObject creates the resolv footprint of a body and adds it to the space.
func (w *World) NewBodyObject(pos gamemath.Vec3, radius float64, tag string) *resolv.Object {
	obj := resolv.NewObject(pos.X-radius, pos.Z-radius, radius*2, radius*2, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, radius*2, radius*2))
	w.space.Add(obj)
	return obj
}

// AddGoal adds a goal trigger volume.
func (w *World) AddGoal(g arena.GoalVolume) *resolv.Object {
	obj := resolv.NewObject(g.X, g.Z, g.W, g.D, tags.ResolvGoal)
	obj.SetShape(resolv.NewRectangle(0, 0, g.W, g.D))
	w.space.Add(obj)
	w.goals[obj] = g.Team
	return obj
}

// AddInteract adds a pickable interact handle. Its owner is read from the
// Trigger component of the entity stored in the object's Data.
func (w *World) AddInteract(pos gamemath.Vec3, radius float64) *resolv.Object {
	return w.NewBodyObject(pos, radius, tags.ResolvInteract)
}

// Step advances every simulated body by dt seconds and calls onEnter for
// each body that entered a goal volume during the step.
func (w *World) Step(dt float64, onEnter func(TriggerEvent)) {
	components.Body.Each(w.world, func(entry *donburi.Entry) {
		body := components.Body.Get(entry)
		switch {
		case body.Sleeping:
			body.Sleeping = false
		case body.Simulated():
			w.integrate(body, dt)
		}
		body.SyncObject()
		if entry.HasComponent(components.Trigger) {
			interact := components.Trigger.Get(entry)
			moveObject(interact.Object, body.Position, body.Radius)
		}
	})

	components.Body.Each(w.world, func(entry *donburi.Entry) {
		body := components.Body.Get(entry)
		if body.Object == nil {
			return
		}
		for _, ev := range w.detectEntries(entry, body) {
			if onEnter != nil {
				onEnter(ev)
			}
		}
	})
}

func (w *World) integrate(body *components.BodyData, dt float64) {
	body.Linear = gamemath.ApplyDamping(body.Linear, body.LinearDamp, dt)
	body.Linear = gamemath.SnapZero(body.Linear, restEpsilon)
	body.Position = gamemath.Integrate(body.Position, body.Linear, dt)

	// Bounce off the pitch bounds.
	if body.Position.X < body.Radius {
		body.Position.X = body.Radius
		body.Linear.X = -body.Linear.X
	} else if body.Position.X > w.width-body.Radius {
		body.Position.X = w.width - body.Radius
		body.Linear.X = -body.Linear.X
	}
	if body.Position.Z < body.Radius {
		body.Position.Z = body.Radius
		body.Linear.Z = -body.Linear.Z
	} else if body.Position.Z > w.depth-body.Radius {
		body.Position.Z = w.depth - body.Radius
		body.Linear.Z = -body.Linear.Z
	}
}

// detectEntries returns the goal entries of one body, edge-triggered: a body
// resting inside a goal only reports once until it leaves.
func (w *World) detectEntries(entry *donburi.Entry, body *components.BodyData) []TriggerEvent {
	obj := body.Object
	overlapping := map[*resolv.Object]bool{}
	if check := obj.Check(0, 0, tags.ResolvGoal); check != nil {
		for _, goal := range check.ObjectsByTags(tags.ResolvGoal) {
			if gamemath.OverlapsRect(obj.X, obj.Y, obj.W, obj.H, goal.X, goal.Y, goal.W, goal.H) {
				overlapping[goal] = true
			}
		}
	}

	var events []TriggerEvent
	for goal, team := range w.goals {
		key := overlapKey{body: obj, goal: goal}
		was := w.inside[key]
		now := overlapping[goal]
		if now && !was {
			events = append(events, eventFor(entry, team))
		}
		if now {
			w.inside[key] = true
		} else {
			delete(w.inside, key)
		}
	}
	return events
}

func eventFor(entry *donburi.Entry, team netconfig.Team) TriggerEvent {
	ev := TriggerEvent{Goal: team}
	if entry.HasComponent(tags.Ball) {
		ev.Ball = true
		return ev
	}
	if entry.HasComponent(components.Player) {
		ev.PlayerID = components.Player.Get(entry).ID
	}
	return ev
}

// Forget clears the remembered overlaps of a body, so a teleported body
// inside a goal is reported again.
func (w *World) Forget(obj *resolv.Object) {
	for key := range w.inside {
		if key.body == obj {
			delete(w.inside, key)
		}
	}
}

// PickPoint returns the first object tagged tag under the pitch point (x, z).
func (w *World) PickPoint(x, z float64, tag string) (*resolv.Object, bool) {
	cursor := resolv.NewObject(x, z, 1, 1)
	w.space.Add(cursor)
	defer w.space.Remove(cursor)

	check := cursor.Check(0, 0, tag)
	if check == nil {
		return nil, false
	}
	for _, obj := range check.ObjectsByTags(tag) {
		if gamemath.OverlapsRect(x, z, 1, 1, obj.X, obj.Y, obj.W, obj.H) {
			return obj, true
		}
	}
	return nil, false
}

// Owner returns the peer owning an interact object.
func (w *World) Owner(obj *resolv.Object) (netconfig.PeerID, bool) {
	entry, ok := obj.Data.(*donburi.Entry)
	if !ok || !entry.Valid() || !entry.HasComponent(components.Trigger) {
		return 0, false
	}
	return components.Trigger.Get(entry).Owner, true
}

func moveObject(obj *resolv.Object, pos gamemath.Vec3, radius float64) {
	if obj == nil {
		return
	}
	obj.X = pos.X - radius
	obj.Y = pos.Z - radius
	obj.Update()
}
