package components

import (
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// BodyData is a rigid body on the pitch. Object mirrors the body's footprint
// in the resolv space used for trigger detection.
type BodyData struct {
	Key        string // Replication key ("ball", "player/2")
	Position   gamemath.Vec3
	Linear     gamemath.Vec3
	Angular    gamemath.Vec3
	Mass       float64
	Radius     float64
	LinearDamp float64
	Frozen     bool // Excluded from simulation until unfrozen
	Sleeping   bool // Set by Teleport, cleared by the next physics step
	Object     *resolv.Object
}

var Body = donburi.NewComponentType[BodyData]()

// ZeroVelocities clears linear and angular velocity.
func (b *BodyData) ZeroVelocities() {
	b.Linear = gamemath.Vec3{}
	b.Angular = gamemath.Vec3{}
}

// ApplyCentralImpulse changes linear velocity by impulse/mass.
func (b *BodyData) ApplyCentralImpulse(impulse gamemath.Vec3) {
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.Linear = b.Linear.Add(impulse.Scale(1 / mass))
}

// Teleport moves the body with velocities zeroed and puts it to sleep. The
// next physics step wakes it without integrating, so the body rests one
// step at pos.
func (b *BodyData) Teleport(pos gamemath.Vec3) {
	b.ZeroVelocities()
	b.Sleeping = true
	b.Position = pos
	b.SyncObject()
}

// Simulated reports whether the physics step should move the body.
func (b *BodyData) Simulated() bool {
	return !b.Frozen && !b.Sleeping
}

// SyncObject copies the body's pitch-plane position into its resolv object.
func (b *BodyData) SyncObject() {
	if b.Object == nil {
		return
	}
	b.Object.X = b.Position.X - b.Radius
	b.Object.Y = b.Position.Z - b.Radius
	b.Object.Update()
}
