package archetypes

import (
	"github.com/automoto/pitchclash/components"
	"github.com/automoto/pitchclash/shared/netcomponents"
	"github.com/automoto/pitchclash/tags"
	"github.com/yohamta/donburi"
)

var (
	Match = newArchetype(
		components.Match,
	)
	Ball = newArchetype(
		tags.Ball,
		components.Body,
		netcomponents.NetBody,
	)
	// Trigger holds the player's interact handle.
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Body,
		components.Trigger,
		netcomponents.NetBody,
	)
	Goal = newArchetype(
		tags.Goal,
		components.Trigger,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
