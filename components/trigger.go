package components

import (
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type TriggerKind int

const (
	TriggerGoal     TriggerKind = iota // Scores or respawns on entry
	TriggerInteract                    // Ray-pickable handle around a player
)

type TriggerData struct {
	Kind   TriggerKind
	Team   netconfig.Team   // Goal side (TriggerGoal)
	Owner  netconfig.PeerID // Owning player (TriggerInteract)
	Object *resolv.Object
}

var Trigger = donburi.NewComponentType[TriggerData]()
