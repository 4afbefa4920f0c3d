package netcomponents

import (
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetBodyData is the replicated state of a physics body. Key names the body
// independently of per-peer entity ids ("ball", "player/2").
type NetBodyData struct {
	Key      string
	Position gamemath.Vec3
	Linear   gamemath.Vec3
	Angular  gamemath.Vec3
}

var NetBody = donburi.NewComponentType[NetBodyData]()
