package factory

import (
	"strconv"

	"github.com/automoto/pitchclash/archetypes"
	"github.com/automoto/pitchclash/components"
	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/physics"
	"github.com/automoto/pitchclash/shared/arena"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netcomponents"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/tags"
	"github.com/yohamta/donburi"
)

// BallKey is the replication key of the ball body.
const BallKey = "ball"

func CreateMatch(w donburi.World) *donburi.Entry {
	match := archetypes.Match.Spawn(w)
	components.Match.SetValue(match, components.MatchData{
		State:  netconfig.MatchStateIdle,
		Winner: netconfig.TeamNone,
	})
	return match
}

func CreateBall(w donburi.World, space *physics.World, origin gamemath.Vec3) *donburi.Entry {
	ball := archetypes.Ball.Spawn(w)

	obj := space.NewBodyObject(origin, cfg.Ball.Radius, tags.ResolvBall)
	obj.Data = ball
	components.Body.SetValue(ball, components.BodyData{
		Key:        BallKey,
		Position:   origin,
		Mass:       cfg.Ball.Mass,
		Radius:     cfg.Ball.Radius,
		LinearDamp: cfg.Ball.LinearDamp,
		Object:     obj,
	})
	netcomponents.NetBody.SetValue(ball, netcomponents.NetBodyData{Key: BallKey, Position: origin})
	return ball
}

// CreateGoals spawns one trigger entity per goal volume of the layout.
func CreateGoals(w donburi.World, space *physics.World, layout *arena.Layout) []*donburi.Entry {
	goals := make([]*donburi.Entry, 0, len(layout.Goals))
	for _, g := range layout.Goals {
		goal := archetypes.Goal.Spawn(w)
		obj := space.AddGoal(g)
		obj.Data = goal
		components.Trigger.SetValue(goal, components.TriggerData{
			Kind:   components.TriggerGoal,
			Team:   g.Team,
			Object: obj,
		})
		goals = append(goals, goal)
	}
	return goals
}

// PlayerKey returns the replication key of a player body.
func PlayerKey(id netconfig.PeerID) string {
	return "player/" + strconv.Itoa(int(id))
}

// CreatePlayer spawns a frozen player at pos. The host owns every player
// until PlayerSetIdentity hands it to its peer.
func CreatePlayer(w donburi.World, space *physics.World, id netconfig.PeerID, isHost bool, pos gamemath.Vec3) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	obj := space.NewBodyObject(pos, cfg.Player.Radius, tags.ResolvPlayer)
	obj.Data = player
	components.Body.SetValue(player, components.BodyData{
		Key:        PlayerKey(id),
		Position:   pos,
		Mass:       cfg.Player.Mass,
		Radius:     cfg.Player.Radius,
		LinearDamp: cfg.Player.LinearDamp,
		Frozen:     true,
		Object:     obj,
	})
	netcomponents.NetBody.SetValue(player, netcomponents.NetBodyData{Key: PlayerKey(id), Position: pos})
	components.Player.SetValue(player, components.PlayerData{
		ID:        id,
		Authority: netconfig.HostPeerID,
		IsHost:    isHost,
	})

	handle := space.AddInteract(pos, cfg.Player.Radius)
	handle.Data = player
	components.Trigger.SetValue(player, components.TriggerData{
		Kind:   components.TriggerInteract,
		Owner:  netconfig.HostPeerID,
		Object: handle,
	})
	return player
}
