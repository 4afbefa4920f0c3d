package session

import (
	"github.com/automoto/pitchclash/components"
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/automoto/pitchclash/shared/netcomponents"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Replicator keeps physics bodies in agreement across peers.
type Replicator interface {
	Replicate(s *Session)
}

// hostReplicator pushes every body to observers through esync world sync.
type hostReplicator struct {
	synced map[donburi.Entity]bool
	log    zerolog.Logger
}

func newHostReplicator(w donburi.World, log zerolog.Logger) *hostReplicator {
	srvsync.UseEsync(w)
	return &hostReplicator{
		synced: make(map[donburi.Entity]bool),
		log:    log,
	}
}

func (r *hostReplicator) Replicate(s *Session) {
	w := s.ctx.World

	var pending []donburi.Entity
	netcomponents.NetBody.Each(w, func(entry *donburi.Entry) {
		if !r.synced[entry.Entity()] {
			pending = append(pending, entry.Entity())
		}
	})
	// Marking an entity adds its network id, so it happens outside Each.
	for _, entity := range pending {
		entity := entity
		if err := srvsync.NetworkSync(w, &entity, netcomponents.NetBody); err != nil {
			r.log.Error().Err(err).Msg("failed to set up body sync")
			continue
		}
		r.synced[entity] = true
	}

	copyBodies(w)
	if err := srvsync.DoSync(); err != nil {
		r.log.Warn().Err(err).Msg("sync error")
	}
}

// copyBodies mirrors simulated bodies into their replicated components.
func copyBodies(w donburi.World) {
	netcomponents.NetBody.Each(w, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Body) {
			return
		}
		body := components.Body.Get(entry)
		net := netcomponents.NetBody.Get(entry)
		net.Position = body.Position
		net.Linear = body.Linear
		net.Angular = body.Angular
	})
}

// observerReplicator applies host snapshots and reports the local body.
type observerReplicator struct {
	log zerolog.Logger
}

func (r *observerReplicator) Replicate(s *Session) {
	if snap := s.transport.LatestSnapshot(); snap != nil {
		applyBodies(s, decodeSnapshot(*snap, r.log))
	}
	r.sendLocalBody(s)
}

func decodeSnapshot(snap esync.WorldSnapshot, log zerolog.Logger) []netcomponents.NetBodyData {
	var bodies []netcomponents.NetBodyData
	for _, ent := range snap {
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				log.Debug().Err(err).Msg("skipping undecodable component")
				continue
			}
			if body, ok := instance.(netcomponents.NetBodyData); ok {
				bodies = append(bodies, body)
			}
		}
	}
	return bodies
}

// applyBodies overwrites local bodies by replication key. The body driven by
// this peer's own input is left alone.
func applyBodies(s *Session, bodies []netcomponents.NetBodyData) {
	if len(bodies) == 0 {
		return
	}
	byKey := make(map[string]*components.BodyData)
	components.Body.Each(s.ctx.World, func(entry *donburi.Entry) {
		if entry.HasComponent(components.Player) {
			if a, ok := s.ctrl.Agent(components.Player.Get(entry).ID); ok && a.IsLocal() {
				return
			}
		}
		body := components.Body.Get(entry)
		byKey[body.Key] = body
	})

	for _, nb := range bodies {
		body, ok := byKey[nb.Key]
		if !ok {
			continue
		}
		body.Position = nb.Position
		body.Linear = nb.Linear
		body.Angular = nb.Angular
		body.SyncObject()
	}
}

func (r *observerReplicator) sendLocalBody(s *Session) {
	a, ok := s.ctrl.LocalAgent()
	if !ok {
		return
	}
	body := a.Body()
	if body.Frozen {
		return
	}
	msg := messages.BodyState{
		PlayerID:   a.ID(),
		Position:   body.Position,
		Linear:     body.Linear,
		Angular:    body.Angular,
		Generation: a.Generation(),
	}
	if err := s.transport.Send(netconfig.HostPeerID, msg); err != nil {
		r.log.Debug().Err(err).Msg("failed to send body state")
	}
}
