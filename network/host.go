package network

import (
	"fmt"

	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/rs/zerolog"
)

// Host is the authority end of the link. It accepts websocket clients and
// assigns each a peer id.
type Host struct {
	peers    *peerTable[*router.NetworkClient]
	listener *wsListener

	events chan Event
	inbox  chan Envelope
	done   chan struct{}
	log    zerolog.Logger
}

var _ Transport = (*Host)(nil)

func NewHost(log zerolog.Logger) *Host {
	return &Host{
		peers:  newPeerTable[*router.NetworkClient](),
		events: make(chan Event, 16),
		inbox:  make(chan Envelope, cfg.Net.InboxSize),
		done:   make(chan struct{}),
		log:    log.With().Str("component", "host").Logger(),
	}
}

// StartAsHost listens on port and serves clients in the background. A
// failure while serving is reported as ConnectionFailed.
func (h *Host) StartAsHost(port uint) error {
	return h.listen(fmt.Sprintf(":%d", port))
}

func (h *Host) listen(addr string) error {
	h.setupRouterCallbacks()

	l, err := listen(addr, h.log)
	if err != nil {
		router.ResetRouter()
		return fmt.Errorf("%w: listen on %s: %v", ErrConnection, addr, err)
	}
	h.listener = l

	h.log.Info().Stringer("addr", l.Addr()).Msg("hosting game")
	go func() {
		if err := l.serve(); err != nil {
			push[Event](h.events, h.done, ConnectionFailed{
				Err: fmt.Errorf("%w: serve on %s: %v", ErrConnection, addr, err),
			})
		}
	}()
	return nil
}

func (h *Host) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		h.onConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		h.onDisconnect(client, err)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		h.log.Warn().Err(err).Str("client", client.Id()).Msg("client error")
	})

	registerMessages(func(client *router.NetworkClient, msg any) {
		from, ok := h.peers.id(client)
		if !ok {
			h.log.Warn().Str("client", client.Id()).Msgf("message %T from unknown client", msg)
			return
		}
		push(h.inbox, h.done, Envelope{From: from, Msg: msg})
	})
}

func (h *Host) onConnect(client *router.NetworkClient) {
	id, peers := h.peers.add(client)
	h.log.Info().Str("client", client.Id()).Int32("peer", int32(id)).Msg("player connected")

	if err := client.SendMessage(messages.Welcome{PeerID: id}); err != nil {
		h.log.Error().Err(err).Int32("peer", int32(id)).Msg("failed to send welcome")
		return
	}
	push[Event](h.events, h.done, PeerJoined{Peer: id, Peers: peers})
}

func (h *Host) onDisconnect(client *router.NetworkClient, err error) {
	id, ok := h.peers.remove(client)
	if !ok {
		return
	}
	if err != nil {
		h.log.Warn().Err(err).Int32("peer", int32(id)).Msg("player disconnected")
	} else {
		h.log.Info().Int32("peer", int32(id)).Msg("player disconnected")
	}
	push[Event](h.events, h.done, PeerLeft{Peer: id, Err: err})
}

func (h *Host) Role() netconfig.Role {
	return netconfig.RoleAuthority
}

func (h *Host) LocalPeer() netconfig.PeerID {
	return netconfig.HostPeerID
}

func (h *Host) Broadcast(msg any) error {
	var firstErr error
	for id, client := range h.peers.all() {
		if err := client.SendMessage(msg); err != nil {
			h.log.Warn().Err(err).Int32("peer", int32(id)).Msgf("failed to send %T", msg)
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: send to peer %d: %v", ErrConnection, id, err)
			}
		}
	}
	return firstErr
}

func (h *Host) Send(peer netconfig.PeerID, msg any) error {
	client, ok := h.peers.conn(peer)
	if !ok {
		return fmt.Errorf("%w: peer %d is not connected", ErrConnection, peer)
	}
	if err := client.SendMessage(msg); err != nil {
		return fmt.Errorf("%w: send to peer %d: %v", ErrConnection, peer, err)
	}
	return nil
}

func (h *Host) DrainEvents() []Event {
	return drainChan(h.events)
}

func (h *Host) DrainInbox() []Envelope {
	return drainChan(h.inbox)
}

// LatestSnapshot always returns nil; the host produces snapshots.
func (h *Host) LatestSnapshot() *esync.WorldSnapshot {
	return nil
}

func (h *Host) Close() error {
	select {
	case <-h.done:
		return nil
	default:
	}
	close(h.done)

	var err error
	if h.listener != nil {
		err = h.listener.Close()
	}
	router.ResetRouter()
	return err
}
