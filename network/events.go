package network

import (
	"errors"

	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

// ErrConnection is wrapped by every transport-level failure.
var ErrConnection = errors.New("connection failed")

// Event is a connection lifecycle notification, drained by the game loop.
type Event interface {
	event()
}

// PeerJoined is emitted on the host when a client connects. Peers counts the
// connected remote peers including the new one.
type PeerJoined struct {
	Peer  netconfig.PeerID
	Peers int
}

// PeerLeft is emitted when a remote peer goes away.
type PeerLeft struct {
	Peer netconfig.PeerID
	Err  error
}

// Connected is emitted on a client once the host assigned its peer id.
type Connected struct {
	Peer netconfig.PeerID
}

// ConnectionFailed is emitted when the transport cannot start or dial.
type ConnectionFailed struct {
	Err error
}

func (PeerJoined) event()       {}
func (PeerLeft) event()         {}
func (Connected) event()        {}
func (ConnectionFailed) event() {}

// Envelope is a message received from a remote peer.
type Envelope struct {
	From netconfig.PeerID
	Msg  any
}

// Transport is one end of the host-authoritative link.
type Transport interface {
	Role() netconfig.Role
	LocalPeer() netconfig.PeerID
	// Broadcast sends msg to every remote peer.
	Broadcast(msg any) error
	// Send sends msg to one remote peer.
	Send(peer netconfig.PeerID, msg any) error
	DrainEvents() []Event
	DrainInbox() []Envelope
	// LatestSnapshot returns the newest world snapshot, or nil.
	LatestSnapshot() *esync.WorldSnapshot
	Close() error
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}

// push delivers v unless the transport is shutting down.
func push[T any](ch chan T, done <-chan struct{}, v T) {
	select {
	case ch <- v:
	case <-done:
	}
}
