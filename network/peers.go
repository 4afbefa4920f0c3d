package network

import (
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/sasha-s/go-deadlock"
)

// peerTable assigns sequential peer ids to connections. The host holds
// HostPeerID, so remote peers start right after it.
type peerTable[K comparable] struct {
	mu    deadlock.RWMutex
	next  netconfig.PeerID
	ids   map[K]netconfig.PeerID
	conns map[netconfig.PeerID]K
}

func newPeerTable[K comparable]() *peerTable[K] {
	return &peerTable[K]{
		next:  netconfig.HostPeerID + 1,
		ids:   make(map[K]netconfig.PeerID),
		conns: make(map[netconfig.PeerID]K),
	}
}

// add registers conn and returns its id and the number of connected peers.
func (t *peerTable[K]) add(conn K) (netconfig.PeerID, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[conn]; ok {
		return id, len(t.ids)
	}
	id := t.next
	t.next++
	t.ids[conn] = id
	t.conns[id] = conn
	return id, len(t.ids)
}

func (t *peerTable[K]) remove(conn K) (netconfig.PeerID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.ids[conn]
	if !ok {
		return 0, false
	}
	delete(t.ids, conn)
	delete(t.conns, id)
	return id, true
}

func (t *peerTable[K]) id(conn K) (netconfig.PeerID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[conn]
	return id, ok
}

func (t *peerTable[K]) conn(id netconfig.PeerID) (K, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.conns[id]
	return c, ok
}

// all returns a copy of the connected peers.
func (t *peerTable[K]) all() map[netconfig.PeerID]K {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[netconfig.PeerID]K, len(t.conns))
	for id, c := range t.conns {
		out[id] = c
	}
	return out
}
