package network

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeerTableAssignsSequentialIDsAfterHost(t *testing.T) {
	peers := newPeerTable[string]()

	id, n := peers.add("a")
	assert.Equal(t, netconfig.PeerID(2), id)
	assert.Equal(t, 1, n)

	id, n = peers.add("b")
	assert.Equal(t, netconfig.PeerID(3), id)
	assert.Equal(t, 2, n)

	again, n := peers.add("a")
	assert.Equal(t, netconfig.PeerID(2), again, "re-adding keeps the id")
	assert.Equal(t, 2, n)

	removed, ok := peers.remove("a")
	require.True(t, ok)
	assert.Equal(t, netconfig.PeerID(2), removed)
	_, ok = peers.conn(2)
	assert.False(t, ok)

	id, _ = peers.add("c")
	assert.Equal(t, netconfig.PeerID(4), id, "ids are never reused")
	assert.Len(t, peers.all(), 2)
}

func TestPeerTableConcurrentAdds(t *testing.T) {
	peers := newPeerTable[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			peers.add(i)
		}(i)
	}
	wg.Wait()

	seen := map[netconfig.PeerID]bool{}
	for id := range peers.all() {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, 50)
}

func TestDrainChanIsNonBlocking(t *testing.T) {
	ch := make(chan int, 4)
	assert.Empty(t, drainChan(ch))

	ch <- 1
	ch <- 2
	assert.Equal(t, []int{1, 2}, drainChan(ch))
}

func TestPushGivesUpAfterDone(t *testing.T) {
	ch := make(chan int)
	done := make(chan struct{})
	close(done)
	push(ch, done, 1)
}

func TestClientSendRequiresConnection(t *testing.T) {
	c := NewClient(zerolog.Nop())
	err := c.Broadcast(struct{}{})
	assert.True(t, errors.Is(err, ErrConnection))

	err = c.Send(3, struct{}{})
	assert.ErrorIs(t, err, ErrConnection)
	assert.Equal(t, netconfig.RoleObserver, c.Role())
	assert.Nil(t, c.LatestSnapshot())
}

func TestHostSendToUnknownPeer(t *testing.T) {
	h := NewHost(zerolog.Nop())
	err := h.Send(7, struct{}{})
	assert.ErrorIs(t, err, ErrConnection)
	assert.NoError(t, h.Broadcast(struct{}{}), "no peers, nothing to fail")
	assert.Equal(t, netconfig.HostPeerID, h.LocalPeer())
}

func waitForEvent[T Event](t *testing.T, h *Host) T {
	t.Helper()
	var got T
	require.Eventually(t, func() bool {
		for _, ev := range h.DrainEvents() {
			if e, ok := ev.(T); ok {
				got = e
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	return got
}

func TestHostCloseStopsListening(t *testing.T) {
	h := NewHost(zerolog.Nop())
	require.NoError(t, h.listen("127.0.0.1:0"))
	url := "ws://" + h.listener.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	joined := waitForEvent[PeerJoined](t, h)
	assert.Equal(t, netconfig.PeerID(2), joined.Peer)
	assert.Equal(t, 1, joined.Peers)

	require.NoError(t, h.Close())

	_, _, err = conn.Read(ctx)
	assert.Error(t, err, "open connections are dropped")

	_, _, err = websocket.Dial(ctx, url, nil)
	assert.Error(t, err, "no longer accepting")
	assert.NoError(t, h.Close(), "closing twice is a no-op")
}

func TestHostListenFailure(t *testing.T) {
	first := NewHost(zerolog.Nop())
	require.NoError(t, first.listen("127.0.0.1:0"))
	defer first.Close()

	second := NewHost(zerolog.Nop())
	err := second.listen(first.listener.Addr().String())
	assert.ErrorIs(t, err, ErrConnection)
}
