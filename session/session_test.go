package session

import (
	"errors"
	"testing"

	"github.com/automoto/pitchclash/components"
	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/network"
	"github.com/automoto/pitchclash/shared/arena"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/automoto/pitchclash/shared/netcomponents"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/timer"
	"github.com/leap-fish/necs/esync"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientID netconfig.PeerID = 2

func testLayout() *arena.Layout {
	return &arena.Layout{
		Width: 640,
		Depth: 384,
		Goals: []arena.GoalVolume{
			{Team: netconfig.TeamLeft, X: 0, Z: 128, W: 32, D: 128},
			{Team: netconfig.TeamRight, X: 608, Z: 128, W: 32, D: 128},
		},
		HostSpawn:   gamemath.Vec3{X: 160, Z: 192},
		ClientSpawn: gamemath.Vec3{X: 480, Z: 192},
		BallOrigin:  gamemath.Vec3{X: 320, Z: 192},
	}
}

type sentMsg struct {
	to  netconfig.PeerID // 0 for broadcast
	msg any
}

type fakeTransport struct {
	role   netconfig.Role
	local  netconfig.PeerID
	events []network.Event
	inbox  []network.Envelope
	snap   *esync.WorldSnapshot
	sent   []sentMsg
}

func (t *fakeTransport) Role() netconfig.Role        { return t.role }
func (t *fakeTransport) LocalPeer() netconfig.PeerID { return t.local }

func (t *fakeTransport) Broadcast(msg any) error {
	t.sent = append(t.sent, sentMsg{msg: msg})
	return nil
}

func (t *fakeTransport) Send(peer netconfig.PeerID, msg any) error {
	t.sent = append(t.sent, sentMsg{to: peer, msg: msg})
	return nil
}

func (t *fakeTransport) DrainEvents() []network.Event {
	out := t.events
	t.events = nil
	return out
}

func (t *fakeTransport) DrainInbox() []network.Envelope {
	out := t.inbox
	t.inbox = nil
	return out
}

func (t *fakeTransport) LatestSnapshot() *esync.WorldSnapshot {
	out := t.snap
	t.snap = nil
	return out
}

func (t *fakeTransport) Close() error { return nil }

func (t *fakeTransport) broadcasts() []any {
	var out []any
	for _, s := range t.sent {
		if s.to == 0 {
			out = append(out, s.msg)
		}
	}
	return out
}

type countingReplicator struct {
	calls int
}

func (r *countingReplicator) Replicate(*Session) { r.calls++ }

func newHostSession(t *testing.T) (*Session, *fakeTransport, *countingReplicator) {
	t.Helper()
	tr := &fakeTransport{role: netconfig.RoleAuthority, local: netconfig.HostPeerID}
	repl := &countingReplicator{}
	s := New(tr, Options{Layout: testLayout(), TickRate: 60, Replicator: repl}, zerolog.Nop())
	return s, tr, repl
}

func newObserverSession(t *testing.T) (*Session, *fakeTransport) {
	t.Helper()
	tr := &fakeTransport{role: netconfig.RoleObserver}
	s := New(tr, Options{Layout: testLayout(), TickRate: 60, Replicator: &countingReplicator{}}, zerolog.Nop())
	return s, tr
}

func startHostMatch(t *testing.T, s *Session, tr *fakeTransport) {
	t.Helper()
	tr.events = append(tr.events, network.PeerJoined{Peer: clientID, Peers: 1})
	require.NoError(t, s.tick())
}

func TestHostStartsMatchWhenClientJoins(t *testing.T) {
	s, tr, repl := newHostSession(t)
	startHostMatch(t, s, tr)

	sent := tr.broadcasts()
	require.GreaterOrEqual(t, len(sent), 4)
	assert.Equal(t, messages.SpawnPlayer{PlayerID: netconfig.HostPeerID, Color: cfg.Player.HostColor, IsHost: true}, sent[0])
	assert.Equal(t, messages.SpawnPlayer{PlayerID: clientID, Color: cfg.Player.ClientColor, IsHost: false}, sent[1])
	assert.Equal(t, messages.SpawnHUD{}, sent[2])
	assert.Equal(t, messages.UpdateCountdown{Value: cfg.Match.CountdownSeconds}, sent[3])

	assert.Equal(t, netconfig.MatchStateCountdown, s.Controller().State())
	assert.Len(t, s.Controller().Agents(), 2)
	assert.Equal(t, 1, repl.calls)

	local, ok := s.Controller().LocalAgent()
	require.True(t, ok)
	assert.Equal(t, netconfig.HostPeerID, local.ID())
}

func TestHostIgnoresExtraPeers(t *testing.T) {
	s, tr, _ := newHostSession(t)
	startHostMatch(t, s, tr)
	before := len(tr.sent)

	tr.events = append(tr.events, network.PeerJoined{Peer: 3, Peers: 2})
	require.NoError(t, s.tick())

	assert.Len(t, s.Controller().Agents(), 2)
	for _, m := range tr.sent[before:] {
		_, spawn := m.msg.(messages.SpawnPlayer)
		assert.False(t, spawn)
	}
}

func TestPeerLeftEndsSession(t *testing.T) {
	s, tr, _ := newHostSession(t)
	startHostMatch(t, s, tr)

	tr.events = append(tr.events, network.PeerLeft{Peer: clientID})
	err := s.tick()
	assert.ErrorIs(t, err, ErrPeerLeft)
}

func TestConnectionFailedEndsSession(t *testing.T) {
	s, tr := newObserverSession(t)
	failure := errors.New("refused")
	tr.events = append(tr.events, network.ConnectionFailed{Err: failure})

	assert.ErrorIs(t, s.tick(), failure)
}

func TestHostDropsCommandsFromObserver(t *testing.T) {
	s, tr, _ := newHostSession(t)
	startHostMatch(t, s, tr)

	tr.inbox = append(tr.inbox, network.Envelope{From: clientID, Msg: messages.UpdateScores{Left: 9, Right: 9}})
	require.NoError(t, s.tick())

	assert.Equal(t, components.Score{}, s.Controller().Score())
}

func TestHostAcceptsBodyStateFromOwner(t *testing.T) {
	s, tr, _ := newHostSession(t)
	startHostMatch(t, s, tr)

	remote, ok := s.Controller().Agent(clientID)
	require.True(t, ok)
	remote.StartGame()

	pos := gamemath.Vec3{X: 400, Z: 100}
	tr.inbox = append(tr.inbox, network.Envelope{From: clientID, Msg: messages.BodyState{PlayerID: clientID, Position: pos}})
	require.NoError(t, s.tick())

	assert.InDelta(t, pos.X, remote.Body().Position.X, 1)
	assert.InDelta(t, pos.Z, remote.Body().Position.Z, 1)
}

func TestObserverMirrorsHostMessages(t *testing.T) {
	s, tr := newObserverSession(t)
	tr.events = append(tr.events, network.Connected{Peer: clientID})
	tr.local = clientID

	host := netconfig.HostPeerID
	tr.inbox = append(tr.inbox,
		network.Envelope{From: host, Msg: messages.SpawnPlayer{PlayerID: host, Color: cfg.Player.HostColor, IsHost: true}},
		network.Envelope{From: host, Msg: messages.SpawnPlayer{PlayerID: clientID, Color: cfg.Player.ClientColor}},
		network.Envelope{From: host, Msg: messages.SpawnHUD{}},
		network.Envelope{From: host, Msg: messages.UpdateCountdown{Value: 5}},
	)
	require.NoError(t, s.tick())

	assert.Equal(t, clientID, s.ctx.LocalPeer)
	local, ok := s.Controller().LocalAgent()
	require.True(t, ok)
	assert.Equal(t, clientID, local.ID())
	assert.Equal(t, 5, s.Controller().Snapshot().Remaining)
	assert.Empty(t, tr.broadcasts())
}

func TestObserverDropsMessagesFromOtherPeers(t *testing.T) {
	s, tr := newObserverSession(t)
	tr.local = clientID

	tr.inbox = append(tr.inbox, network.Envelope{From: 3, Msg: messages.UpdateScores{Left: 1}})
	require.NoError(t, s.tick())

	assert.Equal(t, components.Score{}, s.Controller().Score())
}

func TestObserverIgnoresLocalGoalTriggers(t *testing.T) {
	s, tr := newObserverSession(t)
	tr.local = clientID

	ball := s.Controller().Ball()
	ball.Frozen = false
	ball.Position = gamemath.Vec3{X: 16, Z: 192}
	ball.SyncObject()
	require.NoError(t, s.tick())

	assert.Equal(t, components.Score{}, s.Controller().Score())
}

func TestPointerChargesAndLaunchesLocalPlayer(t *testing.T) {
	s, tr, _ := newHostSession(t)
	startHostMatch(t, s, tr)

	local, ok := s.Controller().LocalAgent()
	require.True(t, ok)
	local.StartGame()
	spawn := testLayout().HostSpawn
	handle := gamemath.Vec2{X: spawn.X, Y: spawn.Z}

	require.True(t, s.PushPointer(PointerEvent{Kind: PointerPressed, Position: handle}))
	require.True(t, s.PushPointer(PointerEvent{Kind: PointerMoved, Position: gamemath.Vec2{X: spawn.X + 100, Y: spawn.Z}}))
	require.NoError(t, s.tick())
	assert.True(t, local.Aim().Holding)
	assert.Equal(t, gamemath.Vec2{X: spawn.X + 100, Y: spawn.Z}, s.Scene().Pointer())

	require.True(t, s.PushPointer(PointerEvent{Kind: PointerReleased, Position: gamemath.Vec2{X: spawn.X + 100, Y: spawn.Z}}))
	require.NoError(t, s.tick())
	assert.False(t, local.Aim().Holding)
	assert.Less(t, local.Body().Linear.X, 0.0)
}

func TestPointerMissDoesNotCharge(t *testing.T) {
	s, tr, _ := newHostSession(t)
	startHostMatch(t, s, tr)

	local, ok := s.Controller().LocalAgent()
	require.True(t, ok)

	s.PushPointer(PointerEvent{Kind: PointerPressed, Position: gamemath.Vec2{X: 5, Y: 5}})
	require.NoError(t, s.tick())
	assert.False(t, local.Aim().Holding)
}

func TestApplyBodiesSkipsLocalBody(t *testing.T) {
	s, tr := newObserverSession(t)
	tr.local = clientID
	host := netconfig.HostPeerID
	tr.inbox = append(tr.inbox,
		network.Envelope{From: host, Msg: messages.SpawnPlayer{PlayerID: host, IsHost: true}},
		network.Envelope{From: host, Msg: messages.SpawnPlayer{PlayerID: clientID}},
	)
	require.NoError(t, s.tick())

	local, ok := s.Controller().Agent(clientID)
	require.True(t, ok)
	remote, ok := s.Controller().Agent(host)
	require.True(t, ok)
	localBefore := local.Body().Position

	moved := gamemath.Vec3{X: 300, Z: 50}
	applyBodies(s, []netcomponents.NetBodyData{
		{Key: local.Body().Key, Position: moved},
		{Key: remote.Body().Key, Position: moved},
		{Key: "ball", Position: moved},
	})

	assert.Equal(t, localBefore, local.Body().Position)
	assert.Equal(t, moved, remote.Body().Position)
	assert.Equal(t, moved, s.Controller().Ball().Position)
}

func TestLateBodyStateDoesNotRespawnTwice(t *testing.T) {
	s, tr, _ := newHostSession(t)
	startHostMatch(t, s, tr)

	remote, ok := s.Controller().Agent(clientID)
	require.True(t, ok)
	remote.StartGame()

	inGoal := gamemath.Vec3{X: 16, Z: 192}
	report := func(pos gamemath.Vec3, gen uint32) {
		tr.inbox = append(tr.inbox, network.Envelope{
			From: clientID,
			Msg:  messages.BodyState{PlayerID: clientID, Position: pos, Generation: gen},
		})
	}
	respawnKey := timer.RespawnKey(clientID)

	report(inGoal, 0)
	require.NoError(t, s.tick())
	require.True(t, s.ctx.Timers.Pending(respawnKey))

	for i := 0; i < 2*s.tickRate*int(cfg.Match.RespawnDelay.Seconds()) && s.ctx.Timers.Pending(respawnKey); i++ {
		require.NoError(t, s.tick())
	}
	require.False(t, s.ctx.Timers.Pending(respawnKey), "respawn fired")
	assert.Equal(t, uint32(1), remote.Generation())

	// Sampled by the client before it applied the respawn.
	report(inGoal, 0)
	require.NoError(t, s.tick())
	require.NoError(t, s.tick())

	assert.Equal(t, testLayout().ClientSpawn, remote.Body().Position)
	assert.False(t, s.ctx.Timers.Pending(respawnKey))

	moved := gamemath.Vec3{X: 400, Z: 100}
	report(moved, 1)
	require.NoError(t, s.tick())
	assert.InDelta(t, moved.X, remote.Body().Position.X, 1)
}
