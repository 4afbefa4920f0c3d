package network

import (
	"context"
	"fmt"
	"net"
	"strconv"

	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
)

// Client is the observer end of the link.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu deadlock.RWMutex

	localPeer netconfig.PeerID
	conn      *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins
	events     chan Event
	inbox      chan Envelope
	done       chan struct{}
	log        zerolog.Logger
}

var _ Transport = (*Client)(nil)

func NewClient(log zerolog.Logger) *Client {
	return &Client{
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		events:     make(chan Event, 16),
		inbox:      make(chan Envelope, cfg.Net.InboxSize),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "client").Logger(),
	}
}

// ConnectAsClient dials the host in a background goroutine. The outcome is
// reported as Connected or ConnectionFailed.
func (c *Client) ConnectAsClient(address string, port uint) {
	hostPort := net.JoinHostPort(address, strconv.FormatUint(uint64(port), 10))
	c.setupRouterCallbacks()

	c.log.Info().Str("address", hostPort).Msg("joining game")
	go func() {
		transport := transports.NewWsClientTransport("ws://" + hostPort)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.fail(fmt.Errorf("%w: dial %s: %v", ErrConnection, hostPort, err))
		}
	}()
}

func (c *Client) setupRouterCallbacks() {
	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Debug().Msg("connected to host")
	})

	router.On(func(_ *router.NetworkClient, msg messages.Welcome) {
		c.log.Info().Int32("peer", int32(msg.PeerID)).Msg("joined game")
		c.mu.Lock()
		c.localPeer = msg.PeerID
		c.mu.Unlock()
		push[Event](c.events, c.done, Connected{Peer: msg.PeerID})
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	registerMessages(func(_ *router.NetworkClient, msg any) {
		push(c.inbox, c.done, Envelope{From: netconfig.HostPeerID, Msg: msg})
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.Info().Err(err).Msg("disconnected from host")
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		push[Event](c.events, c.done, PeerLeft{Peer: netconfig.HostPeerID, Err: err})
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Warn().Err(err).Msg("connection error")
	})
}

func (c *Client) Role() netconfig.Role {
	return netconfig.RoleObserver
}

// LocalPeer returns the id assigned by the host, 0 before Welcome.
func (c *Client) LocalPeer() netconfig.PeerID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.localPeer
}

// Broadcast sends msg to the host, the only peer a client talks to.
func (c *Client) Broadcast(msg any) error {
	return c.Send(netconfig.HostPeerID, msg)
}

func (c *Client) Send(peer netconfig.PeerID, msg any) error {
	if peer != netconfig.HostPeerID {
		return fmt.Errorf("%w: clients only talk to the host, not peer %d", ErrConnection, peer)
	}

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("%w: not connected", ErrConnection)
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize %T: %w", msg, err)
	}
	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) DrainEvents() []Event {
	return drainChan(c.events)
}

func (c *Client) DrainInbox() []Envelope {
	return drainChan(c.inbox)
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	select {
	case <-c.done:
	default:
		close(c.done)
	}
	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
	return nil
}

func (c *Client) fail(err error) {
	c.log.Error().Err(err).Msg("connection failed")
	push[Event](c.events, c.done, ConnectionFailed{Err: err})
}
