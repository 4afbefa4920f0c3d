package network

import (
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/leap-fish/necs/router"
)

type deliverFunc func(client *router.NetworkClient, msg any)

func forward[T any](deliver deliverFunc) {
	router.On(func(client *router.NetworkClient, msg T) {
		deliver(client, msg)
	})
}

// registerMessages routes every match message type to deliver. Both ends
// register the full set so either side can decode what the other sends.
func registerMessages(deliver deliverFunc) {
	forward[messages.SpawnHUD](deliver)
	forward[messages.PrepareMatch](deliver)
	forward[messages.SpawnPlayer](deliver)
	forward[messages.UpdateCountdown](deliver)
	forward[messages.CountdownFinished](deliver)
	forward[messages.ShowCountdown](deliver)
	forward[messages.UpdateScores](deliver)
	forward[messages.RoundOutcome](deliver)
	forward[messages.MatchOver](deliver)
	forward[messages.PlayerStartGame](deliver)
	forward[messages.PlayerRoundReset](deliver)
	forward[messages.PlayerRespawn](deliver)
	forward[messages.PlayerSetIdentity](deliver)
	forward[messages.PlayerSetColor](deliver)
	forward[messages.BodyState](deliver)
}
