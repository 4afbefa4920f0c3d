package tags

import "github.com/yohamta/donburi"

var (
	Ball   = donburi.NewTag().SetName("Ball")
	Player = donburi.NewTag().SetName("Player")
	Goal   = donburi.NewTag().SetName("Goal")
)

// Resolv tags for trigger detection and picking
const (
	ResolvBall     = "ball"
	ResolvPlayer   = "player"
	ResolvGoal     = "goal"
	ResolvInteract = "interact"
)
