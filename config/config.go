package config

import (
	"image/color"
	"time"
)

// MatchConfig contains round and scoring configuration values
type MatchConfig struct {
	CountdownSeconds int           // Countdown start value (5, 4, ... 0)
	CountdownTick    time.Duration // Interval between countdown broadcasts
	RespawnDelay     time.Duration // Own-goal respawn delay
	WinningScore     int           // Score that ends the match (0 = endless)
	TickRate         int           // Simulation steps per second
}

// NetConfig contains transport configuration values
type NetConfig struct {
	HostAddress string // Address clients dial when not hosting
	Port        uint
	InboxSize   int // Buffered messages between router goroutines and the loop
}

// PlayerConfig contains player body and input configuration values
type PlayerConfig struct {
	ForceIncreaseFactor float64 // Launch force gained per second while held
	InteractMask        uint32  // Ray query layer for interact triggers
	Mass                float64
	Radius              float64
	LinearDamp          float64 // Fraction of velocity lost per second

	HostColor   color.RGBA
	ClientColor color.RGBA
}

// BallConfig contains ball body configuration values
type BallConfig struct {
	Mass       float64
	Radius     float64
	LinearDamp float64
}

// ArenaConfig selects the arena layout
type ArenaConfig struct {
	Path string // Path to a .tmx file, empty for the embedded pitch
}

// Global configuration instances
var Match MatchConfig
var Net NetConfig
var Player PlayerConfig
var Ball BallConfig
var Arena ArenaConfig

// Shared RGBA color constants
var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

func init() {
	Match = MatchConfig{
		CountdownSeconds: 5,
		CountdownTick:    time.Second,
		RespawnDelay:     3 * time.Second,
		WinningScore:     0,
		TickRate:         60,
	}

	Net = NetConfig{
		HostAddress: "127.0.0.1",
		Port:        7777,
		InboxSize:   256,
	}

	Player = PlayerConfig{
		ForceIncreaseFactor: 50.0,
		InteractMask:        2,
		Mass:                1.0,
		Radius:              8.0,
		LinearDamp:          0.8,
		HostColor:           Blue,
		ClientColor:         Red,
	}

	Ball = BallConfig{
		Mass:       0.5,
		Radius:     6.0,
		LinearDamp: 0.4,
	}

	Arena = ArenaConfig{}
}
