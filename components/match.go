package components

import (
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/yohamta/donburi"
)

// Score holds both team scores. Each side only ever increases.
type Score struct {
	Left  int
	Right int
}

// For returns the score of a team.
func (s Score) For(team netconfig.Team) int {
	if team == netconfig.TeamLeft {
		return s.Left
	}
	return s.Right
}

// MatchData stores the current match state and scores.
// This is a singleton component - only one match exists at a time.
type MatchData struct {
	State            netconfig.MatchStateID
	BallOrigin       gamemath.Vec3 // Recorded once when the match is prepared
	Remaining        int           // Current countdown value
	CountdownRunning bool
	CountdownVisible bool
	Score            Score
	Rounds           int            // Completed rounds
	Winner           netconfig.Team // TeamNone until the match is finished
}

var Match = donburi.NewComponentType[MatchData]()

// AddGoal credits one point to team.
func (m *MatchData) AddGoal(team netconfig.Team) {
	switch team {
	case netconfig.TeamLeft:
		m.Score.Left++
	case netconfig.TeamRight:
		m.Score.Right++
	}
}

// Leader returns the team ahead, or TeamNone on a tie.
func (m *MatchData) Leader() netconfig.Team {
	switch {
	case m.Score.Left > m.Score.Right:
		return netconfig.TeamLeft
	case m.Score.Right > m.Score.Left:
		return netconfig.TeamRight
	}
	return netconfig.TeamNone
}
