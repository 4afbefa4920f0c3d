package match

// HUD is the display sink of one peer.
type HUD interface {
	UpdateCountdown(value int)
	UpdateScores(left, right int)
	SetCountdownVisible(visible bool)
}

// HUDFactory instantiates the HUD when SpawnHUD is applied.
type HUDFactory func() HUD

type nopHUD struct{}

func (nopHUD) UpdateCountdown(int) {}

func (nopHUD) UpdateScores(int, int) {}

func (nopHUD) SetCountdownVisible(bool) {}
