package arena

import (
	"fmt"
	"io/fs"

	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/lafriks/go-tiled"
)

// Object group and object names expected in a pitch TMX file.
const (
	groupGoals  = "Goals"
	groupSpawns = "Spawns"
	groupBall   = "Ball"

	objectLeft   = "left"
	objectRight  = "right"
	objectHost   = "host"
	objectClient = "client"
	objectBall   = "ball"
)

// Load parses a TMX file and returns the pitch layout. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS. Tiled's Y axis maps onto world Z.
func Load(fsys fs.FS, tmxPath string) (*Layout, error) {
	pitchMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	layout := &Layout{
		Width: float64(pitchMap.Width * pitchMap.TileWidth),
		Depth: float64(pitchMap.Height * pitchMap.TileHeight),
	}

	var haveHost, haveClient, haveBall bool
	for _, og := range pitchMap.ObjectGroups {
		switch og.Name {
		case groupGoals:
			for _, o := range og.Objects {
				team := netconfig.TeamNone
				switch o.Name {
				case objectLeft:
					team = netconfig.TeamLeft
				case objectRight:
					team = netconfig.TeamRight
				}
				if team == netconfig.TeamNone {
					continue
				}
				layout.Goals = append(layout.Goals, GoalVolume{
					Team: team,
					X:    o.X,
					Z:    o.Y,
					W:    o.Width,
					D:    o.Height,
				})
			}
		case groupSpawns:
			for _, o := range og.Objects {
				switch o.Name {
				case objectHost:
					layout.HostSpawn = gamemath.Vec3{X: o.X, Z: o.Y}
					haveHost = true
				case objectClient:
					layout.ClientSpawn = gamemath.Vec3{X: o.X, Z: o.Y}
					haveClient = true
				}
			}
		case groupBall:
			for _, o := range og.Objects {
				if o.Name == objectBall {
					layout.BallOrigin = gamemath.Vec3{X: o.X, Z: o.Y}
					haveBall = true
				}
			}
		}
	}

	if err := layout.validate(haveHost, haveClient, haveBall); err != nil {
		return nil, fmt.Errorf("pitch %s: %w", tmxPath, err)
	}
	return layout, nil
}

func (l *Layout) validate(haveHost, haveClient, haveBall bool) error {
	var left, right bool
	for _, g := range l.Goals {
		left = left || g.Team == netconfig.TeamLeft
		right = right || g.Team == netconfig.TeamRight
	}
	switch {
	case !left || !right:
		return fmt.Errorf("both %q and %q goals are required", objectLeft, objectRight)
	case !haveHost || !haveClient:
		return fmt.Errorf("both %q and %q spawns are required", objectHost, objectClient)
	case !haveBall:
		return fmt.Errorf("a %q object is required", objectBall)
	}
	return nil
}
