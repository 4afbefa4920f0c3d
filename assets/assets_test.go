package assets

import (
	"testing"

	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultArena(t *testing.T) {
	layout, err := LoadArena("")
	require.NoError(t, err)

	assert.Equal(t, 640.0, layout.Width)
	assert.Equal(t, 384.0, layout.Depth)
	require.Len(t, layout.Goals, 2)
	assert.Equal(t, gamemath.Vec3{X: 320, Z: 192}, layout.BallOrigin)
	assert.Equal(t, gamemath.Vec3{X: 160, Z: 192}, layout.SpawnFor(netconfig.HostPeerID))
	assert.Equal(t, gamemath.Vec3{X: 480, Z: 192}, layout.SpawnFor(7))

	teams := map[netconfig.Team]bool{}
	for _, g := range layout.Goals {
		teams[g.Team] = true
	}
	assert.True(t, teams[netconfig.TeamLeft])
	assert.True(t, teams[netconfig.TeamRight])
}
