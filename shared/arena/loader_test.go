package arena

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingSpawnTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="10" height="10" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="4">
 <objectgroup id="1" name="Goals">
  <object id="1" name="left" x="0" y="0" width="16" height="32"/>
  <object id="2" name="right" x="144" y="0" width="16" height="32"/>
 </objectgroup>
 <objectgroup id="2" name="Ball">
  <object id="3" name="ball" x="80" y="80"><point/></object>
 </objectgroup>
</map>
`

func TestLoadRejectsMissingSpawns(t *testing.T) {
	fsys := fstest.MapFS{"broken.tmx": &fstest.MapFile{Data: []byte(missingSpawnTMX)}}

	_, err := Load(fsys, "broken.tmx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawns are required")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "nope.tmx")
	require.Error(t, err)
}
