package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/pitchclash/shared/arena"
)

//go:embed all:arenas
var arenaFS embed.FS

// DefaultArena is the embedded pitch used when no arena file is configured.
const DefaultArena = "arenas/pitch.tmx"

// LoadArena loads the embedded pitch when path is empty, otherwise the TMX
// file at path.
func LoadArena(path string) (*arena.Layout, error) {
	if path == "" {
		return arena.Load(arenaFS, DefaultArena)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve arena path: %w", err)
	}
	return arena.Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
