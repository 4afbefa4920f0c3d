package protocol

import (
	"sync"

	"github.com/automoto/pitchclash/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetBody uint = 10
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both host and client before any network operations.
// Later calls return the result of the first.
func RegisterComponents() error {
	registerOnce.Do(func() {
		registerErr = esync.RegisterComponent(
			SyncIDNetBody,
			netcomponents.NetBodyData{},
			netcomponents.NetBody,
		)
	})
	return registerErr
}
