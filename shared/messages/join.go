package messages

import "github.com/automoto/pitchclash/shared/netconfig"

// Welcome is sent by the host to a newly connected peer to assign its id.
type Welcome struct {
	PeerID netconfig.PeerID
}
