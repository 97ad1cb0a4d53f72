package host

import "fmt"

const (
	KeyPortPrefix          = "ports"
	KeyChannelEndPrefix    = "channelEnds"
	KeyChannelPrefix       = "channels"
	KeyNextChannelSequence = "nextChannelSequence"
)

// ICS04
// The following paths are the keys to the store as defined in https://github.com/cosmos/ibc/tree/master/spec/core/ics-004-channel-and-packet-semantics#store-paths

// ChannelPath defines the path under which channels are stored
func ChannelPath(portID, channelID string) string {
	return fmt.Sprintf("%s/%s", KeyChannelEndPrefix, channelPath(portID, channelID))
}

// ChannelKey returns the store key for a particular channel
func ChannelKey(portID, channelID string) []byte {
	return []byte(ChannelPath(portID, channelID))
}

func channelPath(portID, channelID string) string {
	return fmt.Sprintf("%s/%s/%s/%s", KeyPortPrefix, portID, KeyChannelPrefix, channelID)
}

// NextChannelSequenceKey returns the store key of the next channel sequence.
func NextChannelSequenceKey() []byte {
	return []byte(KeyNextChannelSequence)
}
