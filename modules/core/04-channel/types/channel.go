package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	host "github.com/cosmos/ibc-handshake/modules/core/24-host"
)

// State defines if a channel is in one of the following states:
// CLOSED, INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State int32

const (
	// Default State
	UNINITIALIZED State = 0
	// A channel has just started the opening handshake.
	INIT State = 1
	// A channel has acknowledged the handshake step on the counterparty chain.
	TRYOPEN State = 2
	// A channel has completed the handshake. Open channels are
	// ready to send and receive packets.
	OPEN State = 3
	// A channel has been closed and can no longer be used to send or receive
	// packets.
	CLOSED State = 4
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
	CLOSED:        "STATE_CLOSED",
}

// String implements the Stringer interface
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "STATE_UNKNOWN"
}

// Order defines if a channel is ORDERED or UNORDERED
type Order int32

const (
	// zero-value for channel ordering
	NONE Order = 0
	// packets can be delivered in any order, which may differ from the order in
	// which they were sent.
	UNORDERED Order = 1
	// packets are delivered exactly in the order which they were sent
	ORDERED Order = 2
)

var orderNames = map[Order]string{
	NONE:      "ORDER_NONE_UNSPECIFIED",
	UNORDERED: "ORDER_UNORDERED",
	ORDERED:   "ORDER_ORDERED",
}

// String implements the Stringer interface
func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return "ORDER_UNKNOWN"
}

// SubsetOf returns true if the provided Order is a valid subset of Order.
// UNORDERED channels may be upgraded to ORDERED, but not the other way around.
func (o Order) SubsetOf(order Order) bool {
	switch o {
	case ORDERED:
		return order == ORDERED || order == UNORDERED
	case UNORDERED:
		return order == UNORDERED
	default:
		return false
	}
}

// Channel defines a channel end: a pipeline for exactly-once packet delivery
// between specific modules on separate blockchains, which has at least one end
// capable of sending packets and one end capable of receiving packets.
type Channel struct {
	// current state of the channel end
	State State `json:"state"`
	// whether the channel is ordered or unordered
	Ordering Order `json:"ordering"`
	// counterparty channel end
	Counterparty Counterparty `json:"counterparty"`
	// list of connection identifiers, in order, along which packets sent on
	// this channel will travel
	ConnectionHops []string `json:"connection_hops"`
	// opaque channel version, which is agreed upon during the handshake
	Version string `json:"version"`
}

// NewChannel creates a new Channel instance
func NewChannel(
	state State, ordering Order, counterparty Counterparty,
	hops []string, version string,
) Channel {
	return Channel{
		State:          state,
		Ordering:       ordering,
		Counterparty:   counterparty,
		ConnectionHops: hops,
		Version:        version,
	}
}

// ValidateBasic performs a basic validation of the channel fields
func (ch Channel) ValidateBasic() error {
	if ch.State == UNINITIALIZED {
		return ErrInvalidChannelState
	}
	if ch.Ordering != ORDERED && ch.Ordering != UNORDERED {
		return sdkerrors.Wrap(ErrInvalidChannelOrdering, ch.Ordering.String())
	}
	if len(ch.ConnectionHops) != 1 {
		return sdkerrors.Wrap(
			ErrTooManyConnectionHops,
			"current IBC version only supports one connection hop",
		)
	}
	if err := host.ConnectionIdentifierValidator(ch.ConnectionHops[0]); err != nil {
		return sdkerrors.Wrap(err, "invalid connection hop ID")
	}
	return ch.Counterparty.ValidateBasic()
}

// Counterparty defines a channel end counterparty
type Counterparty struct {
	// port on the counterparty chain which owns the other end of the channel.
	PortID string `json:"port_id"`
	// channel end on the counterparty chain
	ChannelID string `json:"channel_id"`
}

// NewCounterparty returns a new Counterparty instance
func NewCounterparty(portID, channelID string) Counterparty {
	return Counterparty{
		PortID:    portID,
		ChannelID: channelID,
	}
}

// ValidateBasic performs a basic validation check of the identifiers
func (c Counterparty) ValidateBasic() error {
	if err := host.PortIdentifierValidator(c.PortID); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty port ID")
	}
	if c.ChannelID != "" {
		if err := host.ChannelIdentifierValidator(c.ChannelID); err != nil {
			return sdkerrors.Wrap(err, "invalid counterparty channel ID")
		}
	}
	return nil
}
