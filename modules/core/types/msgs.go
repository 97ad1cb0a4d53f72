package types

// Msg is a protocol message that can be delivered to a chain.
type Msg interface {
	// Type returns the message type used for routing, logs and metrics.
	Type() string

	// ValidateBasic does a simple validation check that doesn't require access to any
	// other information.
	ValidateBasic() error
}
