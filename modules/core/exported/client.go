package exported

const (
	// ModuleName is the name of the IBC module
	ModuleName = "ibc"

	// StoreKey is the string store representation
	StoreKey string = ModuleName

	// Mock is used to indicate that the light client verifies headers signed by the single
	// ed25519 validator of a mock host chain.
	Mock string = "00-mock"
)

// Status represents the status of a client
type Status string

const (
	// Active is a status type of a client. An active client is allowed to be used.
	Active Status = "Active"

	// Frozen is a status type of a client. A frozen client is not allowed to be used.
	Frozen Status = "Frozen"

	// Expired is a status type of a client. An expired client is not allowed to be used.
	Expired Status = "Expired"

	// Unknown indicates there was an error in determining the status of a client.
	Unknown Status = "Unknown"
)

// String returns the status as a string.
func (s Status) String() string {
	return string(s)
}

// Height is a wrapper interface over clienttypes.Height
// all clients must use the concrete implementation in types
type Height interface {
	GetRevisionNumber() uint64
	GetRevisionHeight() uint64
	String() string
}
