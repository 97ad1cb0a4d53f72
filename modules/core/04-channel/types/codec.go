package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	tmjson "github.com/tendermint/tendermint/libs/json"
)

// MustMarshalChannel returns the store and commitment encoding of a channel end.
// It panics on error.
func MustMarshalChannel(channel Channel) []byte {
	bz, err := tmjson.Marshal(channel)
	if err != nil {
		panic(fmt.Errorf("failed to encode channel end: %w", err))
	}

	return bz
}

// UnmarshalChannel decodes a channel end from its store encoding.
func UnmarshalChannel(bz []byte) (Channel, error) {
	var channel Channel
	if err := tmjson.Unmarshal(bz, &channel); err != nil {
		return Channel{}, sdkerrors.Wrap(ErrInvalidChannel, err.Error())
	}

	return channel, nil
}

// MustUnmarshalChannel decodes a channel end from its store encoding. It panics on error.
func MustUnmarshalChannel(bz []byte) Channel {
	channel, err := UnmarshalChannel(bz)
	if err != nil {
		panic(err)
	}

	return channel
}
