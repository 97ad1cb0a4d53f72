package types_test

import (
	"github.com/cosmos/ibc-handshake/modules/core/02-client/types"
)

func (suite *TypesTestSuite) TestMsgCreateClientValidateBasic() {
	var msg *types.MsgCreateClient

	testCases := []struct {
		name     string
		malleate func()
		expPass  bool
	}{
		{"valid msg", func() {}, true},
		{"invalid signer", func() { msg.Signer = "invalid" }, false},
		{"nil client state", func() { msg.ClientState = nil }, false},
		{"invalid client state", func() { msg.ClientState.ChainID = "" }, false},
		{"nil consensus state", func() { msg.ConsensusState = nil }, false},
		{"invalid consensus state", func() { msg.ConsensusState.NextValidatorsHash = nil }, false},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			msg = types.NewMsgCreateClient(
				types.NewClientState(chainID, height, trustingPeriod, maxClockDrift),
				suite.consensusState(),
				suite.signer,
			)

			tc.malleate()

			err := msg.ValidateBasic()
			if tc.expPass {
				suite.Require().NoError(err)
			} else {
				suite.Require().Error(err)
			}
		})
	}
}

func (suite *TypesTestSuite) TestMsgUpdateClientValidateBasic() {
	var msg *types.MsgUpdateClient

	testCases := []struct {
		name     string
		malleate func()
		expPass  bool
	}{
		{"valid msg", func() {}, true},
		{"invalid client id", func() { msg.ClientID = "mock" }, false},
		{"invalid signer", func() { msg.Signer = "" }, false},
		{"nil header", func() { msg.Header = nil }, false},
		{"invalid header", func() { msg.Header.Signature = nil }, false},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			msg = types.NewMsgUpdateClient("00-mock-0", suite.signedHeader(height.Increment(), height), suite.signer)

			tc.malleate()

			err := msg.ValidateBasic()
			if tc.expPass {
				suite.Require().NoError(err)
			} else {
				suite.Require().Error(err)
			}
		})
	}
}
