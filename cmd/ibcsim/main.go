package main

import (
	"os"

	"github.com/cosmos/ibc-handshake/cmd/ibcsim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
