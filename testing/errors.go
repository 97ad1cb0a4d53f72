package ibctesting

import (
	"fmt"

	ibcerrors "github.com/cosmos/ibc-handshake/modules/core/errors"
)

// StepError reports a handshake step that did not produce its expected outcome. It
// matches ibcerrors.ErrProtocolViolation and unwraps to the dispatch failure, if any.
type StepError struct {
	Step     string
	Chain    string
	Expected string
	Observed string
	Err      error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: step %s on %s: %s", ibcerrors.ErrProtocolViolation, e.Step, e.Chain, e.Err)
	}
	return fmt.Sprintf("%s: step %s on %s: expected event %s, observed %s", ibcerrors.ErrProtocolViolation, e.Step, e.Chain, e.Expected, e.Observed)
}

// Is reports whether target is ErrProtocolViolation.
func (e *StepError) Is(target error) bool {
	return target == ibcerrors.ErrProtocolViolation
}

func (e *StepError) Unwrap() error {
	return e.Err
}
