package pairing

import "errors"

var (
	// ErrInvalidInput marks input that can never produce an assignment.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPairingExhausted means every attempt within the retry budget was rejected.
	ErrPairingExhausted = errors.New("could not find valid pairing")
	// ErrDuplicateReceiver means an accepted assignment is not a bijection.
	ErrDuplicateReceiver = errors.New("duplicate receivers detected")
)
