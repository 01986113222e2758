package block

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEnvironment reports an environment read on a block built without
	// one. This is a programming error, not bad input; callers must not
	// recover into a default value.
	ErrNoEnvironment = errors.New("block: block was built without an environment")

	// ErrEnvironmentMismatch reports serialized environment data supplied
	// where none was expected, or the reverse, or a duplicator keyed on the
	// wrong environment type.
	ErrEnvironmentMismatch = errors.New("block: environment mismatch")

	// ErrUnverifiedBody reports a zero-value token reaching a constructor.
	ErrUnverifiedBody = errors.New("block: body has not passed capture verification")
)

// DeserializationError reports persisted environment text that failed to
// decode as the builder's environment type.
type DeserializationError struct {
	Text string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("block: deserialize environment %q: %v", e.Text, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
