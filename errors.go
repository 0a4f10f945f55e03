package st2110

import (
	"errors"
	"fmt"
)

// Parse and emit failures wrap one of these sentinels, so callers can route on
// the kind with errors.Is while the message keeps the line or field context.
var (
	// ErrMalformedLine reports a line that does not match <letter>=<value>.
	ErrMalformedLine = errors.New("malformed sdp line")

	// ErrMissingRequired reports a required SDP field or ST 2110 parameter
	// that is absent.
	ErrMissingRequired = errors.New("missing required field")

	// ErrUnknownEnumValue reports a literal outside a closed vocabulary.
	ErrUnknownEnumValue = errors.New("unknown enum value")

	// ErrMalformedCompoundValue reports a framerate, PAR, or channel-order
	// value whose grammar did not match.
	ErrMalformedCompoundValue = errors.New("malformed compound value")

	// ErrInvariantViolation reports a cross-field constraint failure.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrUnsupported reports a recognized but deliberately rejected feature.
	ErrUnsupported = errors.New("unsupported feature")

	// ErrEmitOverflow reports that the template emitter would truncate.
	ErrEmitOverflow = errors.New("emit overflow")
)

func malformedLine(n int, line string) error {
	return fmt.Errorf("%w: line %d %q", ErrMalformedLine, n, line)
}

func missingRequired(field, context string) error {
	return fmt.Errorf("%w: %s in %s", ErrMissingRequired, field, context)
}

func unknownEnumValue(field, literal string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, field, literal)
}
