package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownRuleKind indicates a rule specification with a kind
	// outside the closed range/pattern/allowed_values set.
	ErrUnknownRuleKind = errors.New("unknown rule kind")

	// ErrUnsupportedFormat indicates an unknown report output format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnreadableSource indicates the source could not be decoded
	// with any supported encoding.
	ErrUnreadableSource = errors.New("source not decodable with any supported encoding")
)
