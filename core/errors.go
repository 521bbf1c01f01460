package core

import "errors"

// Sentinel errors for the graph model. Callers should use errors.Is to
// branch on these; they are wrapped with fmt.Errorf("%w: ...") for context
// at the call site rather than stringified here.
var (
	// ErrUnknownKind indicates NewVertex was called with a kind outside
	// {initiator, port, expander, target}.
	ErrUnknownKind = errors.New("core: unknown vertex kind")

	// ErrPortRangeRequired indicates a port vertex was requested without
	// a PHY range, or a non-port vertex was given one.
	ErrPortRangeRequired = errors.New("core: port vertex requires a phy range")

	// ErrDuplicateVertex indicates an attempt to create a vertex whose
	// (kind, sas address[, phy range]) already exists.
	ErrDuplicateVertex = errors.New("core: duplicate vertex")

	// ErrAttrExists indicates a write to an attribute key that already
	// has a value; the attribute bag is write-once.
	ErrAttrExists = errors.New("core: attribute already set")

	// ErrVertexNotFound indicates an operation referenced a vertex that
	// is not present in the graph.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrInvalidPhyRange indicates start_phy > end_phy.
	ErrInvalidPhyRange = errors.New("core: start_phy must be <= end_phy")
)
