// SPDX-License-Identifier: MIT
//
// File: errors.go
// Role: Sentinel errors for the segments package.
// Policy:
//   - Two classes. Caller-contract violations wrap ErrContractViolation and
//     signal a bug in the calling code. Domain outcomes (a split that finds
//     its edge already gone) do not, and are safe to skip.
//   - Callers branch with errors.Is; context is attached with %w.

package segments

import (
	"errors"
	"fmt"
)

// ErrContractViolation is the class of every error caused by a caller
// breaking a documented precondition. errors.Is(err, ErrContractViolation)
// separates programming errors from expected domain outcomes.
var ErrContractViolation = errors.New("segments: contract violation")

// Caller-contract violations.
var (
	// ErrBadArgument indicates an invalid constructor argument (capacity, zone width).
	ErrBadArgument = fmt.Errorf("%w: bad argument", ErrContractViolation)

	// ErrInvalidVertex indicates a vertex id outside the allocated range, or a deleted vertex
	// where a live one is required.
	ErrInvalidVertex = fmt.Errorf("%w: invalid vertex", ErrContractViolation)

	// ErrInvalidEdge indicates an edge id outside the allocated range.
	ErrInvalidEdge = fmt.Errorf("%w: invalid edge", ErrContractViolation)

	// ErrOutOfBounds indicates a coordinate outside the unit square.
	ErrOutOfBounds = fmt.Errorf("%w: vertex outside the unit square", ErrContractViolation)

	// ErrCapacityExceeded indicates that creating a vertex or edge would exceed the capacity
	// fixed at construction.
	ErrCapacityExceeded = fmt.Errorf("%w: capacity exceeded", ErrContractViolation)

	// ErrDegreeExceeded indicates an edge that would give a vertex more than two incident edges.
	ErrDegreeExceeded = fmt.Errorf("%w: vertex degree exceeds 2", ErrContractViolation)

	// ErrEdgeTooShort indicates a split below the requested minimum length.
	ErrEdgeTooShort = fmt.Errorf("%w: edge shorter than minimum", ErrContractViolation)

	// ErrEdgeTooLong indicates a collapse above the requested maximum length.
	ErrEdgeTooLong = fmt.Errorf("%w: edge longer than maximum", ErrContractViolation)

	// ErrPassiveVertex indicates a collapse touching a passive vertex.
	ErrPassiveVertex = fmt.Errorf("%w: edge has passive vertex", ErrContractViolation)

	// ErrNotConnected indicates an edge lacking the neighboring edges an operation needs.
	ErrNotConnected = fmt.Errorf("%w: edge is not connected", ErrContractViolation)

	// ErrNoCurvature indicates a non-positive curvature estimate (collinear neighbors).
	ErrNoCurvature = fmt.Errorf("%w: no curvature", ErrContractViolation)

	// ErrTooFewPoints indicates an initializer called with too few points for its shape.
	ErrTooFewPoints = fmt.Errorf("%w: too few points", ErrContractViolation)
)

// Domain outcomes.
var (
	// ErrEdgeNotFound indicates an edge id that was allocated but has been deleted.
	ErrEdgeNotFound = errors.New("segments: edge does not exist")

	// ErrNoSegment indicates a vertex without an owning segment.
	ErrNoSegment = errors.New("segments: vertex has no segment")

	// ErrNotSingleLoop indicates that the mesh is not exactly one closed loop.
	ErrNotSingleLoop = errors.New("segments: mesh is not a single closed loop")
)

// segErrorf attaches formatted context to a sentinel, keeping it visible to errors.Is.
func segErrorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
