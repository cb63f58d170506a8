package segments_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/diffgrowth/segments"
)

// TestEdgeCurvature_Square: every corner of a square inscribed in a circle
// of radius r contributes r², so each edge reads 2r².
func TestEdgeCurvature_Square(t *testing.T) {
	const r = 0.2
	s := newSegments(t, 8)
	_, err := s.InitCircleSegment(pt(0.5, 0.5), r, segments.EvenAngles(4))
	require.NoError(t, err)

	for _, e := range s.Edges() {
		c, err := s.EdgeCurvature(e)
		require.NoError(t, err)
		assert.InDelta(t, 2*r*r, c, 1e-12, "e%d", e)
	}
}

// TestEdgeCurvature_Errors covers open ends and straight runs.
func TestEdgeCurvature_Errors(t *testing.T) {
	s := newSegments(t, 8)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.25, 0.5), pt(0.375, 0.5), pt(0.5, 0.5), pt(0.625, 0.5)}, false)
	require.NoError(t, err)

	_, err = s.EdgeCurvature(0)
	assert.ErrorIs(t, err, segments.ErrNotConnected)

	_, err = s.EdgeCurvature(1)
	assert.ErrorIs(t, err, segments.ErrNoCurvature)

	_, err = s.EdgeCurvature(9)
	assert.ErrorIs(t, err, segments.ErrInvalidEdge)
}

// TestEdgeQueries reads endpoints, lengths and flat coordinates.
func TestEdgeQueries(t *testing.T) {
	s := newSegments(t, 8)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.25, 0.5), pt(0.5, 0.75)}, false)
	require.NoError(t, err)

	ev, err := s.EdgeVertices(0)
	require.NoError(t, err)
	assert.Equal(t, [2]segments.VertexID{0, 1}, ev)

	l, err := s.EdgeLength(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25*1.4142135623730951, l, 1e-12)

	diff(t, [][4]float64{{0.25, 0.5, 0.5, 0.75}}, s.EdgesCoordinates())
	diff(t, []segments.EdgeID{0}, s.Edges())
}

// TestGreatestDistance measures from the center of a circle.
func TestGreatestDistance(t *testing.T) {
	s := newSegments(t, 16)
	assert.Equal(t, 0.0, s.GreatestDistance(pt(0.5, 0.5)))

	_, err := s.InitCircleSegment(pt(0.5, 0.5), 0.2, segments.EvenAngles(8))
	require.NoError(t, err)
	assert.InDelta(t, 0.2, s.GreatestDistance(pt(0.5, 0.5)), 1e-12)
}

// TestSafeVertexPositions checks the margin band on both axes.
func TestSafeVertexPositions(t *testing.T) {
	s := newSegments(t, 8)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.25, 0.5), pt(0.75, 0.5)}, false)
	require.NoError(t, err)

	assert.True(t, s.SafeVertexPositions(0))
	assert.True(t, s.SafeVertexPositions(0.25))
	assert.False(t, s.SafeVertexPositions(0.3))
}

// TestApplyDisplacements moves only active vertices, clamps to the unit
// square and keeps the zone index in sync.
func TestApplyDisplacements(t *testing.T) {
	s := newSegments(t, 8)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.25, 0.5), pt(0.5, 0.5), pt(0.75, 0.5)}, true)
	require.NoError(t, err)

	disp := []r2.Vec{pt(0.125, 0.125), pt(0.125, 0.125), pt(0.125, 0.125)}
	assert.Equal(t, 1, s.ApplyDisplacements(disp))
	diff(t, []r2.Vec{pt(0.25, 0.5), pt(0.625, 0.625), pt(0.75, 0.5)}, s.VertexCoordinates())
	checkInvariants(t, s)

	assert.Equal(t, 1, s.ApplyDisplacements([]r2.Vec{{}, pt(2, -2)}))
	p, err := s.Position(1)
	require.NoError(t, err)
	assert.Equal(t, pt(1, 0), p)
	checkInvariants(t, s)

	assert.Equal(t, 0, s.ApplyDisplacements(nil))
}

// TestContractClassification checks that domain errors stay outside the
// contract class.
func TestContractClassification(t *testing.T) {
	for _, err := range []error{segments.ErrEdgeNotFound, segments.ErrNoSegment, segments.ErrNotSingleLoop} {
		assert.False(t, errors.Is(err, segments.ErrContractViolation), "%v", err)
	}
	for _, err := range []error{
		segments.ErrBadArgument, segments.ErrInvalidVertex, segments.ErrInvalidEdge,
		segments.ErrOutOfBounds, segments.ErrCapacityExceeded, segments.ErrDegreeExceeded,
		segments.ErrEdgeTooShort, segments.ErrEdgeTooLong, segments.ErrPassiveVertex,
		segments.ErrNotConnected, segments.ErrNoCurvature, segments.ErrTooFewPoints,
	} {
		assert.True(t, errors.Is(err, segments.ErrContractViolation), "%v", err)
	}
}

// TestMaxSphereCount_SizesQueryBuffer: a buffer with MaxSphereCount capacity
// holds every zone query without reallocating.
func TestMaxSphereCount_SizesQueryBuffer(t *testing.T) {
	s := newSegments(t, 512)
	_, err := s.InitCircleSegment(pt(0.5, 0.5), 0.05, segments.EvenAngles(200))
	require.NoError(t, err)
	_, err = s.InitPassiveCircleSegment(pt(0.45, 0.45), 0.02, segments.EvenAngles(50))
	require.NoError(t, err)

	buf := make([]int, 0, s.MaxSphereCount())
	for v := 0; v < s.VNum(); v++ {
		got := s.SphereVertices(segments.VertexID(v), s.ZoneWidth(), buf)
		require.LessOrEqual(t, len(got), s.MaxSphereCount())
		require.NotEmpty(t, got)
		assert.Same(t, &buf[:1][0], &got[0], "v%d reallocated the buffer", v)
	}
}
