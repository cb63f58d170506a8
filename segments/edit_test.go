package segments_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/diffgrowth/segments"
)

//----------------------------------------------------------------------------//
// SplitEdge
//----------------------------------------------------------------------------//

// TestSplitEdge inserts a midpoint vertex that inherits the segment of v1.
func TestSplitEdge(t *testing.T) {
	s := newSegments(t, 16)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.5, 0.5), pt(0.6, 0.6)}, false)
	require.NoError(t, err)
	_, err = s.InitLineSegment([]r2.Vec{pt(0.2, 0.2), pt(0.4, 0.2)}, true)
	require.NoError(t, err)

	m, err := s.SplitEdge(1, 0.1)
	require.NoError(t, err)
	assert.Equal(t, segments.VertexID(4), m)

	p, err := s.Position(m)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, p.X, 1e-12)
	assert.InDelta(t, 0.2, p.Y, 1e-12)
	assert.Equal(t, segments.Active, s.Status(m))
	assert.Equal(t, segments.SegmentID(1), s.Segment(m))

	_, err = s.EdgeVertices(1)
	assert.ErrorIs(t, err, segments.ErrEdgeNotFound)
	diff(t, [][2]segments.VertexID{{0, 1}, {2, 4}, {3, 4}}, s.EdgesVertices())
	assert.Equal(t, 3, s.EdgeCount())
	assert.Equal(t, 4, s.ENum())
	checkInvariants(t, s)
}

// TestSplitEdge_Errors separates soft failures from contract violations and
// checks that failures do not mutate the mesh.
func TestSplitEdge_Errors(t *testing.T) {
	s := newSegments(t, 16)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.2, 0.2), pt(0.4, 0.2)}, false)
	require.NoError(t, err)
	_, err = s.SplitEdgeNoMin(0)
	require.NoError(t, err)

	cases := []struct {
		name     string
		e        segments.EdgeID
		minLen   float64
		want     error
		contract bool
	}{
		{"Deleted", 0, -1, segments.ErrEdgeNotFound, false},
		{"Negative", -1, -1, segments.ErrInvalidEdge, true},
		{"NeverAllocated", 99, -1, segments.ErrInvalidEdge, true},
		{"TooShort", 1, 0.5, segments.ErrEdgeTooShort, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vNum, eNum := s.VNum(), s.ENum()
			_, err := s.SplitEdge(tc.e, tc.minLen)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v; want %v", err, tc.want)
			assert.Equal(t, tc.contract, errors.Is(err, segments.ErrContractViolation))
			assert.Equal(t, vNum, s.VNum())
			assert.Equal(t, eNum, s.ENum())
		})
	}
}

// TestSplitEdge_Capacity reports exhaustion before writing anything.
func TestSplitEdge_Capacity(t *testing.T) {
	s := newSegments(t, 3)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.2, 0.2), pt(0.4, 0.2)}, false)
	require.NoError(t, err)

	_, err = s.SplitEdgeNoMin(0)
	require.NoError(t, err)

	_, err = s.SplitEdgeNoMin(1)
	require.ErrorIs(t, err, segments.ErrCapacityExceeded)
	assert.Equal(t, 3, s.VNum())
	assert.Equal(t, 2, s.EdgeCount())
	checkInvariants(t, s)
}

// TestSplit_OpenChainEveryEdge splits each edge of a 3-vertex chain once:
// one new vertex per original edge, twice the edges, same polyline length.
func TestSplit_OpenChainEveryEdge(t *testing.T) {
	const eps = 1e-12
	s := newSegments(t, 16)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.2, 0.5), pt(0.4, 0.6), pt(0.6, 0.5)}, false)
	require.NoError(t, err)

	edges := s.Edges()
	vBefore, eBefore := s.VertexCount(), s.EdgeCount()
	lBefore := totalLength(t, s)

	for _, e := range edges {
		_, err := s.SplitEdgeNoMin(e)
		require.NoError(t, err)
	}

	assert.Equal(t, vBefore+len(edges), s.VertexCount())
	assert.Equal(t, 2*eBefore, s.EdgeCount())
	assert.InDelta(t, lBefore, totalLength(t, s), eps)
	checkInvariants(t, s)
}

// TestSplitLongEdges splits only edges above the limit with an active endpoint.
func TestSplitLongEdges(t *testing.T) {
	s := newSegments(t, 32)
	// Edge lengths 0.25 and 0.05.
	_, err := s.InitLineSegment([]r2.Vec{pt(0.25, 0.25), pt(0.5, 0.25), pt(0.55, 0.25)}, false)
	require.NoError(t, err)
	// Fully passive edge, long.
	_, err = s.InitPassiveLineSegment([]r2.Vec{pt(0.2, 0.8), pt(0.8, 0.8)})
	require.NoError(t, err)

	n, err := s.SplitLongEdges(0.2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 6, s.VertexCount())

	// New halves are 0.125 long, below the limit.
	n, err = s.SplitLongEdges(0.2)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	checkInvariants(t, s)
}

//----------------------------------------------------------------------------//
// CollapseEdge
//----------------------------------------------------------------------------//

// TestSplitCollapseDuality splits an edge and collapses one half: the mesh
// is back to one edge between the original endpoints.
func TestSplitCollapseDuality(t *testing.T) {
	s := newSegments(t, 16)
	_, err := s.InitLineSegment([]r2.Vec{pt(0.2, 0.5), pt(0.4, 0.5)}, false)
	require.NoError(t, err)

	_, err = s.SplitEdgeNoMin(0)
	require.NoError(t, err)
	require.Equal(t, 2, s.EdgeCount())

	require.NoError(t, s.CollapseEdgeNoMax(1))

	assert.Equal(t, 2, s.VertexCount())
	assert.Equal(t, 1, s.EdgeCount())
	ev := s.EdgesVertices()
	require.Len(t, ev, 1)
	assert.ElementsMatch(t, []segments.VertexID{0, 1}, ev[0])
	assert.Equal(t, segments.Deleted, s.Status(2))
	checkInvariants(t, s)
}

// TestCollapseEdge_Interior collapses an edge of a hexagon into a pentagon.
func TestCollapseEdge_Interior(t *testing.T) {
	s := newSegments(t, 32)
	_, err := s.InitCircleSegment(pt(0.5, 0.5), 0.2, segments.EvenAngles(6))
	require.NoError(t, err)
	pos := s.Positions()
	want := r2.Scale(0.5, r2.Add(pos[1], pos[2]))

	// e1 = (1, 2): v1 is removed, v2 moves to the midpoint, e0 = (0, 1) becomes (0, 2).
	require.NoError(t, s.CollapseEdge(1, 0.5))

	assert.Equal(t, 5, s.VertexCount())
	assert.Equal(t, 5, s.EdgeCount())
	assert.Equal(t, segments.Deleted, s.Status(1))
	got, err := s.Position(2)
	require.NoError(t, err)
	assert.InDelta(t, want.X, got.X, 1e-12)
	assert.InDelta(t, want.Y, got.Y, 1e-12)
	assert.ElementsMatch(t, []segments.VertexID{0, 3}, s.Neighbors(2))

	loop, err := s.SortedVertices()
	require.NoError(t, err)
	assert.Len(t, loop, 5)
	checkInvariants(t, s)
}

// TestCollapseEdge_Errors covers the contract and domain failures.
func TestCollapseEdge_Errors(t *testing.T) {
	t.Run("Passive", func(t *testing.T) {
		s := newSegments(t, 8)
		_, err := s.InitLineSegment([]r2.Vec{pt(0.1, 0.1), pt(0.2, 0.2), pt(0.3, 0.3)}, true)
		require.NoError(t, err)
		err = s.CollapseEdgeNoMax(0)
		assert.ErrorIs(t, err, segments.ErrPassiveVertex)
		assert.ErrorIs(t, err, segments.ErrContractViolation)
	})
	t.Run("TooLong", func(t *testing.T) {
		s := newSegments(t, 8)
		_, err := s.InitCircleSegment(pt(0.5, 0.5), 0.2, segments.EvenAngles(4))
		require.NoError(t, err)
		assert.ErrorIs(t, s.CollapseEdge(0, 0.1), segments.ErrEdgeTooLong)
		assert.Equal(t, 4, s.EdgeCount())
	})
	t.Run("Deleted", func(t *testing.T) {
		s := newSegments(t, 8)
		_, err := s.InitLineSegment([]r2.Vec{pt(0.1, 0.1), pt(0.2, 0.2)}, false)
		require.NoError(t, err)
		_, err = s.SplitEdgeNoMin(0)
		require.NoError(t, err)
		err = s.CollapseEdgeNoMax(0)
		assert.ErrorIs(t, err, segments.ErrEdgeNotFound)
		assert.NotErrorIs(t, err, segments.ErrContractViolation)
	})
	t.Run("TwoVertexLoop", func(t *testing.T) {
		s := newSegments(t, 8)
		_, err := s.InitCircleSegment(pt(0.5, 0.5), 0.2, segments.EvenAngles(3))
		require.NoError(t, err)
		// Triangle -> two vertices joined by two edges.
		require.NoError(t, s.CollapseEdgeNoMax(0))
		require.Equal(t, 2, s.VertexCount())
		require.Equal(t, 2, s.EdgeCount())

		err = s.CollapseEdgeNoMax(1)
		assert.ErrorIs(t, err, segments.ErrNotConnected)
		assert.Equal(t, 2, s.EdgeCount())
	})
}

//----------------------------------------------------------------------------//
// Properties
//----------------------------------------------------------------------------//

// TestRandomEdits_Invariants applies random splits and collapses to a loop and
// checks degree, bounds and zone consistency after every edit.
func TestRandomEdits_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := newSegments(t, 4096)
	_, err := s.InitCircleSegment(pt(0.5, 0.5), 0.3, segments.EvenAngles(12))
	require.NoError(t, err)
	_, err = s.InitLineSegment([]r2.Vec{pt(0.1, 0.1), pt(0.3, 0.12), pt(0.5, 0.1)}, true)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		edges := s.Edges()
		e := edges[rng.Intn(len(edges))]
		if rng.Intn(3) == 0 {
			err = s.CollapseEdgeNoMax(e)
		} else {
			_, err = s.SplitEdgeNoMin(e)
		}
		if err != nil {
			require.False(t, errors.Is(err, segments.ErrCapacityExceeded), "unexpected %v", err)
		}
		checkInvariants(t, s)
	}
}
