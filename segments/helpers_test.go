package segments_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/diffgrowth/segments"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pt(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// newSegments builds an empty mesh with a 10×10 zone grid.
func newSegments(t *testing.T, nMax int) *segments.Segments {
	t.Helper()
	s, err := segments.New(nMax, 0.1)
	require.NoError(t, err)
	return s
}

// totalLength sums the lengths of all live edges.
func totalLength(t *testing.T, s *segments.Segments) float64 {
	t.Helper()
	var l float64
	for _, e := range s.Edges() {
		el, err := s.EdgeLength(e)
		require.NoError(t, err)
		l += el
	}
	return l
}

// checkInvariants asserts the structural invariants of a mesh:
// bounds, degree ≤ 2, edge/vertex liveness, and a zone index with no
// false negatives against brute force.
func checkInvariants(t *testing.T, s *segments.Segments) {
	t.Helper()
	pos := s.Positions()

	var live []int
	for v := 0; v < s.VNum(); v++ {
		id := segments.VertexID(v)
		if s.Status(id) == segments.Deleted {
			continue
		}
		live = append(live, v)
		p := pos[v]
		require.True(t, p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1, "v%d at %v outside unit square", v, p)
		require.LessOrEqual(t, s.Degree(id), 2, "v%d degree", v)
	}
	for _, ev := range s.EdgesVertices() {
		require.NotEqual(t, segments.Deleted, s.Status(ev[0]))
		require.NotEqual(t, segments.Deleted, s.Status(ev[1]))
	}

	radius := 0.9 * s.ZoneWidth()
	var buf []int
	for _, v := range live {
		buf = s.SphereVertices(segments.VertexID(v), radius, buf)
		got := append([]int(nil), buf...)
		sort.Ints(got)

		var want []int
		for _, u := range live {
			if r2.Norm2(r2.Sub(pos[u], pos[v])) < radius*radius {
				want = append(want, u)
			}
		}
		require.Equal(t, want, got, "zone query for v%d", v)
	}
}
