// SPDX-License-Identifier: MIT
//
// File: query.go
// Role: Read-only geometry queries and bulk exports for renderers.
// Determinism: every export walks ids in ascending order.

package segments

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Position returns the coordinates of a live vertex.
// Errors: ErrInvalidVertex.
func (s *Segments) Position(v VertexID) (r2.Vec, error) {
	if !s.vertexExists(v) {
		return r2.Vec{}, segErrorf(ErrInvalidVertex, "v%d", v)
	}
	return s.pos[v], nil
}

// EdgeVertices returns the endpoints of e.
// Errors: ErrInvalidEdge (never allocated), ErrEdgeNotFound (deleted).
func (s *Segments) EdgeVertices(e EdgeID) ([2]VertexID, error) {
	if !s.edgeInRange(e) {
		return [2]VertexID{NoVertex, NoVertex}, segErrorf(ErrInvalidEdge, "e%d", e)
	}
	if !s.edgeExists(e) {
		return [2]VertexID{NoVertex, NoVertex}, segErrorf(ErrEdgeNotFound, "e%d", e)
	}
	return s.edges[e], nil
}

// EdgeLength returns the Euclidean length of e.
// Errors: as EdgeVertices.
func (s *Segments) EdgeLength(e EdgeID) (float64, error) {
	ev, err := s.EdgeVertices(e)
	if err != nil {
		return 0, err
	}
	return r2.Norm(r2.Sub(s.pos[ev[0]], s.pos[ev[1]])), nil
}

// Edges returns the ids of all live edges.
func (s *Segments) Edges() []EdgeID {
	out := make([]EdgeID, 0, s.liveEdges)
	for e := range s.edges {
		if s.edgeExists(EdgeID(e)) {
			out = append(out, EdgeID(e))
		}
	}
	return out
}

// EdgesVertices returns the endpoint pairs of all live edges.
func (s *Segments) EdgesVertices() [][2]VertexID {
	out := make([][2]VertexID, 0, s.liveEdges)
	for e, ev := range s.edges {
		if s.edgeExists(EdgeID(e)) {
			out = append(out, ev)
		}
	}
	return out
}

// EdgesCoordinates returns {x1, y1, x2, y2} for every live edge.
func (s *Segments) EdgesCoordinates() [][4]float64 {
	out := make([][4]float64, 0, s.liveEdges)
	for e, ev := range s.edges {
		if !s.edgeExists(EdgeID(e)) {
			continue
		}
		a, b := s.pos[ev[0]], s.pos[ev[1]]
		out = append(out, [4]float64{a.X, a.Y, b.X, b.Y})
	}
	return out
}

// VertexCoordinates returns the positions of all live vertices.
func (s *Segments) VertexCoordinates() []r2.Vec {
	out := make([]r2.Vec, 0, s.liveVerts)
	for v, n := range s.verts {
		if n.status != Deleted {
			out = append(out, s.pos[v])
		}
	}
	return out
}

// GreatestDistance returns the largest distance from p to any live vertex,
// or 0 for an empty mesh.
func (s *Segments) GreatestDistance(p r2.Vec) float64 {
	var best float64
	for v, n := range s.verts {
		if n.status == Deleted {
			continue
		}
		if d2 := r2.Norm2(r2.Sub(p, s.pos[v])); d2 > best {
			best = d2
		}
	}
	return math.Sqrt(best)
}

// SafeVertexPositions reports whether every live vertex lies in
// [margin, 1−margin] on both axes.
func (s *Segments) SafeVertexPositions(margin float64) bool {
	lo, hi := margin, 1-margin
	for v, n := range s.verts {
		if n.status == Deleted {
			continue
		}
		p := s.pos[v]
		if p.X < lo || p.X > hi || p.Y < lo || p.Y > hi {
			return false
		}
	}
	return true
}

// EdgeCurvature estimates the bending at e as the sum, over both
// neighboring edges, of half the absolute cross product with e. It is a
// discrete bend magnitude, not curvature in the differential sense.
//
// Errors:
//   - ErrInvalidEdge, ErrEdgeNotFound: as EdgeVertices.
//   - ErrNotConnected: an endpoint of e has no second edge.
//   - ErrNoCurvature: the estimate is not positive (collinear neighbors).
func (s *Segments) EdgeCurvature(e EdgeID) (float64, error) {
	ev, err := s.EdgeVertices(e)
	if err != nil {
		return 0, err
	}

	b := r2.Sub(s.pos[ev[0]], s.pos[ev[1]])
	var t float64
	for _, v := range ev {
		en := s.otherEdge(v, e)
		if en == NoEdge {
			return 0, segErrorf(ErrNotConnected, "e%d at v%d", e, v)
		}
		a := r2.Sub(s.pos[s.edges[en][0]], s.pos[s.edges[en][1]])
		t += math.Abs(r2.Cross(a, b)) / 2
	}
	if !(t > 0) {
		return 0, segErrorf(ErrNoCurvature, "e%d", e)
	}
	return t, nil
}
