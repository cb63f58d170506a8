// SPDX-License-Identifier: MIT
//
// File: edit.go
// Role: Structural edits: split, collapse, bulk split of long edges, and
//       anchoring a vertex. Every edit checks ids, lengths and capacity
//       before its first write.

package segments

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// SplitEdge replaces e = (v1, v2) by v1–m and v2–m, where m is a new active
// vertex at the midpoint inheriting v1's segment. Returns m.
//
// minLen > 0 turns the split into an assertion that e is at least minLen long.
//
// Errors:
//   - ErrInvalidEdge: e was never allocated.
//   - ErrEdgeNotFound (domain): e was deleted.
//   - ErrNoSegment (domain): v1 has no owning segment.
//   - ErrEdgeTooShort: minLen > 0 and |e| < minLen.
//   - ErrCapacityExceeded: no room for one vertex and two edges.
//
// Complexity: O(zone size).
func (s *Segments) SplitEdge(e EdgeID, minLen float64) (VertexID, error) {
	if !s.edgeInRange(e) {
		return NoVertex, segErrorf(ErrInvalidEdge, "e%d", e)
	}
	if !s.edgeExists(e) {
		s.logger.Debug("split skipped", "edge", e, "reason", ErrEdgeNotFound)
		return NoVertex, segErrorf(ErrEdgeNotFound, "e%d", e)
	}

	v1, v2 := s.edges[e][0], s.edges[e][1]
	seg := s.verts[v1].seg
	if seg < 0 {
		s.logger.Debug("split skipped", "edge", e, "vertex", v1, "reason", ErrNoSegment)
		return NoVertex, segErrorf(ErrNoSegment, "e%d v%d", e, v1)
	}

	p1, p2 := s.pos[v1], s.pos[v2]
	if minLen > 0 {
		if d2 := r2.Norm2(r2.Sub(p1, p2)); d2 < minLen*minLen {
			return NoVertex, segErrorf(ErrEdgeTooShort, "e%d len=%.4f min=%.4f", e, r2.Norm(r2.Sub(p1, p2)), minLen)
		}
	}
	if err := s.reserve(1, 2); err != nil {
		return NoVertex, err
	}

	mid := r2.Scale(0.5, r2.Add(p1, p2))
	m, err := s.addVertex(mid, Active, seg)
	if err != nil {
		return NoVertex, err
	}
	s.deleteEdge(e)
	if _, err := s.addEdge(v1, m); err != nil {
		return NoVertex, err
	}
	if _, err := s.addEdge(v2, m); err != nil {
		return NoVertex, err
	}
	return m, nil
}

// SplitEdgeNoMin splits e without a length assertion.
func (s *Segments) SplitEdgeNoMin(e EdgeID) (VertexID, error) {
	return s.SplitEdge(e, -1)
}

// CollapseEdge merges the endpoints of e = (v1, v2) into one vertex.
//
// v1 is removed and v2 moves to the midpoint of v1 and v2. The other edge of
// v1, e2 = (v1, v3), is replaced by v3–v2. When v1 is a chain end but v2 is
// not, the roles swap, so collapsing next to an endpoint keeps that endpoint.
//
// maxLen > 0 turns the collapse into an assertion that e is at most maxLen long.
//
// Errors:
//   - ErrInvalidEdge: e was never allocated.
//   - ErrEdgeNotFound (domain): e was deleted.
//   - ErrPassiveVertex: an endpoint is not active.
//   - ErrEdgeTooLong: maxLen > 0 and |e| > maxLen.
//   - ErrNotConnected: v1 and v2 are joined by a second edge (a two-vertex loop).
//
// Complexity: O(zone size).
func (s *Segments) CollapseEdge(e EdgeID, maxLen float64) error {
	if !s.edgeInRange(e) {
		return segErrorf(ErrInvalidEdge, "e%d", e)
	}
	if !s.edgeExists(e) {
		return segErrorf(ErrEdgeNotFound, "e%d", e)
	}

	v1, v2 := s.edges[e][0], s.edges[e][1]
	if s.verts[v1].status != Active {
		return segErrorf(ErrPassiveVertex, "e%d | *v%d* -> v%d", e, v1, v2)
	}
	if s.verts[v2].status != Active {
		return segErrorf(ErrPassiveVertex, "e%d | v%d -> *v%d*", e, v1, v2)
	}
	if maxLen > 0 {
		if d2 := r2.Norm2(r2.Sub(s.pos[v1], s.pos[v2])); d2 > maxLen*maxLen {
			return segErrorf(ErrEdgeTooLong, "e%d len=%.4f max=%.4f", e, r2.Norm(r2.Sub(s.pos[v1], s.pos[v2])), maxLen)
		}
	}

	if s.Degree(v1) < 2 && s.Degree(v2) == 2 {
		v1, v2 = v2, v1
	}
	e2 := s.otherEdge(v1, e)
	v3 := NoVertex
	if e2 != NoEdge {
		v3 = s.other(e2, v1)
		if v3 == v2 {
			return segErrorf(ErrNotConnected, "e%d and e%d both join v%d and v%d", e, e2, v1, v2)
		}
		if err := s.reserve(0, 1); err != nil {
			return err
		}
	}

	s.pos[v2] = r2.Scale(0.5, r2.Add(s.pos[v1], s.pos[v2]))
	s.zm.UpdateVertex(int(v2), s.pos[v2])

	s.deleteEdge(e)
	if e2 != NoEdge {
		s.deleteEdge(e2)
	}
	s.deleteVertex(v1)
	if v3 != NoVertex {
		if _, err := s.addEdge(v3, v2); err != nil {
			return err
		}
	}
	return nil
}

// CollapseEdgeNoMax collapses e without a length assertion.
func (s *Segments) CollapseEdgeNoMax(e EdgeID) error {
	return s.CollapseEdge(e, -1)
}

// SplitLongEdges splits every edge with at least one active endpoint that is
// longer than limit. Edges created by this call are not revisited.
// Returns the number of splits performed. Domain failures are skipped; the
// first contract error stops the scan.
// Complexity: O(ENum()).
func (s *Segments) SplitLongEdges(limit float64) (int, error) {
	n := len(s.edges)
	splits := 0
	for e := EdgeID(0); int(e) < n; e++ {
		if !s.edgeExists(e) {
			continue
		}
		v1, v2 := s.edges[e][0], s.edges[e][1]
		if s.verts[v1].status != Active && s.verts[v2].status != Active {
			continue
		}
		if r2.Norm(r2.Sub(s.pos[v1], s.pos[v2])) <= limit {
			continue
		}
		if _, err := s.SplitEdgeNoMin(e); err != nil {
			if errors.Is(err, ErrContractViolation) {
				return splits, err
			}
			continue
		}
		splits++
	}
	return splits, nil
}

// SetPassive anchors v so the solver no longer moves it.
// Errors: ErrInvalidVertex if v is not a live vertex.
func (s *Segments) SetPassive(v VertexID) error {
	if !s.vertexExists(v) {
		return segErrorf(ErrInvalidVertex, "v%d", v)
	}
	if s.verts[v].status == Active {
		s.active--
	}
	s.verts[v].status = Passive
	return nil
}
