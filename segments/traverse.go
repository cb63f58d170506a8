// SPDX-License-Identifier: MIT
//
// File: traverse.go
// Role: Ordered walks over the path/cycle structure for renderers.
// Visited sets are roaring bitmaps keyed by id.

package segments

import (
	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// SortedVertices returns the vertices of the mesh in loop order, starting at
// an endpoint of the lowest live edge. An empty mesh yields nil.
//
// Errors: ErrNotSingleLoop (domain) when the mesh has an open chain or more
// than one component. Use Components for those meshes.
// Complexity: O(E) time, O(E) space.
func (s *Segments) SortedVertices() ([]VertexID, error) {
	start := NoEdge
	for e := range s.edges {
		if s.edgeExists(EdgeID(e)) {
			start = EdgeID(e)
			break
		}
	}
	if start == NoEdge {
		return nil, nil
	}

	seen := roaring.New()
	seen.Add(uint32(start))
	end, cur := s.edges[start][0], s.edges[start][1]
	out := make([]VertexID, 0, s.liveVerts)
	out = append(out, cur)

	for cur != end {
		next := NoEdge
		for _, e := range s.verts[cur].edges {
			if e != NoEdge && !seen.Contains(uint32(e)) {
				next = e
				break
			}
		}
		if next == NoEdge {
			return nil, segErrorf(ErrNotSingleLoop, "open end at v%d", cur)
		}
		seen.Add(uint32(next))
		cur = s.other(next, cur)
		out = append(out, cur)
	}

	if seen.GetCardinality() != uint64(s.liveEdges) {
		return nil, segErrorf(ErrNotSingleLoop, "loop covers %d of %d edges", seen.GetCardinality(), s.liveEdges)
	}
	if len(out) != s.liveVerts {
		return nil, segErrorf(ErrNotSingleLoop, "loop covers %d of %d vertices", len(out), s.liveVerts)
	}
	return out, nil
}

// SortedVertexCoordinates is SortedVertices mapped to positions.
func (s *Segments) SortedVertexCoordinates() ([]r2.Vec, error) {
	vs, err := s.SortedVertices()
	if err != nil {
		return nil, err
	}
	out := make([]r2.Vec, len(vs))
	for i, v := range vs {
		out[i] = s.pos[v]
	}
	return out, nil
}

// Components returns every connected piece of the mesh. Open chains come
// first, each walked from its lower-id end; closed loops follow, each
// starting at its lowest vertex id. Isolated vertices are one-vertex chains.
// Complexity: O(V + E).
func (s *Segments) Components() []Component {
	seen := roaring.New()
	var out []Component

	for v, n := range s.verts {
		if n.status == Deleted || seen.Contains(uint32(v)) || s.Degree(VertexID(v)) == 2 {
			continue
		}
		out = append(out, Component{Vertices: s.walk(VertexID(v), seen)})
	}
	for v, n := range s.verts {
		if n.status == Deleted || seen.Contains(uint32(v)) {
			continue
		}
		out = append(out, Component{Vertices: s.walk(VertexID(v), seen), Closed: true})
	}
	return out
}

// walk follows edges from start until it reaches a chain end or a vertex
// already in seen, marking every visited vertex.
func (s *Segments) walk(start VertexID, seen *roaring.Bitmap) []VertexID {
	out := []VertexID{start}
	seen.Add(uint32(start))
	cur, prev := start, NoEdge

	for {
		next := NoEdge
		for _, e := range s.verts[cur].edges {
			if e != NoEdge && e != prev {
				next = e
				break
			}
		}
		if next == NoEdge {
			return out
		}
		w := s.other(next, cur)
		if seen.Contains(uint32(w)) {
			return out
		}
		seen.Add(uint32(w))
		out = append(out, w)
		cur, prev = w, next
	}
}
