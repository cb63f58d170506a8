// SPDX-License-Identifier: MIT
//
// File: segments.go
// Role: Construction, storage primitives (add/delete vertex and edge) and
//       cheap unchecked accessors used by the solver's hot loop.
// Invariants:
//   - Every live vertex lies in [0,1]² and is indexed in the zone map at
//     the zone implied by its coordinates.
//   - Every vertex has at most two incident edges.
//   - No edge references a deleted vertex.
//   - len(pos) == len(verts) <= nMax and len(edges) <= nMax.

package segments

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/diffgrowth/zonemap"
)

// Segments is a capacity-bounded planar graph of paths and cycles in the unit
// square. It owns a zone map and keeps it in sync with vertex positions.
// It is not safe for concurrent use.
type Segments struct {
	nMax int

	pos   []r2.Vec
	verts []vertex
	edges [][2]VertexID

	liveVerts int
	liveEdges int
	active    int
	sNum      int

	zm     *zonemap.ZoneMap
	logger *slog.Logger
}

// New allocates a Segments holding at most nMax vertices and nMax edges.
// The zone grid gets round(1/zoneWidth) zones per axis; fewer than
// zonemap.MinZones disables spatial indexing (one zone).
//
// Errors: ErrBadArgument if nMax < 1 or zoneWidth is not positive.
// Complexity: O(nMax) memory reserved up front.
func New(nMax int, zoneWidth float64, opts ...Option) (*Segments, error) {
	if nMax < 1 {
		return nil, segErrorf(ErrBadArgument, "capacity %d", nMax)
	}
	if !(zoneWidth > 0) || math.IsInf(zoneWidth, 0) {
		return nil, segErrorf(ErrBadArgument, "zone width %g", zoneWidth)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	nz := int(math.Round(1 / zoneWidth))

	return &Segments{
		nMax:   nMax,
		pos:    make([]r2.Vec, 0, nMax),
		verts:  make([]vertex, 0, nMax),
		edges:  make([][2]VertexID, 0, nMax),
		zm:     zonemap.New(nz),
		logger: o.logger,
	}, nil
}

// Cap returns the vertex and edge capacity.
func (s *Segments) Cap() int { return s.nMax }

// ZoneWidth returns the effective zone width of the spatial index:
// 1/nz, or 1 when indexing is disabled.
func (s *Segments) ZoneWidth() float64 { return s.zm.ZoneWidth() }

// IndexDisabled reports whether the zone map is a single zone.
func (s *Segments) IndexDisabled() bool { return s.zm.Degenerate() }

// VNum returns the number of vertex ids ever allocated, deleted ones included.
func (s *Segments) VNum() int { return len(s.verts) }

// ENum returns the number of edge ids ever allocated, deleted ones included.
func (s *Segments) ENum() int { return len(s.edges) }

// VertexCount returns the number of live vertices.
func (s *Segments) VertexCount() int { return s.liveVerts }

// EdgeCount returns the number of live edges.
func (s *Segments) EdgeCount() int { return s.liveEdges }

// ActiveVertexCount returns the number of active vertices.
func (s *Segments) ActiveVertexCount() int { return s.active }

// SegmentCount returns the number of initializer calls that succeeded.
func (s *Segments) SegmentCount() int { return s.sNum }

// Positions exposes the position slice indexed by VertexID. Deleted vertices
// keep their last position. The slice is shared: callers must not modify it.
func (s *Segments) Positions() []r2.Vec { return s.pos }

// Status returns the status of v, or Deleted for an id that was never allocated.
func (s *Segments) Status(v VertexID) Status {
	if !s.vertexInRange(v) {
		return Deleted
	}
	return s.verts[v].status
}

// Segment returns the owning segment of v, or NoSegment.
func (s *Segments) Segment(v VertexID) SegmentID {
	if !s.vertexInRange(v) {
		return NoSegment
	}
	return s.verts[v].seg
}

// Degree returns the number of live edges incident to v.
func (s *Segments) Degree(v VertexID) int {
	if !s.vertexInRange(v) {
		return 0
	}
	n := 0
	for _, e := range s.verts[v].edges {
		if e != NoEdge {
			n++
		}
	}
	return n
}

// IncidentEdges returns the incident edge slots of v; unused slots hold NoEdge.
func (s *Segments) IncidentEdges(v VertexID) [2]EdgeID {
	if !s.vertexInRange(v) {
		return [2]EdgeID{NoEdge, NoEdge}
	}
	return s.verts[v].edges
}

// Neighbors returns the vertices linked to v by an edge; unused slots hold NoVertex.
func (s *Segments) Neighbors(v VertexID) [2]VertexID {
	out := [2]VertexID{NoVertex, NoVertex}
	for i, e := range s.IncidentEdges(v) {
		if e != NoEdge {
			out[i] = s.other(e, v)
		}
	}
	return out
}

// SphereVertices appends to out[:0] the ids of all live vertices closer than
// radius to v, v included. radius must not exceed ZoneWidth().
func (s *Segments) SphereVertices(v VertexID, radius float64, out []int) []int {
	return s.zm.SphereVertices(int(v), s.pos, radius, out)
}

// MaxSphereCount bounds the length of any SphereVertices result.
func (s *Segments) MaxSphereCount() int { return s.zm.MaxSphereCount() }

// ApplyDisplacements moves every active vertex v by disp[v], clamped to the
// unit square, then reindexes the moved vertices. Entries beyond len(disp)
// and non-active vertices are left alone. Returns the number of moved vertices.
//
// Positions are all written before any zone is touched, so callers can
// compute disp from one consistent snapshot.
// Complexity: O(VNum()).
func (s *Segments) ApplyDisplacements(disp []r2.Vec) int {
	n := min(len(disp), len(s.verts))
	moved := 0
	for v := 0; v < n; v++ {
		if s.verts[v].status != Active || disp[v] == (r2.Vec{}) {
			continue
		}
		s.pos[v] = clampUnit(r2.Add(s.pos[v], disp[v]))
		moved++
	}
	for v := 0; v < n; v++ {
		if s.verts[v].status != Active || disp[v] == (r2.Vec{}) {
			continue
		}
		s.zm.UpdateVertex(v, s.pos[v])
	}
	return moved
}

//----------------------------------------------------------------------------//
// Storage primitives
//----------------------------------------------------------------------------//

func (s *Segments) vertexInRange(v VertexID) bool {
	return v >= 0 && int(v) < len(s.verts)
}

func (s *Segments) edgeInRange(e EdgeID) bool {
	return e >= 0 && int(e) < len(s.edges)
}

func (s *Segments) vertexExists(v VertexID) bool {
	return s.vertexInRange(v) && s.verts[v].status != Deleted
}

func (s *Segments) edgeExists(e EdgeID) bool {
	return s.edgeInRange(e) && s.edges[e][0] != NoVertex && s.edges[e][1] != NoVertex
}

// other returns the endpoint of e that is not v.
func (s *Segments) other(e EdgeID, v VertexID) VertexID {
	if s.edges[e][0] == v {
		return s.edges[e][1]
	}
	return s.edges[e][0]
}

// otherEdge returns the incident edge of v that is not e, or NoEdge.
func (s *Segments) otherEdge(v VertexID, e EdgeID) EdgeID {
	slots := s.verts[v].edges
	if slots[0] == e {
		return slots[1]
	}
	return slots[0]
}

// reserve fails unless nv vertices and ne edges can still be created.
func (s *Segments) reserve(nv, ne int) error {
	if len(s.verts)+nv > s.nMax {
		return segErrorf(ErrCapacityExceeded, "need %d more vertices, %d of %d used", nv, len(s.verts), s.nMax)
	}
	if len(s.edges)+ne > s.nMax {
		return segErrorf(ErrCapacityExceeded, "need %d more edges, %d of %d used", ne, len(s.edges), s.nMax)
	}
	return nil
}

func validPoint(p r2.Vec) bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

func clampUnit(p r2.Vec) r2.Vec {
	return r2.Vec{X: min(max(p.X, 0), 1), Y: min(max(p.Y, 0), 1)}
}

func (s *Segments) addVertex(p r2.Vec, status Status, seg SegmentID) (VertexID, error) {
	if !validPoint(p) {
		return NoVertex, segErrorf(ErrOutOfBounds, "(%g, %g)", p.X, p.Y)
	}
	if err := s.reserve(1, 0); err != nil {
		return NoVertex, err
	}

	v := VertexID(len(s.verts))
	s.pos = append(s.pos, p)
	s.verts = append(s.verts, vertex{status: status, seg: seg, edges: [2]EdgeID{NoEdge, NoEdge}})
	s.zm.AddVertex(int(v), s.pos)

	s.liveVerts++
	if status == Active {
		s.active++
	}
	return v, nil
}

// deleteVertex tombstones v. Its edges must already be gone.
func (s *Segments) deleteVertex(v VertexID) {
	if s.verts[v].status == Active {
		s.active--
	}
	s.verts[v].status = Deleted
	s.liveVerts--
	s.zm.DeleteVertex(int(v))
}

// addEdge connects a and b and returns the new edge id.
func (s *Segments) addEdge(a, b VertexID) (EdgeID, error) {
	if !s.vertexExists(a) || !s.vertexExists(b) || a == b {
		return NoEdge, segErrorf(ErrInvalidVertex, "edge v%d -> v%d", a, b)
	}
	if s.Degree(a) >= 2 {
		return NoEdge, segErrorf(ErrDegreeExceeded, "v%d", a)
	}
	if s.Degree(b) >= 2 {
		return NoEdge, segErrorf(ErrDegreeExceeded, "v%d", b)
	}
	if err := s.reserve(0, 1); err != nil {
		return NoEdge, err
	}

	e := EdgeID(len(s.edges))
	s.edges = append(s.edges, [2]VertexID{a, b})
	s.attach(a, e)
	s.attach(b, e)
	s.liveEdges++
	return e, nil
}

func (s *Segments) attach(v VertexID, e EdgeID) {
	slots := &s.verts[v].edges
	if slots[0] == NoEdge {
		slots[0] = e
	} else {
		slots[1] = e
	}
}

func (s *Segments) detach(v VertexID, e EdgeID) {
	slots := &s.verts[v].edges
	if slots[0] == e {
		slots[0] = slots[1]
		slots[1] = NoEdge
	} else if slots[1] == e {
		slots[1] = NoEdge
	}
}

// deleteEdge tombstones e and removes it from both endpoints.
func (s *Segments) deleteEdge(e EdgeID) {
	a, b := s.edges[e][0], s.edges[e][1]
	s.edges[e] = [2]VertexID{NoVertex, NoVertex}
	if a != NoVertex {
		s.detach(a, e)
	}
	if b != NoVertex {
		s.detach(b, e)
	}
	s.liveEdges--
}
