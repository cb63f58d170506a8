// Package segments stores the growing curves of a differential-growth run as
// a capacity-bounded planar graph in the unit square.
//
// The graph G = (V,E) is a union of simple paths and cycles: every vertex has
// at most two incident edges. Storage is a set of flat arenas indexed by
// typed handles (VertexID, EdgeID) reserved up front for nMax entries. Deleted
// entries are tombstoned and their ids are never handed out again.
//
// Vertex status:
//
//	Active   moved by the solver
//	Passive  anchored; still part of the graph and still repels neighbors
//	Deleted  tombstone
//
// Seeding:
//
//	InitLineSegment(pts, lockEdges)     open chain; lockEdges anchors both ends
//	InitPassiveLineSegment(pts)         open chain, all anchored
//	InitCircleSegment(c, r, angles)     closed loop
//	InitPassiveCircleSegment(c, r, a)   closed loop, all anchored
//	InitShape(shape, lockEdges)         open chain from start + relative offsets
//
// Structural edits:
//
//	SplitEdge / SplitEdgeNoMin          insert a vertex at an edge midpoint
//	CollapseEdge / CollapseEdgeNoMax    merge two active neighbors
//	SplitLongEdges(limit)               split every edge longer than limit
//
// Spatial index:
//
// Segments owns a zonemap.ZoneMap and updates it on every vertex creation,
// deletion and move. Neighbor queries go through SphereVertices; their radius
// must not exceed ZoneWidth().
//
// Errors:
//
// Caller bugs (bad ids, points outside the unit square, length assertions,
// exhausted capacity) wrap ErrContractViolation. Expected outcomes of a
// changing mesh (ErrEdgeNotFound, ErrNoSegment, ErrNotSingleLoop) do not and
// can be skipped. Nothing in this package panics on bad input.
//
// Concurrency:
//
// None. A Segments has a single writer; readers must not overlap with edits.
package segments
