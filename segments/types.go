// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Typed handles, vertex status, seed shapes and construction options.

package segments

import (
	"io"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

// VertexID is a dense vertex handle. Ids are never reused within one Segments,
// so a handle to a deleted vertex stays dead instead of aliasing a new one.
type VertexID int

// EdgeID is a dense edge handle with the same no-reuse guarantee as VertexID.
type EdgeID int

// SegmentID identifies the initializer call that created a vertex.
type SegmentID int

// Sentinel handles.
const (
	NoVertex  VertexID  = -1
	NoEdge    EdgeID    = -1
	NoSegment SegmentID = -1
)

// Status is the lifecycle state of a vertex.
type Status int8

const (
	// Deleted vertices are tombstones.
	Deleted Status = -1
	// Passive vertices are anchored: part of the graph, never moved by the solver.
	Passive Status = 0
	// Active vertices move under relaxation forces.
	Active Status = 1
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Deleted:
		return "deleted"
	case Passive:
		return "passive"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// vertex is the per-vertex node. Positions live in a separate slice so the
// zone map can read them without copying.
type vertex struct {
	status Status
	seg    SegmentID
	edges  [2]EdgeID // incident edges, NoEdge in unused slots; filled front first
}

// Shape is a polyline given as a start point followed by offsets, each
// relative to the previous point.
type Shape struct {
	Start   r2.Vec
	Offsets []r2.Vec
}

// Points returns the absolute points of the shape.
func (sh Shape) Points() []r2.Vec {
	pts := make([]r2.Vec, 0, len(sh.Offsets)+1)
	p := sh.Start
	pts = append(pts, p)
	for _, d := range sh.Offsets {
		p = r2.Add(p, d)
		pts = append(pts, p)
	}
	return pts
}

// Component is one connected piece of the mesh as an ordered vertex walk.
// Closed components repeat no vertex; the last vertex links back to the first.
type Component struct {
	Vertices []VertexID
	Closed   bool
}

// Option configures a Segments at construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for soft failures. A nil logger keeps the default,
// which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
