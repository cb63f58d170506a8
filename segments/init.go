// SPDX-License-Identifier: MIT
//
// File: init.go
// Role: Seed initializers. Each call validates every point and the remaining
//       capacity before writing anything, so a failed call leaves the mesh
//       untouched, then allocates a new SegmentID.

package segments

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// InitLineSegment adds an open chain through pts. With lockEdges the first
// and last vertices are passive and the interior ones active; otherwise all
// are active.
//
// Errors: ErrTooFewPoints (< 2 points), ErrOutOfBounds, ErrCapacityExceeded.
// Complexity: O(len(pts)).
func (s *Segments) InitLineSegment(pts []r2.Vec, lockEdges bool) (SegmentID, error) {
	return s.initSegment(pts, false, func(i int) Status {
		if lockEdges && (i == 0 || i == len(pts)-1) {
			return Passive
		}
		return Active
	})
}

// InitPassiveLineSegment adds an open chain of passive vertices through pts.
func (s *Segments) InitPassiveLineSegment(pts []r2.Vec) (SegmentID, error) {
	return s.initSegment(pts, false, func(int) Status { return Passive })
}

// InitCircleSegment adds a closed loop of active vertices at
// center + radius·(cos θ, sin θ) for each angle θ, in order.
//
// Errors: ErrTooFewPoints (< 3 angles), ErrOutOfBounds, ErrCapacityExceeded.
func (s *Segments) InitCircleSegment(center r2.Vec, radius float64, angles []float64) (SegmentID, error) {
	return s.initSegment(circlePoints(center, radius, angles), true, func(int) Status { return Active })
}

// InitPassiveCircleSegment is InitCircleSegment with passive vertices.
func (s *Segments) InitPassiveCircleSegment(center r2.Vec, radius float64, angles []float64) (SegmentID, error) {
	return s.initSegment(circlePoints(center, radius, angles), true, func(int) Status { return Passive })
}

// InitShape adds the open chain described by sh, see InitLineSegment.
func (s *Segments) InitShape(sh Shape, lockEdges bool) (SegmentID, error) {
	return s.InitLineSegment(sh.Points(), lockEdges)
}

// EvenAngles returns n angles evenly spaced over one turn, starting at 0.
func EvenAngles(n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return angles
}

func circlePoints(center r2.Vec, radius float64, angles []float64) []r2.Vec {
	pts := make([]r2.Vec, len(angles))
	for i, theta := range angles {
		pts[i] = r2.Add(center, r2.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)})
	}
	return pts
}

func (s *Segments) initSegment(pts []r2.Vec, closed bool, status func(int) Status) (SegmentID, error) {
	minPts := 2
	if closed {
		minPts = 3
	}
	if len(pts) < minPts {
		return NoSegment, segErrorf(ErrTooFewPoints, "got %d, need %d", len(pts), minPts)
	}
	for i, p := range pts {
		if !validPoint(p) {
			return NoSegment, segErrorf(ErrOutOfBounds, "point %d (%g, %g)", i, p.X, p.Y)
		}
	}
	ne := len(pts) - 1
	if closed {
		ne++
	}
	if err := s.reserve(len(pts), ne); err != nil {
		return NoSegment, err
	}

	seg := SegmentID(s.sNum)
	first := VertexID(len(s.verts))
	for i, p := range pts {
		if _, err := s.addVertex(p, status(i), seg); err != nil {
			return NoSegment, err
		}
	}
	last := VertexID(len(s.verts) - 1)
	for v := first; v < last; v++ {
		if _, err := s.addEdge(v, v+1); err != nil {
			return NoSegment, err
		}
	}
	if closed {
		if _, err := s.addEdge(last, first); err != nil {
			return NoSegment, err
		}
	}

	s.sNum++
	return seg, nil
}
