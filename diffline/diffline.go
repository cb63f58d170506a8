package diffline

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/diffgrowth/segments"
)

// DifferentialLine owns a mesh and the scratch buffers of the solver.
type DifferentialLine struct {
	cfg Config
	seg *segments.Segments

	disp []r2.Vec // per-vertex displacement, indexed by VertexID
	near []int    // zone query buffer, sized from MaxSphereCount

	rng      *rand.Rand
	logger   *slog.Logger
	observer Observer

	steps int
	last  StepStats
}

// New validates cfg and allocates the mesh and scratch buffers for
// cfg.MaxVertices vertices.
//
// Errors: ErrBadConfig.
// Complexity: O(MaxVertices) memory.
func New(cfg Config, opts ...Option) (*DifferentialLine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rngFromSeed(cfg.Seed)
	}

	seg, err := segments.New(cfg.MaxVertices, cfg.ZoneWidth, segments.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}

	return &DifferentialLine{
		cfg:      cfg,
		seg:      seg,
		disp:     make([]r2.Vec, 0, cfg.MaxVertices),
		rng:      o.rng,
		logger:   o.logger,
		observer: o.observer,
	}, nil
}

// NewWithDistances builds a solver from the four construction parameters,
// taking everything else from DefaultConfig.
func NewWithDistances(maxVertices int, zoneWidth, nearL, farL float64, opts ...Option) (*DifferentialLine, error) {
	cfg := DefaultConfig()
	cfg.MaxVertices = maxVertices
	cfg.ZoneWidth = zoneWidth
	cfg.NearL = nearL
	cfg.FarL = farL
	cfg.GrowthLength = nearL
	return New(cfg, opts...)
}

// Segments returns the owned mesh for seeding and reads.
func (d *DifferentialLine) Segments() *segments.Segments { return d.seg }

// Config returns the validated parameters.
func (d *DifferentialLine) Config() Config { return d.cfg }

// Steps returns the number of completed steps.
func (d *DifferentialLine) Steps() int { return d.steps }

// LastStats returns the statistics of the most recent Step.
func (d *DifferentialLine) LastStats() StepStats { return d.last }

// OptimizePosition runs one relaxation pass and returns the number of
// vertices moved. Only active vertices move; passive ones still repel.
//
// Complexity: O(V·k) where k is the number of vertices in a 3×3 zone block.
func (d *DifferentialLine) OptimizePosition(step float64) int {
	s := d.seg
	pos := s.Positions()
	n := s.VNum()
	d.disp = d.disp[:n]
	clear(d.disp)
	if m := s.MaxSphereCount(); cap(d.near) < m {
		d.near = make([]int, 0, m)
	}

	for v := 0; v < n; v++ {
		id := segments.VertexID(v)
		if s.Status(id) != segments.Active {
			continue
		}
		linked := s.Neighbors(id)
		d.near = s.SphereVertices(id, d.cfg.FarL, d.near)

		var acc r2.Vec
		for _, u := range d.near {
			if u == v {
				continue
			}
			delta := r2.Sub(pos[v], pos[u])
			dist := r2.Norm(delta)
			if !(dist > 0) {
				continue
			}
			if uid := segments.VertexID(u); uid == linked[0] || uid == linked[1] {
				if f := Attraction(step, dist, d.cfg.NearL); f != 0 {
					acc = r2.Add(acc, r2.Scale(-f/dist, delta))
				}
				continue
			}
			if f := Repulsion(step, dist, d.cfg.FarL); f != 0 {
				acc = r2.Add(acc, r2.Scale(f/dist, delta))
			}
		}
		d.disp[v] = acc
	}

	return s.ApplyDisplacements(d.disp)
}

// Grow runs one growth scan and returns the number of edges split.
//
// Errors: contract errors from the mesh, typically
// segments.ErrCapacityExceeded. Splits done before the error stay.
func (d *DifferentialLine) Grow() (int, error) {
	splits, _, err := d.grow()
	return splits, err
}

func (d *DifferentialLine) grow() (splits, soft int, err error) {
	s := d.seg
	n := s.ENum()
	for e := 0; e < n; e++ {
		if d.rng.Float64() >= d.cfg.GrowthProbability {
			continue
		}
		id := segments.EdgeID(e)
		l, err := s.EdgeLength(id)
		if err == nil && l < d.cfg.GrowthLength {
			continue
		}
		if err == nil {
			_, err = s.SplitEdgeNoMin(id)
		}
		if err != nil {
			if errors.Is(err, segments.ErrContractViolation) {
				return splits, soft, err
			}
			soft++
			continue
		}
		splits++
	}
	if soft > 0 {
		d.logger.Debug("growth skipped stale edges", slog.Int("soft_failures", soft))
	}
	return splits, soft, nil
}

// Step advances the simulation by one tick: relaxation, growth and the
// boundary check. It returns false once a vertex has come within
// BoundaryMargin of the border; the caller should stop stepping.
//
// Errors: contract errors from growth. The step is then incomplete and
// the returned bool is false.
func (d *DifferentialLine) Step(step float64) (bool, error) {
	start := time.Now()

	moved := d.OptimizePosition(step)
	splits, soft, err := d.grow()
	if err != nil {
		return false, fmt.Errorf("diffline: step %d: %w", d.steps+1, err)
	}
	safe := d.seg.SafeVertexPositions(d.cfg.BoundaryMargin)

	d.steps++
	d.last = StepStats{
		Step:           d.steps,
		Moved:          moved,
		Splits:         splits,
		SoftFailures:   soft,
		Vertices:       d.seg.VertexCount(),
		Edges:          d.seg.EdgeCount(),
		ActiveVertices: d.seg.ActiveVertexCount(),
		Safe:           safe,
		Duration:       time.Since(start),
	}
	d.observer.ObserveStep(d.last)

	if !safe {
		d.logger.Info("mesh reached boundary margin",
			slog.Int("step", d.steps),
			slog.Int("vertices", d.last.Vertices),
			slog.Float64("margin", d.cfg.BoundaryMargin))
	}
	return safe, nil
}
