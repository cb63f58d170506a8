// Package config loads a simulation description from YAML: solver
// parameters, driver pacing and the seed shapes.
//
// Example:
//
//	simulation:
//	  max_vertices: 200000
//	  zone_width: 0.04
//	  near_l: 0.002
//	  far_l: 0.04
//	  growth_probability: 0.001
//	  step: 0.0004
//	  steps_per_second: 60
//	shapes:
//	  - kind: circle
//	    center: [0.5, 0.5]
//	    radius: 0.05
//	    count: 20
//	  - kind: passive_line
//	    points: [[0.1, 0.1], [0.9, 0.1]]
//
// Fields left out keep their Default values; a missing shapes list keeps the
// default seed circle. Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/diffgrowth/diffline"
	"github.com/katalvlaran/diffgrowth/segments"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid")

// Kind names a seed shape initializer.
type Kind string

const (
	KindLine          Kind = "line"
	KindPassiveLine   Kind = "passive_line"
	KindCircle        Kind = "circle"
	KindPassiveCircle Kind = "passive_circle"
	KindShape         Kind = "shape"
)

// Point is an (x, y) pair written as a two-element YAML sequence.
type Point [2]float64

// Vec converts p to a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p[0], Y: p[1]} }

// Shape is one seed polyline or circle.
//
// line, passive_line: Points (≥ 2); LockEdges anchors the ends of a line.
// circle, passive_circle: Center, Radius and either Angles (radians) or
// Count evenly spaced vertices.
// shape: Start plus Offsets, each relative to the previous point; LockEdges
// as for line.
type Shape struct {
	Kind      Kind      `yaml:"kind"`
	Points    []Point   `yaml:"points,omitempty"`
	LockEdges bool      `yaml:"lock_edges,omitempty"`
	Center    Point     `yaml:"center,omitempty"`
	Radius    float64   `yaml:"radius,omitempty"`
	Angles    []float64 `yaml:"angles,omitempty"`
	Count     int       `yaml:"count,omitempty"`
	Start     Point     `yaml:"start,omitempty"`
	Offsets   []Point   `yaml:"offsets,omitempty"`
}

// Simulation holds the solver parameters and how the driver steps them.
//
// Step           – displacement magnitude passed to every Step.
// MaxSteps       – stop after this many steps; 0 runs until unsafe.
// StepsPerSecond – pacing of the driver loop; 0 runs unpaced.
type Simulation struct {
	diffline.Config `yaml:",inline"`

	Step           float64 `yaml:"step"`
	MaxSteps       int     `yaml:"max_steps"`
	StepsPerSecond float64 `yaml:"steps_per_second"`
}

// Config is the root of a simulation file.
type Config struct {
	Simulation Simulation `yaml:"simulation"`
	Shapes     []Shape    `yaml:"shapes"`
}

// Default returns the reference parameters seeded with one small circle in
// the middle of the square.
func Default() Config {
	return Config{
		Simulation: Simulation{
			Config: diffline.DefaultConfig(),
			Step:   diffline.DefaultStep,
		},
		Shapes: []Shape{
			{Kind: KindCircle, Center: Point{0.5, 0.5}, Radius: 0.05, Count: 20},
		},
	}
}

// Load reads and parses the YAML file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default with strict field checking and validates
// the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the solver parameters, the pacing fields and that every
// shape carries the fields its kind needs. Point coordinates are checked
// later by the mesh initializers.
func (c Config) Validate() error {
	if err := c.Simulation.Config.Validate(); err != nil {
		return err
	}
	if !(c.Simulation.Step > 0) {
		return fmt.Errorf("%w: step %g", ErrInvalid, c.Simulation.Step)
	}
	if c.Simulation.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps %d", ErrInvalid, c.Simulation.MaxSteps)
	}
	if !(c.Simulation.StepsPerSecond >= 0) {
		return fmt.Errorf("%w: steps_per_second %g", ErrInvalid, c.Simulation.StepsPerSecond)
	}
	if len(c.Shapes) == 0 {
		return fmt.Errorf("%w: no shapes", ErrInvalid)
	}
	for i, sh := range c.Shapes {
		if err := sh.validate(); err != nil {
			return fmt.Errorf("%w: shapes[%d]: %w", ErrInvalid, i, err)
		}
	}
	return nil
}

func (sh Shape) validate() error {
	switch sh.Kind {
	case KindLine, KindPassiveLine:
		if len(sh.Points) < 2 {
			return fmt.Errorf("%s needs at least 2 points, got %d", sh.Kind, len(sh.Points))
		}
	case KindCircle, KindPassiveCircle:
		if !(sh.Radius > 0) {
			return fmt.Errorf("%s radius %g", sh.Kind, sh.Radius)
		}
		if len(sh.Angles) > 0 && sh.Count > 0 {
			return fmt.Errorf("%s sets both angles and count", sh.Kind)
		}
		if n := max(len(sh.Angles), sh.Count); n < 3 {
			return fmt.Errorf("%s needs at least 3 vertices, got %d", sh.Kind, n)
		}
	case KindShape:
		if len(sh.Offsets) < 1 {
			return errors.New("shape needs at least 1 offset")
		}
	default:
		return fmt.Errorf("unknown kind %q", sh.Kind)
	}
	return nil
}

// angles returns the explicit angles or Count evenly spaced ones.
func (sh Shape) angles() []float64 {
	if len(sh.Angles) > 0 {
		return sh.Angles
	}
	return segments.EvenAngles(sh.Count)
}

// Apply seeds s with every shape in order and returns the segment ids.
// It stops at the first failing shape; shapes before it stay in s.
func (c Config) Apply(s *segments.Segments) ([]segments.SegmentID, error) {
	ids := make([]segments.SegmentID, 0, len(c.Shapes))
	for i, sh := range c.Shapes {
		id, err := sh.apply(s)
		if err != nil {
			return ids, fmt.Errorf("config: shapes[%d] (%s): %w", i, sh.Kind, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (sh Shape) apply(s *segments.Segments) (segments.SegmentID, error) {
	switch sh.Kind {
	case KindLine:
		return s.InitLineSegment(vecs(sh.Points), sh.LockEdges)
	case KindPassiveLine:
		return s.InitPassiveLineSegment(vecs(sh.Points))
	case KindCircle:
		return s.InitCircleSegment(sh.Center.Vec(), sh.Radius, sh.angles())
	case KindPassiveCircle:
		return s.InitPassiveCircleSegment(sh.Center.Vec(), sh.Radius, sh.angles())
	case KindShape:
		return s.InitShape(segments.Shape{Start: sh.Start.Vec(), Offsets: vecs(sh.Offsets)}, sh.LockEdges)
	}
	return segments.NoSegment, fmt.Errorf("%w: unknown kind %q", ErrInvalid, sh.Kind)
}

func vecs(ps []Point) []r2.Vec {
	out := make([]r2.Vec, len(ps))
	for i, p := range ps {
		out[i] = p.Vec()
	}
	return out
}
