package diffline

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"time"
)

// ErrBadConfig is returned by Config.Validate and New for unusable parameters.
var ErrBadConfig = errors.New("diffline: invalid config")

// Defaults for a 1000×1000 canvas, one unit = 1/1000 of the square.
const (
	DefaultMaxVertices       = 1_000_000
	DefaultNearL             = 0.002
	DefaultFarL              = 0.04
	DefaultZoneWidth         = DefaultFarL
	DefaultStep              = 0.0004
	DefaultGrowthLength      = DefaultNearL
	DefaultGrowthProbability = 0.001
	DefaultBoundaryMargin    = 3 * DefaultStep
)

// Config holds the solver parameters.
type Config struct {
	// MaxVertices is the vertex and edge capacity of the mesh (≥ 1).
	MaxVertices int `yaml:"max_vertices"`

	// ZoneWidth is the requested zone width. The grid gets round(1/ZoneWidth)
	// zones per axis; fewer than three disables the index.
	ZoneWidth float64 `yaml:"zone_width"`

	// NearL is the comfortable distance between linked vertices.
	NearL float64 `yaml:"near_l"`

	// FarL is the repulsion radius; it must not exceed the effective zone width.
	FarL float64 `yaml:"far_l"`

	// GrowthLength is the shortest edge that is a split candidate.
	GrowthLength float64 `yaml:"growth_length"`

	// GrowthProbability is the per-edge, per-step split probability in [0,1].
	GrowthProbability float64 `yaml:"growth_probability"`

	// BoundaryMargin is the distance to the border that ends the run.
	BoundaryMargin float64 `yaml:"boundary_margin"`

	// Seed seeds the growth RNG; 0 selects a fixed default.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the parameters of the reference 1000-unit canvas.
func DefaultConfig() Config {
	return Config{
		MaxVertices:       DefaultMaxVertices,
		ZoneWidth:         DefaultZoneWidth,
		NearL:             DefaultNearL,
		FarL:              DefaultFarL,
		GrowthLength:      DefaultGrowthLength,
		GrowthProbability: DefaultGrowthProbability,
		BoundaryMargin:    DefaultBoundaryMargin,
	}
}

// StepStats summarizes one completed Step.
type StepStats struct {
	Step           int           // 1-based step number
	Moved          int           // vertices displaced by relaxation
	Splits         int           // edges split by growth
	SoftFailures   int           // growth candidates that no longer existed
	Vertices       int           // live vertices after the step
	Edges          int           // live edges after the step
	ActiveVertices int           // active vertices after the step
	Safe           bool          // all vertices inside the boundary margin
	Duration       time.Duration // wall time of the step
}

// Observer receives the statistics of every completed Step.
// Implementations must not call back into the solver.
type Observer interface {
	ObserveStep(StepStats)
}

// NoopObserver discards all statistics.
type NoopObserver struct{}

// ObserveStep implements Observer.
func (NoopObserver) ObserveStep(StepStats) {}

// Option configures a DifferentialLine.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer Observer
	rng      *rand.Rand
}

// WithLogger sets the logger for the solver and its mesh.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers an observer called at the end of every Step.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithRand replaces the seeded growth RNG. The solver takes ownership of r.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

func defaultOptions() options {
	return options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: NoopObserver{},
	}
}
