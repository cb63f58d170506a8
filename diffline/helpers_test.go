package diffline_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/diffgrowth/diffline"
	"github.com/katalvlaran/diffgrowth/segments"
)

func pt(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// testConfig is a small configuration on a 10×10 grid with growth disabled.
func testConfig() diffline.Config {
	return diffline.Config{
		MaxVertices:       256,
		ZoneWidth:         0.1,
		NearL:             0.02,
		FarL:              0.1,
		GrowthLength:      0.02,
		GrowthProbability: 0,
		BoundaryMargin:    0.01,
		Seed:              7,
	}
}

func newSolver(t *testing.T, cfg diffline.Config, opts ...diffline.Option) *diffline.DifferentialLine {
	t.Helper()
	d, err := diffline.New(cfg, opts...)
	require.NoError(t, err)
	return d
}

// requireInUnitSquare fails if any live vertex left [0,1]².
func requireInUnitSquare(t *testing.T, s *segments.Segments) {
	t.Helper()
	for _, p := range s.VertexCoordinates() {
		require.True(t, p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1, "vertex at %v", p)
	}
}

// recorder is an Observer that keeps every StepStats.
type recorder struct{ stats []diffline.StepStats }

func (r *recorder) ObserveStep(s diffline.StepStats) { r.stats = append(r.stats, s) }
