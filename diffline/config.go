package diffline

import (
	"fmt"
	"math"

	"github.com/katalvlaran/diffgrowth/zonemap"
)

// zoneTol absorbs rounding in 1/round(1/ZoneWidth) when comparing with FarL.
const zoneTol = 1e-12

// Validate checks the parameters in the order they are used.
//
// Contract:
//   - MaxVertices ≥ 1; ZoneWidth, NearL, FarL, GrowthLength > 0 and finite.
//   - NearL < FarL.
//   - FarL ≤ effective zone width unless the grid is degenerate, so that a
//     FarL query never misses a vertex outside the 3×3 block.
//   - GrowthProbability ∈ [0,1]; BoundaryMargin ∈ [0, 0.5).
//
// Errors: ErrBadConfig wrapped with the offending field.
// Complexity: O(1).
func (c Config) Validate() error {
	if c.MaxVertices < 1 {
		return fmt.Errorf("%w: max_vertices %d", ErrBadConfig, c.MaxVertices)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"zone_width", c.ZoneWidth},
		{"near_l", c.NearL},
		{"far_l", c.FarL},
		{"growth_length", c.GrowthLength},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %g", ErrBadConfig, f.name, f.v)
		}
	}
	if c.NearL >= c.FarL {
		return fmt.Errorf("%w: near_l %g ≥ far_l %g", ErrBadConfig, c.NearL, c.FarL)
	}
	if w := c.EffectiveZoneWidth(); w < 1 && c.FarL > w+zoneTol {
		return fmt.Errorf("%w: far_l %g exceeds zone width %g", ErrBadConfig, c.FarL, w)
	}
	if !(c.GrowthProbability >= 0 && c.GrowthProbability <= 1) {
		return fmt.Errorf("%w: growth_probability %g", ErrBadConfig, c.GrowthProbability)
	}
	if !(c.BoundaryMargin >= 0 && c.BoundaryMargin < 0.5) {
		return fmt.Errorf("%w: boundary_margin %g", ErrBadConfig, c.BoundaryMargin)
	}
	return nil
}

// EffectiveZoneWidth is the zone width the mesh will actually use:
// 1/round(1/ZoneWidth), or 1 when that gives fewer than zonemap.MinZones.
func (c Config) EffectiveZoneWidth() float64 {
	nz := int(math.Round(1 / c.ZoneWidth))
	if nz < zonemap.MinZones {
		return 1
	}
	return 1 / float64(nz)
}
