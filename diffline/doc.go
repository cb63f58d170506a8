// Package diffline is the differential-growth solver: it owns one
// segments.Segments and advances it in discrete steps.
//
// One Step(step) performs:
//
//  1. Relaxation (OptimizePosition). For every active vertex v the solver
//     queries the zone index for vertices closer than FarL and accumulates
//     a displacement from pre-step positions only:
//     – linked neighbor at distance d > NearL: attraction of magnitude step
//     toward the neighbor;
//     – unlinked vertex at 0 < d ≤ FarL: repulsion of magnitude
//     step·d·(FarL/d − 1) away from it, zero at d = FarL.
//     Displacements are then applied and the zone index updated, in that
//     order, so no vertex sees a neighbor that already moved this step.
//  2. Growth (Grow). Every edge that existed at the start of the scan is a
//     split candidate with probability GrowthProbability; accepted edges of
//     length ≥ GrowthLength are split at their midpoint. Edges removed
//     earlier in the same scan are skipped and counted as soft failures.
//  3. Safety. The step reports false once any live vertex is closer than
//     BoundaryMargin to the border of the unit square; the driver should stop.
//
// Determinism:
//
// Growth draws from a math/rand source seeded by Config.Seed (0 selects a
// fixed default seed). Same seed and same seeding calls give the same mesh.
//
// Errors:
//
// New returns ErrBadConfig for an invalid Config. Step and Grow return only
// contract errors from segments (typically ErrCapacityExceeded); soft split
// failures are absorbed.
//
// Concurrency:
//
// A DifferentialLine is single-threaded. Do not read its Segments while a
// Step is in flight.
package diffline
