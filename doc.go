// Package diffgrowth grows organic-looking curves in the unit square by
// differential growth: chains and loops of vertices that push unlinked
// neighbors away, pull linked neighbors together and split long edges.
//
// What is in the module?
//
//	zonemap/   – uniform nz×nz grid of vertex ids for fixed-radius neighbor queries
//	segments/  – capacity-bounded graph of paths and cycles (vertices, edges,
//	             split/collapse edits, ordered traversal), owns a zonemap
//	diffline/  – the solver: relaxation forces, probabilistic growth, Step
//	config/    – YAML description of solver parameters and seed shapes
//	metrics/   – Prometheus observer for solver steps
//	cmd/diffgrow – headless driver with pacing, metrics endpoint and edge dump
//
// Quick start:
//
//	d, _ := diffline.New(diffline.DefaultConfig())
//	_, _ = d.Segments().InitCircleSegment(r2.Vec{X: 0.5, Y: 0.5}, 0.05, segments.EvenAngles(20))
//	for {
//		ok, err := d.Step(diffline.DefaultStep)
//		if err != nil || !ok {
//			break
//		}
//	}
//	edges := d.Segments().EdgesCoordinates()
//
// Coordinates always live in [0,1]²; scale them to pixels in the renderer.
package diffgrowth
