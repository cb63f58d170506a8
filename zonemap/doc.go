// Package zonemap partitions the unit square into a uniform grid of zones
// and answers fixed-radius neighbor queries over vertices stored in it.
//
// What:
//
//   - ZoneMap splits [0,1]×[0,1] into NZ×NZ square cells ("zones").
//   - Every indexed vertex lives in exactly one zone, chosen from its
//     coordinates as (floor(x·NZ), floor(y·NZ)).
//   - SphereVertices scans the 3×3 block of zones around a vertex and keeps
//     the candidates strictly closer than the query radius.
//
// Ownership:
//
//   - ZoneMap never stores coordinates. Callers pass their own position
//     slice (indexed by vertex id) into AddVertex and SphereVertices, and
//     must call UpdateVertex after every coordinate change. A stale zone
//     silently drops or over-reports neighbors.
//
// Precondition:
//
//   - The query radius must not exceed one zone width (1/NZ). Larger radii
//     miss vertices two or more zones away.
//
// Degenerate mode:
//
//   - New(nz) with nz < 3 builds a single 1×1 zone. Every query then scans
//     all indexed vertices, which is correct for any radius but O(n).
//
// Complexity:
//
//   - AddVertex, DeleteVertex, UpdateVertex: O(1) amortized (swap-remove).
//   - SphereVertices: O(k) where k is the occupancy of the 9 scanned zones.
package zonemap
