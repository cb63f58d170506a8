package zonemap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinZones is the smallest grid resolution that is not treated as degenerate.
const MinZones = 3

// noZone marks a vertex id that is not currently indexed.
const noZone = -1

// zone holds the ids of the vertices currently mapped to one grid cell.
// Order is not significant; removal swaps the last id into the hole.
type zone struct {
	vertices []int
}

// ZoneMap is a uniform grid index over the unit square.
// It is not safe for concurrent use.
type ZoneMap struct {
	nz      int
	zones   []zone
	vz      []int // vertex id -> zone index, noZone if absent
	count   int
	maxSize int
}

// New builds a ZoneMap with nz×nz zones. Values of nz below MinZones
// collapse the grid to a single zone (see Degenerate).
// Complexity: O(nz²).
func New(nz int) *ZoneMap {
	if nz < MinZones {
		nz = 1
	}

	return &ZoneMap{
		nz:    nz,
		zones: make([]zone, nz*nz),
	}
}

// NZ returns the number of zones along each axis.
func (zm *ZoneMap) NZ() int {
	return zm.nz
}

// Degenerate reports whether the grid is a single zone.
func (zm *ZoneMap) Degenerate() bool {
	return zm.nz == 1
}

// ZoneWidth returns the side length of one zone.
func (zm *ZoneMap) ZoneWidth() float64 {
	return 1 / float64(zm.nz)
}

// Len returns the number of indexed vertices.
func (zm *ZoneMap) Len() int {
	return zm.count
}

// CellOf returns the (i, j) zone coordinate of p. Coordinates on the
// upper boundary (x or y == 1) fold into the last zone.
// Complexity: O(1).
func (zm *ZoneMap) CellOf(p r2.Vec) (i, j int) {
	return zm.axis(p.X), zm.axis(p.Y)
}

func (zm *ZoneMap) axis(c float64) int {
	k := int(math.Floor(c * float64(zm.nz)))
	if k < 0 {
		return 0
	}
	if k >= zm.nz {
		return zm.nz - 1
	}
	return k
}

// index maps a zone coordinate to its row-major slot: i*nz + j.
func (zm *ZoneMap) index(i, j int) int {
	return i*zm.nz + j
}

// Coordinate converts a zone slot back to (i, j).
func (zm *ZoneMap) Coordinate(z int) (i, j int) {
	return z / zm.nz, z % zm.nz
}

func (zm *ZoneMap) zoneOf(p r2.Vec) int {
	return zm.index(zm.CellOf(p))
}

// Zone returns the zone slot a vertex is recorded in.
func (zm *ZoneMap) Zone(v int) (int, bool) {
	if v < 0 || v >= len(zm.vz) || zm.vz[v] == noZone {
		return noZone, false
	}
	return zm.vz[v], true
}

// AddVertex indexes vertex v at the zone implied by pos[v].
// Adding a vertex that is already indexed moves it instead.
// Complexity: O(1) amortized.
func (zm *ZoneMap) AddVertex(v int, pos []r2.Vec) {
	for len(zm.vz) <= v {
		zm.vz = append(zm.vz, noZone)
	}
	if zm.vz[v] != noZone {
		zm.UpdateVertex(v, pos[v])
		return
	}

	z := zm.zoneOf(pos[v])
	zm.addToZone(z, v)
	zm.vz[v] = z
	zm.count++
}

// DeleteVertex removes v from its zone. Unknown or already removed ids
// are ignored.
// Complexity: O(zone size) to locate v, O(1) to remove it.
func (zm *ZoneMap) DeleteVertex(v int) {
	z, ok := zm.Zone(v)
	if !ok {
		return
	}
	zm.removeFromZone(z, v)
	zm.vz[v] = noZone
	zm.count--
}

// UpdateVertex moves v to the zone implied by p. It is a no-op when the
// zone does not change or when v is not indexed.
// Complexity: O(1) when unchanged, otherwise as DeleteVertex.
func (zm *ZoneMap) UpdateVertex(v int, p r2.Vec) {
	old, ok := zm.Zone(v)
	if !ok {
		return
	}

	z := zm.zoneOf(p)
	if z == old {
		return
	}
	zm.removeFromZone(old, v)
	zm.addToZone(z, v)
	zm.vz[v] = z
}

func (zm *ZoneMap) addToZone(z, v int) {
	sz := &zm.zones[z]
	sz.vertices = append(sz.vertices, v)
	if len(sz.vertices) > zm.maxSize {
		zm.maxSize = len(sz.vertices)
	}
}

func (zm *ZoneMap) removeFromZone(z, v int) {
	sz := &zm.zones[z]
	last := len(sz.vertices) - 1
	for i, u := range sz.vertices {
		if u == v {
			sz.vertices[i] = sz.vertices[last]
			sz.vertices = sz.vertices[:last]
			return
		}
	}
}

// MaxSphereCount is an upper bound on the number of ids SphereVertices can
// return: nine times the largest zone occupancy ever observed.
func (zm *ZoneMap) MaxSphereCount() int {
	return 9 * zm.maxSize
}

// SphereVertices appends to out[:0] every indexed vertex u with
// |pos[u] − pos[v]| < radius, scanning the zone of v and its 8 neighbors.
// v itself is included when indexed; callers filter it.
//
// radius must not exceed ZoneWidth() unless the map is degenerate.
// Complexity: O(k) for k vertices in the scanned zones.
func (zm *ZoneMap) SphereVertices(v int, pos []r2.Vec, radius float64, out []int) []int {
	out = out[:0]
	p := pos[v]
	zi, zj := zm.CellOf(p)
	rad2 := radius * radius

	for i := max(zi-1, 0); i < min(zi+2, zm.nz); i++ {
		for j := max(zj-1, 0); j < min(zj+2, zm.nz); j++ {
			for _, u := range zm.zones[zm.index(i, j)].vertices {
				if r2.Norm2(r2.Sub(p, pos[u])) < rad2 {
					out = append(out, u)
				}
			}
		}
	}
	return out
}
