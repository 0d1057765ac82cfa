package world

import "math"

// Location is (x, y, map, direction). Direction is in [0,7], diagonals
// included: 0=N, 1=NE, 2=E, 3=SE, 4=S, 5=SW, 6=W, 7=NW.
type Location struct {
	X, Y      uint16
	Map       uint16
	Direction uint8
}

// headingDeltas is the direction-to-delta table for single-tile movement.
var headingDeltas = [8][2]int32{
	{0, -1},  // 0 N
	{1, -1},  // 1 NE
	{1, 0},   // 2 E
	{1, 1},   // 3 SE
	{0, 1},   // 4 S
	{-1, 1},  // 5 SW
	{-1, 0},  // 6 W
	{-1, -1}, // 7 NW
}

// Step returns the location one tile in the given heading. The caller is
// responsible for bounds-checking against the map before committing it.
func (l Location) Step(heading uint8) Location {
	d := headingDeltas[heading&7]
	return Location{
		X:         uint16(int32(l.X) + d[0]),
		Y:         uint16(int32(l.Y) + d[1]),
		Map:       l.Map,
		Direction: heading & 7,
	}
}

// EuclideanDistance is the linear distance the interest-management
// algorithm tests against the 17-tile visibility threshold (spec §3/§4.4).
func EuclideanDistance(a, b Location) float64 {
	dx := float64(int32(a.X) - int32(b.X))
	dy := float64(int32(a.Y) - int32(b.Y))
	return math.Sqrt(dx*dx + dy*dy)
}

// VisibilityRange is the strict Euclidean threshold: objects are mutually
// visible only while their distance is < VisibilityRange.
const VisibilityRange = 17.0
