package world

// aoiGrid is a cell-based broad-phase optimization layered under the
// pinned Euclidean interest test (spec §4.4 narrow-phase is exact
// EuclideanDistance < VisibilityRange; this grid only narrows the
// candidate set before that exact test runs, and never changes its
// result). Cell size covers a Chebyshev neighbourhood wide enough that
// the 17-tile Euclidean radius always falls inside the 3x3 block,
// grounded on the teacher's internal/world/aoi.go.
// Accessed only from the World router goroutine — no locks.
const aoiCellSize = 20

type aoiCellKey struct {
	mapID uint16
	cx    int32
	cy    int32
}

func aoiCellCoord(v int32) int32 {
	if v < 0 {
		return (v - aoiCellSize + 1) / aoiCellSize
	}
	return v / aoiCellSize
}

// aoiGrid tracks which objects occupy which cells, per map.
type aoiGrid struct {
	cells map[aoiCellKey]map[ObjectID]struct{}
}

func newAOIGrid() *aoiGrid {
	return &aoiGrid{cells: make(map[aoiCellKey]map[ObjectID]struct{})}
}

func (g *aoiGrid) key(loc Location) aoiCellKey {
	return aoiCellKey{mapID: loc.Map, cx: aoiCellCoord(int32(loc.X)), cy: aoiCellCoord(int32(loc.Y))}
}

func (g *aoiGrid) Add(id ObjectID, loc Location) {
	k := g.key(loc)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ObjectID]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

func (g *aoiGrid) Remove(id ObjectID, loc Location) {
	k := g.key(loc)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

func (g *aoiGrid) Move(id ObjectID, oldLoc, newLoc Location) {
	oldK := g.key(oldLoc)
	newK := g.key(newLoc)
	if oldK == newK {
		return
	}
	g.Remove(id, oldLoc)
	g.Add(id, newLoc)
}

// Nearby returns every object id in the 3x3 cell neighbourhood around loc.
// Callers must still apply the exact EuclideanDistance test before treating
// a candidate as observed.
func (g *aoiGrid) Nearby(loc Location) []ObjectID {
	cx := aoiCellCoord(int32(loc.X))
	cy := aoiCellCoord(int32(loc.Y))
	var result []ObjectID
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			k := aoiCellKey{mapID: loc.Map, cx: cx + dx, cy: cy + dy}
			for id := range g.cells[k] {
				result = append(result, id)
			}
		}
	}
	return result
}
