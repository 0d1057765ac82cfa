package world

// MapDefinition is the static, content-loaded shape of a map (spec §3):
// dimensions and the multipliers/flags that tune spawn and drop behavior.
type MapDefinition struct {
	ID             uint16
	Name           string
	Width, Height  uint16
	Underwater     bool
	SpawnMultiplier float64
	DropMultiplier  float64
	NoPK           bool
}

// Map owns the live object registry and spatial index for one map id. The
// World router is the only goroutine that ever touches a Map's contents;
// there is no internal locking (spec §4.3: single-writer actor).
type Map struct {
	Def MapDefinition

	objects map[ObjectID]Object
	grid    *aoiGrid
}

func NewMap(def MapDefinition) *Map {
	return &Map{
		Def:     def,
		objects: make(map[ObjectID]Object),
		grid:    newAOIGrid(),
	}
}

func (m *Map) Put(obj Object) {
	m.objects[obj.ID()] = obj
	m.grid.Add(obj.ID(), obj.Location())
}

func (m *Map) Remove(id ObjectID) {
	obj, ok := m.objects[id]
	if !ok {
		return
	}
	m.grid.Remove(id, obj.Location())
	delete(m.objects, id)
}

func (m *Map) Get(id ObjectID) (Object, bool) {
	obj, ok := m.objects[id]
	return obj, ok
}

// Move relocates obj to loc, updating both the registry and the spatial
// index. The caller is responsible for running interest management after.
func (m *Map) Move(obj Object, loc Location) {
	old := obj.Location()
	obj.SetLocation(loc)
	m.grid.Move(obj.ID(), old, loc)
}

// Nearby returns every object within VisibilityRange of loc, using the
// grid for broad-phase candidates and the exact EuclideanDistance test
// for the narrow-phase cut (spec §4.4).
func (m *Map) Nearby(loc Location) []Object {
	var result []Object
	for _, id := range m.grid.Nearby(loc) {
		obj, ok := m.objects[id]
		if !ok {
			continue
		}
		if EuclideanDistance(loc, obj.Location()) < VisibilityRange {
			result = append(result, obj)
		}
	}
	return result
}

// All returns every object currently on the map, for operations that must
// scan the whole population (e.g. /who, server broadcast).
func (m *Map) All() []Object {
	result := make([]Object, 0, len(m.objects))
	for _, obj := range m.objects {
		result = append(result, obj)
	}
	return result
}

func (m *Map) Count() int { return len(m.objects) }
