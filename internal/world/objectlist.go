package world

// ObjectList is a known-set: the objects a particular observer currently
// sees. It is rebuilt from scratch on every movement tick and diffed
// against its previous contents (spec §4.4).
type ObjectList map[ObjectID]Object

func NewObjectList() ObjectList { return make(ObjectList) }

// Diff compares the receiver (the previous known set) against next (the
// freshly computed observed set) and returns the objects that newly
// entered view and the ids that left it. The receiver is left unmodified;
// callers replace their stored set with next after consuming the diff.
func (prev ObjectList) Diff(next ObjectList) (added []Object, removed []ObjectID) {
	for id, obj := range next {
		if _, ok := prev[id]; !ok {
			added = append(added, obj)
		}
	}
	for id := range prev {
		if _, ok := next[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
