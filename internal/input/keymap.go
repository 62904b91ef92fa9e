package input

type codePair struct {
	native uint16
	vc     uint16
}

// keyTable is a bidirectional native/virtual code table. When several native codes map
// to one virtual code, the first listed is used for the reverse direction.
type keyTable struct {
	toVC     map[uint16]uint16
	toNative map[uint16]uint16
}

func newKeyTable(pairs []codePair) keyTable {
	t := keyTable{
		toVC:     make(map[uint16]uint16, len(pairs)),
		toNative: make(map[uint16]uint16, len(pairs)),
	}
	for _, p := range pairs {
		if _, ok := t.toVC[p.native]; !ok {
			t.toVC[p.native] = p.vc
		}
		if _, ok := t.toNative[p.vc]; !ok {
			t.toNative[p.vc] = p.native
		}
	}
	return t
}

func (t keyTable) vc(native uint16) (uint16, bool) {
	vc, ok := t.toVC[native]
	return vc, ok
}

func (t keyTable) native(vc uint16) (uint16, bool) {
	n, ok := t.toNative[vc]
	return n, ok
}
