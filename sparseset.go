package ecs

// alignment is the growth chunk size for the sparse array: sparse
// arrays grow in blocks rather than one entity index at a time.
const alignment = 256

const invalidIndex = -1

func nextAlignedCapacity(n int) int {
	if n%alignment == 0 {
		return n
	}
	return ((n / alignment) + 1) * alignment
}

// entitySet is a bare sparse set over entities: no component payload,
// just O(1) has/insert/erase and a dense, swap-and-pop-compacted
// iteration array. It backs the persistent-view index `I` and is the
// common core `Pool[T]` builds on for component storage (pool.go).
type entitySet struct {
	dense  []Entity
	sparse []int
}

func newEntitySet() *entitySet {
	sparse := make([]int, alignment)
	for i := range sparse {
		sparse[i] = invalidIndex
	}
	return &entitySet{
		dense:  make([]Entity, 0, alignment),
		sparse: sparse,
	}
}

func (s *entitySet) growSparse(index uint32) {
	if int(index) < len(s.sparse) {
		return
	}
	newSize := nextAlignedCapacity(int(index) + 1)
	newSparse := make([]int, newSize)
	for i := range newSparse {
		newSparse[i] = invalidIndex
	}
	copy(newSparse, s.sparse)
	s.sparse = newSparse
}

// Has reports whether e is a member, in O(1).
func (s *entitySet) Has(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(s.sparse) {
		return false
	}
	pos := s.sparse[idx]
	return pos != invalidIndex && pos < len(s.dense) && s.dense[pos] == e
}

// Insert appends e to the dense array. Requires !Has(e).
func (s *entitySet) Insert(e Entity) {
	idx := e.Index()
	s.growSparse(idx)
	pos := len(s.dense)
	s.dense = append(s.dense, e)
	s.sparse[idx] = pos
}

// Erase performs a swap-and-pop removal of e. No-op if e is absent.
func (s *entitySet) Erase(e Entity) {
	if !s.Has(e) {
		return
	}
	idx := e.Index()
	pos := s.sparse[idx]

	last := len(s.dense) - 1
	lastEntity := s.dense[last]

	s.dense[pos] = lastEntity
	s.sparse[lastEntity.Index()] = pos

	s.dense = s.dense[:last]
	s.sparse[idx] = invalidIndex
}

// Len returns the number of members.
func (s *entitySet) Len() int {
	return len(s.dense)
}

// At returns the entity at physical dense position i (append order,
// oldest surviving insert first). Presentation-order consumers should
// index via physicalIndex.
func (s *entitySet) At(i int) Entity {
	return s.dense[i]
}

// Data exposes the backing dense array in physical (append) order.
func (s *entitySet) Data() []Entity {
	return s.dense
}

// physicalIndex converts a presentation-order index (0 = most recently
// inserted survivor) into the physical array index backing it.
func physicalIndex(logical, size int) int {
	return size - 1 - logical
}
