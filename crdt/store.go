package crdt

// Structs

// store is the deduplicated element container backing a GSet. It performs
// no synchronization itself, the owning GSet guards all access to it.
type store[T comparable] struct {
	elements map[T]struct{}
}

// Functions

// newStore returns an empty initialized element container.
func newStore[T comparable]() *store[T] {

	return &store[T]{
		elements: make(map[T]struct{}),
	}
}

// contains returns true if element e is present and false otherwise.
func (s *store[T]) contains(e T) bool {

	_, found := s.elements[e]

	return found
}

// size returns the number of distinct elements currently held.
func (s *store[T]) size() int {

	return len(s.elements)
}

// insert puts element e into the container. Inserting an element that is
// already present leaves the container unchanged.
func (s *store[T]) insert(e T) {

	s.elements[e] = struct{}{}
}

// union inserts every element of other into this container.
func (s *store[T]) union(other *store[T]) {

	for e := range other.elements {
		s.elements[e] = struct{}{}
	}
}

// all returns a copy of the current contents in no particular order.
func (s *store[T]) all() []T {

	elems := make([]T, 0, len(s.elements))

	for e := range s.elements {
		elems = append(elems, e)
	}

	return elems
}
