package crdt

import (
	"sync"
)

// Structs

// GSet conforms to the specification of a state-based grow-only set defined
// by Shapiro, Preguiça, Baquero and Zawirski. It consists of comparable
// elements that can be added but never removed, its payload therefore grows
// monotonically. Element type is constrained to comparable values so that
// membership and union are well-defined.
type GSet[T comparable] struct {
	lock    *sync.RWMutex
	payload *store[T]
}

// Functions

// InitGSet returns an empty initialized new grow-only set.
func InitGSet[T comparable]() *GSet[T] {

	return &GSet[T]{
		lock:    new(sync.RWMutex),
		payload: newStore[T](),
	}
}

// FromSnapshot constructs a transient grow-only set holding the supplied
// snapshot elements. Duplicate entries collapse into one element. The merge
// protocol uses this to rebuild a peer's state from a received snapshot.
func FromSnapshot[T comparable](elems []T) *GSet[T] {

	s := InitGSet[T]()

	for _, e := range elems {
		s.payload.insert(e)
	}

	return s
}

// Lookup returns true if element e is present in the payload
// and false otherwise.
func (s *GSet[T]) Lookup(e T) bool {

	// Read-lock the set.
	s.lock.RLock()

	found := s.payload.contains(e)

	// Relieve read lock.
	s.lock.RUnlock()

	return found
}

// Size returns the number of distinct elements in the payload.
func (s *GSet[T]) Size() int {

	s.lock.RLock()

	num := s.payload.size()

	s.lock.RUnlock()

	return num
}

// Add inserts element e into the payload if it is absent. Adding an element
// that is already present leaves the payload unchanged, so repeated local
// events and replayed inputs are harmless. Add never fails for any valid
// element value.
func (s *GSet[T]) Add(e T) {

	// Write-lock the set.
	s.lock.Lock()

	s.payload.insert(e)

	// Relieve write lock.
	s.lock.Unlock()
}

// Merge computes the union of this set's payload and the payload of other
// and assigns the result to this set. Only the receiver is mutated, other
// is left unchanged. The resulting value is the same in whichever direction
// a merge between two sets is applied, and merging is also associative and
// idempotent. Merge never fails.
func (s *GSet[T]) Merge(other *GSet[T]) {

	// Merging a set with itself is the identity.
	if s == other {
		return
	}

	// Copy the remote payload under its read lock first, then
	// apply it under our write lock. Taking one lock at a time
	// keeps concurrent merges in both directions deadlock-free.
	other.lock.RLock()
	remote := newStore[T]()
	remote.union(other.payload)
	other.lock.RUnlock()

	s.lock.Lock()

	s.payload.union(remote)

	s.lock.Unlock()
}

// Snapshot returns a copy of the current payload in no particular order,
// suitable for serialization and transmission to peers. The copy is taken
// atomically and is independent of the set, later additions do not show up
// in an already taken snapshot.
func (s *GSet[T]) Snapshot() []T {

	s.lock.RLock()

	elems := s.payload.all()

	s.lock.RUnlock()

	return elems
}
