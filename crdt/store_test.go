package crdt

import (
	"testing"
)

// Functions

// TestStore executes a white-box unit test on the
// internal element container backing a GSet.
func TestStore(t *testing.T) {

	a := newStore[string]()
	b := newStore[string]()

	if a.size() != 0 {
		t.Fatalf("[crdt.TestStore] Expected fresh store to be empty but size() returned %d.\n", a.size())
	}

	a.insert(s1)
	a.insert(s1)
	a.insert(s2)

	if a.size() != 2 {
		t.Fatalf("[crdt.TestStore] Expected store size 2 after deduplicated inserts but size() returned %d.\n", a.size())
	}
	if a.contains(s1) != true {
		t.Fatalf("[crdt.TestStore] Expected '%s' to be in store but contains() returns false.\n", s1)
	}
	if a.contains(s3) == true {
		t.Fatalf("[crdt.TestStore] Expected '%s' not to be in store but contains() returns true.\n", s3)
	}

	b.insert(s2)
	b.insert(s3)

	// Union must deduplicate overlapping elements.
	a.union(b)

	if a.size() != 3 {
		t.Fatalf("[crdt.TestStore] Expected store size 3 after union but size() returned %d.\n", a.size())
	}
	if a.contains(s3) != true {
		t.Fatalf("[crdt.TestStore] Expected '%s' to be in store after union but contains() returns false.\n", s3)
	}

	// The union source must be left unchanged.
	if b.size() != 2 {
		t.Fatalf("[crdt.TestStore] Expected union source size 2 but size() returned %d.\n", b.size())
	}

	elems := a.all()
	if len(elems) != 3 {
		t.Fatalf("[crdt.TestStore] Expected all() to return 3 elements but got %d.\n", len(elems))
	}
}
