/*
Package crdttest certifies the algebraic laws a grow-only set must satisfy:
idempotent add, commutative, associative and idempotent merge, and
convergence under arbitrary snapshot delivery orders. The helpers are
exported so that consumers embedding the set can re-certify the laws
against their own element handling.
*/
package crdttest

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-fleet/fieldsync/comm"
	"github.com/go-fleet/fieldsync/crdt"
)

// Constants

// maxExhaustivePermutations bounds the number of snapshots for which every
// delivery order is checked. Above it, a randomized sample of orders is
// used instead, since the count of permutations grows factorially.
const maxExhaustivePermutations = 5

// permutationSamples is the number of randomized delivery orders checked
// for sequences above the exhaustive bound.
const permutationSamples = 64

// Functions

// sorted returns a sorted copy of a snapshot
// for order-insensitive comparison.
func sorted(elems []string) []string {

	out := append([]string(nil), elems...)
	sort.Strings(out)

	return out
}

// AssertIdempotentAdd adds e to s twice and asserts
// the second add changed nothing.
func AssertIdempotentAdd(t *testing.T, s *crdt.GSet[string], e string) {

	t.Helper()

	s.Add(e)
	size := s.Size()

	s.Add(e)

	assert.True(t, s.Lookup(e), "element must be present after add")
	assert.Equal(t, size, s.Size(), "adding a present element must not grow the set")
}

// AssertCommutativeMerge builds replicas from payloads a and b and asserts
// both merge directions converge on the same payload.
func AssertCommutativeMerge(t *testing.T, a []string, b []string) {

	t.Helper()

	ab := crdt.FromSnapshot(a)
	ab.Merge(crdt.FromSnapshot(b))

	ba := crdt.FromSnapshot(b)
	ba.Merge(crdt.FromSnapshot(a))

	assert.Equal(t, sorted(ab.Snapshot()), sorted(ba.Snapshot()), "merge must commute")
}

// AssertAssociativeMerge builds replicas from payloads a, b and c and
// asserts both groupings of the merges converge on the same payload.
func AssertAssociativeMerge(t *testing.T, a []string, b []string, c []string) {

	t.Helper()

	// (a merged with b) merged with c.
	left := crdt.FromSnapshot(a)
	left.Merge(crdt.FromSnapshot(b))
	left.Merge(crdt.FromSnapshot(c))

	// a merged with (b merged with c).
	bc := crdt.FromSnapshot(b)
	bc.Merge(crdt.FromSnapshot(c))

	right := crdt.FromSnapshot(a)
	right.Merge(bc)

	assert.Equal(t, sorted(left.Snapshot()), sorted(right.Snapshot()), "merge must associate")
}

// AssertIdempotentMerge builds a replica from the payload and asserts that
// merging it with itself, and with an identical but distinct replica,
// changes nothing.
func AssertIdempotentMerge(t *testing.T, elems []string) {

	t.Helper()

	s := crdt.FromSnapshot(elems)
	before := sorted(s.Snapshot())

	s.Merge(s)
	assert.Equal(t, before, sorted(s.Snapshot()), "merging a replica with itself must change nothing")

	s.Merge(crdt.FromSnapshot(elems))
	assert.Equal(t, before, sorted(s.Snapshot()), "merging an identical replica must change nothing")
}

// AssertConvergenceUnderPermutation applies the snapshots to fresh replicas
// in every delivery order, or in a randomized sample of orders for longer
// sequences, and asserts all replicas converge on an identical payload.
func AssertConvergenceUnderPermutation(t *testing.T, snapshots [][]string) {

	t.Helper()

	// Reference payload from applying the snapshots in given order.
	ref := crdt.InitGSet[string]()
	for _, snap := range snapshots {
		comm.SyncPair(ref, snap)
	}
	want := sorted(ref.Snapshot())

	apply := func(order []int) {

		replica := crdt.InitGSet[string]()
		for _, idx := range order {
			comm.SyncPair(replica, snapshots[idx])
		}

		assert.Equal(t, want, sorted(replica.Snapshot()),
			fmt.Sprintf("delivery order %v must converge to the same payload", order))
	}

	if len(snapshots) <= maxExhaustivePermutations {
		permutations(len(snapshots), apply)
		return
	}

	for i := 0; i < permutationSamples; i++ {
		apply(rand.Perm(len(snapshots)))
	}
}

// permutations invokes visit with every ordering of n indices.
func permutations(n int, visit func([]int)) {

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	var recurse func(k int)
	recurse = func(k int) {

		if k == n {
			visit(append([]int(nil), order...))
			return
		}

		for i := k; i < n; i++ {
			order[k], order[i] = order[i], order[k]
			recurse(k + 1)
			order[k], order[i] = order[i], order[k]
		}
	}

	recurse(0)
}
