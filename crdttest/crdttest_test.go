package crdttest

import (
	"fmt"
	"testing"

	"github.com/go-fleet/fieldsync/crdt"
)

// Functions

func TestIdempotentAdd(t *testing.T) {

	s := crdt.InitGSet[string]()

	AssertIdempotentAdd(t, s, "FIELD_A_SECTION_01")
	AssertIdempotentAdd(t, s, "FIELD_B_SECTION_07")
	AssertIdempotentAdd(t, s, "☕-NORTH-MEADOW-🚜")
}

func TestCommutativeMerge(t *testing.T) {

	AssertCommutativeMerge(t,
		[]string{"FIELD_A_SECTION_01", "FIELD_A_SECTION_02"},
		[]string{"FIELD_B_SECTION_07"},
	)

	// Overlapping payloads.
	AssertCommutativeMerge(t,
		[]string{"FIELD_A_SECTION_01", "FIELD_B_SECTION_07"},
		[]string{"FIELD_B_SECTION_07", "FIELD_C_SECTION_33"},
	)

	// One side empty.
	AssertCommutativeMerge(t,
		[]string{},
		[]string{"FIELD_A_SECTION_01"},
	)
}

func TestAssociativeMerge(t *testing.T) {

	AssertAssociativeMerge(t,
		[]string{"FIELD_A_SECTION_01"},
		[]string{"FIELD_B_SECTION_07"},
		[]string{"FIELD_C_SECTION_33"},
	)

	// Overlapping and empty payloads.
	AssertAssociativeMerge(t,
		[]string{"FIELD_A_SECTION_01", "FIELD_B_SECTION_07"},
		[]string{},
		[]string{"FIELD_B_SECTION_07", "FIELD_C_SECTION_33"},
	)
}

func TestIdempotentMerge(t *testing.T) {

	AssertIdempotentMerge(t, []string{})
	AssertIdempotentMerge(t, []string{"FIELD_A_SECTION_01"})
	AssertIdempotentMerge(t, []string{"FIELD_A_SECTION_01", "FIELD_B_SECTION_07", "FIELD_C_SECTION_33"})
}

func TestConvergenceUnderPermutation(t *testing.T) {

	// Small sequence including a duplicate snapshot,
	// checked over every delivery order.
	AssertConvergenceUnderPermutation(t, [][]string{
		{"FIELD_A_SECTION_01"},
		{"FIELD_B_SECTION_07"},
		{"FIELD_B_SECTION_07"},
		{"FIELD_C_SECTION_33", "FIELD_A_SECTION_01"},
	})
}

func TestConvergenceUnderPermutationSampled(t *testing.T) {

	// A sequence above the exhaustive bound, checked
	// over a randomized sample of delivery orders.
	snapshots := make([][]string, 0, 9)
	for i := 0; i < 9; i++ {
		snapshots = append(snapshots, []string{
			fmt.Sprintf("FIELD_A_SECTION_%02d", i),
			fmt.Sprintf("FIELD_B_SECTION_%02d", i%3),
		})
	}

	AssertConvergenceUnderPermutation(t, snapshots)
}
