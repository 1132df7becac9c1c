package comm

import (
	"github.com/pkg/errors"

	"github.com/go-fleet/fieldsync/crdt"
)

// Functions

// SyncPair integrates the snapshot of a remote replica into the local set.
// A transient set is constructed from the received elements and merged into
// local, growing it by exactly the elements it has not seen yet. Applying
// the same snapshot again leaves local unchanged. SyncPair never fails.
func SyncPair(local *crdt.GSet[string], remote []string) {

	local.Merge(crdt.FromSnapshot(remote))
}

// SyncMany applies a sequence of decoded peer snapshots to the local set,
// one after the other. Because merging is commutative, associative and
// idempotent, neither the order of the sequence nor duplicate snapshots in
// it change the final payload. A malformed snapshot stops the run with a
// TypeMismatchError carrying its position; snapshots applied before the
// rejected one stay applied.
func SyncMany(local *crdt.GSet[string], snapshots [][]interface{}) error {

	for i, raw := range snapshots {

		elements, err := IngestSnapshot(raw)
		if err != nil {
			return errors.Wrapf(err, "rejecting snapshot %d", i)
		}

		SyncPair(local, elements)
	}

	return nil
}
