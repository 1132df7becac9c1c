/*
Package crdt implements the state-based grow-only set (G-Set) structure upon
which fieldsync's fleet state synchronization is built.

The G-Set supports only additions. Replicas held by independent field units
converge by exchanging payload snapshots and merging them, which computes the
set union. Merging is commutative, associative and idempotent, so delivery
order, duplication and retransmission of snapshots never change the final
payload. That property is what makes the structure safe over the intermittent
links between units in the field.

A GSet synchronizes access to its payload internally, so a background sync
routine may take snapshots while the owning unit keeps adding elements. A
snapshot always reflects the payload before or after a concurrent mutation,
never a torn intermediate state.

The state-based G-Set implementation of this package is a practical derivation
from its specification by Shapiro, Preguiça, Baquero and Zawirski, available
under: https://hal.inria.fr/inria-00555588/document
*/
package crdt
