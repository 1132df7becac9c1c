/*
Package comm implements the snapshot exchange between fieldsync agents: the
merge protocol integrating received peer snapshots into the local set, the
line-based wire format snapshots travel in, and the sender and receiver pair
moving them between agents over TCP or TLS connections.

Delivery needs neither ordering nor deduplication guarantees. Because merging
a grow-only set is commutative, associative and idempotent, a snapshot that
arrives late, twice or out of order converges to the same payload as one that
arrives cleanly, so the transport can simply resend full state on every round.
*/
package comm
