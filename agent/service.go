package agent

import (
	"github.com/go-fleet/fieldsync/comm"
	"github.com/go-fleet/fieldsync/crdt"
)

// Service defines the local coordination surface a field unit provides on
// top of its replicated section set. Exactly one unit owns a given service;
// peers influence it only through Apply with their snapshots.
type Service interface {

	// Record marks a field section as completed by this unit.
	// Recording the same section twice is harmless.
	Record(section string)

	// Completed reports whether a section was completed by this
	// unit or by any unit it has synchronized with.
	Completed(section string) bool

	// Sections returns a copy of all sections known to be completed.
	Sections() []string

	// Size returns the number of distinct completed sections.
	Size() int

	// Apply integrates a snapshot received from a peer.
	Apply(remote []string)

	// Set exposes the underlying replicated set for wiring
	// into the snapshot exchange layer.
	Set() *crdt.GSet[string]
}

type service struct {
	name string
	set  *crdt.GSet[string]
}

// NewService takes in the unit's agent name and returns a service owning a
// fresh replicated section set.
func NewService(name string) Service {

	return &service{
		name: name,
		set:  crdt.InitGSet[string](),
	}
}

func (s *service) Record(section string) {
	s.set.Add(section)
}

func (s *service) Completed(section string) bool {
	return s.set.Lookup(section)
}

func (s *service) Sections() []string {
	return s.set.Snapshot()
}

func (s *service) Size() int {
	return s.set.Size()
}

func (s *service) Apply(remote []string) {
	comm.SyncPair(s.set, remote)
}

func (s *service) Set() *crdt.GSet[string] {
	return s.set
}
