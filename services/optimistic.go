package services

import (
	"sync"

	"github.com/google/uuid"
)

// OptimisticTracker reconciles local mutations applied ahead of server
// confirmation. A mutation is applied together with a rollback closure and
// keyed by a locally-unique correlation id; the caller later confirms it
// (dropping the rollback and running an optional commit step) or rejects it
// (running the rollback). Message send and appointment status updates share
// this one implementation.
type OptimisticTracker struct {
	mu      sync.Mutex
	reverts map[string]func()
}

// NewOptimisticTracker creates an empty tracker
func NewOptimisticTracker() *OptimisticTracker {
	return &OptimisticTracker{
		reverts: make(map[string]func()),
	}
}

// Apply registers the rollback, runs the local mutation and returns the
// correlation id. The mutation receives the id so it can tag the optimistic
// entry it creates.
func (t *OptimisticTracker) Apply(mutate func(correlationID string), revert func()) string {
	id := uuid.NewString()

	t.mu.Lock()
	t.reverts[id] = revert
	t.mu.Unlock()

	if mutate != nil {
		mutate(id)
	}
	return id
}

// Confirm discards the rollback for the given correlation id and runs the
// commit step, which replaces the optimistic entry with the authoritative
// server copy
func (t *OptimisticTracker) Confirm(correlationID string, commit func()) {
	t.mu.Lock()
	delete(t.reverts, correlationID)
	t.mu.Unlock()

	if commit != nil {
		commit()
	}
}

// Reject rolls the mutation back and forgets it
func (t *OptimisticTracker) Reject(correlationID string) {
	t.mu.Lock()
	revert := t.reverts[correlationID]
	delete(t.reverts, correlationID)
	t.mu.Unlock()

	if revert != nil {
		revert()
	}
}

// Pending returns the number of unreconciled mutations
func (t *OptimisticTracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.reverts)
}
