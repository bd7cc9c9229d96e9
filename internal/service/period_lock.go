package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// periodLocks serializes read-compute-write bill generation per
// (household, month, year) within this process. The unique constraint on the
// bills table remains the backstop across processes.
type periodLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPeriodLocks() *periodLocks {
	return &periodLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire blocks until the period lock is held and returns the release func.
func (p *periodLocks) acquire(householdID uuid.UUID, month, year int) func() {
	key := fmt.Sprintf("%s:%04d-%02d", householdID, year, month)

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &sync.Mutex{}
		p.locks[key] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
