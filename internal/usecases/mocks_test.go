package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"smart-upi.backend/internal/domain/entities"
	domainRepos "smart-upi.backend/internal/domain/repositories"
)

// memStateStore is an in-memory StateStore. It serializes snapshots through
// JSON like the real stores do, so saved state is decoupled from the
// engine's live slices.
type memStateStore struct {
	mu       sync.Mutex
	saved    []byte
	purged   bool
	failSave bool
	failLoad bool
	saves    int
}

func newMemStateStore() *memStateStore {
	return &memStateStore{}
}

func (s *memStateStore) Load(ctx context.Context) (*domainRepos.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failLoad {
		return nil, errors.New("load failure")
	}
	state := domainRepos.NewLedgerState()
	if s.saved == nil {
		return state, nil
	}
	if err := json.Unmarshal(s.saved, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *memStateStore) Save(ctx context.Context, state *domainRepos.LedgerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSave {
		return errors.New("save failure")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.saved = raw
	s.purged = false
	s.saves++
	return nil
}

func (s *memStateStore) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saved = nil
	s.purged = true
	return nil
}

func (s *memStateStore) seed(state *domainRepos.LedgerState) {
	raw, _ := json.Marshal(state)
	s.mu.Lock()
	s.saved = raw
	s.mu.Unlock()
}

// fakeScheduler records scheduled settlements instead of running them.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []scheduledTask
}

type scheduledTask struct {
	attemptID uuid.UUID
	delay     time.Duration
}

func (f *fakeScheduler) Schedule(attemptID uuid.UUID, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, scheduledTask{attemptID: attemptID, delay: delay})
}

func (f *fakeScheduler) ids() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uuid.UUID, 0, len(f.scheduled))
	for _, t := range f.scheduled {
		out = append(out, t.attemptID)
	}
	return out
}

// fixedDecider always returns the configured outcome.
type fixedDecider struct {
	success bool
}

func (d *fixedDecider) Decide(_ *entities.UPIAttempt) bool {
	return d.success
}
