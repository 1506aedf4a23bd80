package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prnvtripathi/tract-us/model"
)

// MemoryStore is an in-memory ContractStore. It is the default driver for
// development and tests; production deployments use the postgres driver.
type MemoryStore struct {
	contracts    map[string]*model.Contract
	mu           sync.RWMutex
	maxContracts int // maximum contracts to keep, 0 = unlimited
}

// NewMemoryStore creates a MemoryStore keeping at most maxContracts
// records (0 = unlimited).
func NewMemoryStore(maxContracts int) *MemoryStore {
	if maxContracts < 0 {
		maxContracts = 0
	}
	return &MemoryStore{
		contracts:    make(map[string]*model.Contract),
		maxContracts: maxContracts,
	}
}

func (s *MemoryStore) Create(ctx context.Context, contract *model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = now
	}
	contract.UpdatedAt = now

	stored := *contract
	s.contracts[contract.ID] = &stored

	s.cleanupIfNeeded()
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *MemoryStore) List(ctx context.Context, filter ListFilter) ([]*model.Contract, int64, error) {
	NormalizePage(&filter)

	s.mu.RLock()
	var matched []*model.Contract
	for _, c := range s.contracts {
		if !matches(c, filter) {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}
	s.mu.RUnlock()

	// Newest first
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return []*model.Contract{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matches(c *model.Contract, filter ListFilter) bool {
	if filter.OwnerID != "" && c.OwnerID != filter.OwnerID {
		return false
	}
	if filter.Status != "" && c.Status != filter.Status {
		return false
	}
	if filter.ID != "" && c.ID != filter.ID {
		return false
	}
	if filter.ClientName != "" &&
		!strings.Contains(strings.ToLower(c.ClientName), strings.ToLower(filter.ClientName)) {
		return false
	}
	return true
}

func (s *MemoryStore) Update(ctx context.Context, id, ownerID string, fields ContractUpdate) (*model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[id]
	if !ok || (ownerID != "" && c.OwnerID != ownerID) {
		return nil, ErrNotFound
	}

	if fields.ClientName != nil {
		c.ClientName = *fields.ClientName
	}
	if fields.Data != nil {
		c.Data = *fields.Data
	}
	if fields.Status != nil {
		c.Status = *fields.Status
	}
	c.UpdatedAt = time.Now()

	copied := *c
	return &copied, nil
}

func (s *MemoryStore) UpdateAnalysis(ctx context.Context, id, ownerID string, analysis any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[id]
	if !ok || (ownerID != "" && c.OwnerID != ownerID) {
		return ErrNotFound
	}

	c.Analysis = analysis
	c.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[id]
	if !ok || (ownerID != "" && c.OwnerID != ownerID) {
		return ErrNotFound
	}

	delete(s.contracts, id)
	return nil
}

// PurgeStaleDrafts deletes DRAFT contracts created before the cutoff that
// never received an analysis result.
func (s *MemoryStore) PurgeStaleDrafts(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for id, c := range s.contracts {
		if c.Status == model.StatusDraft && c.Analysis == nil && c.CreatedAt.Before(before) {
			delete(s.contracts, id)
			purged++
		}
	}
	return purged, nil
}

// Count returns the number of contracts in the store
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}

// cleanupIfNeeded removes oldest contracts if store exceeds maxContracts
// Must be called with lock held
func (s *MemoryStore) cleanupIfNeeded() {
	if s.maxContracts <= 0 {
		return // Unlimited
	}

	if len(s.contracts) <= s.maxContracts {
		return
	}

	contracts := make([]*model.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].CreatedAt.Before(contracts[j].CreatedAt)
	})

	removeCount := len(contracts) - s.maxContracts
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old contract",
			"contract_id", contracts[i].ID,
			"created_at", contracts[i].CreatedAt,
		)
		delete(s.contracts, contracts[i].ID)
	}
}
