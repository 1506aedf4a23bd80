package service

import (
	"context"
	"errors"
	"time"

	"github.com/prnvtripathi/tract-us/model"
)

// ErrNotFound is returned when a contract does not exist or the owner
// does not match. Owner mismatches are deliberately indistinguishable
// from missing records.
var ErrNotFound = errors.New("contract not found")

// ListFilter narrows a contract listing. Zero values mean "no filter".
type ListFilter struct {
	OwnerID    string
	Status     string // exact match
	ClientName string // case-insensitive substring
	ID         string // exact match
	Page       int
	PageSize   int
}

// ContractUpdate carries the mutable contract fields; nil means unchanged
type ContractUpdate struct {
	ClientName *string
	Data       *string
	Status     *string
}

// ContractStore persists contract records. Listing is ordered newest
// first. Update and Delete are owner-scoped: an empty ownerID skips the
// ownership check.
type ContractStore interface {
	Create(ctx context.Context, contract *model.Contract) error
	GetByID(ctx context.Context, id string) (*model.Contract, error)
	List(ctx context.Context, filter ListFilter) ([]*model.Contract, int64, error)
	Update(ctx context.Context, id, ownerID string, fields ContractUpdate) (*model.Contract, error)
	UpdateAnalysis(ctx context.Context, id, ownerID string, analysis any) error
	Delete(ctx context.Context, id, ownerID string) error
	PurgeStaleDrafts(ctx context.Context, before time.Time) (int64, error)
}

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// NormalizePage applies the pagination defaults shared by all store
// implementations.
func NormalizePage(filter *ListFilter) {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
}
