package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prnvtripathi/tract-us/model"
	"github.com/prnvtripathi/tract-us/service"
	"gorm.io/gorm"
)

// ContractRepo implements service.ContractStore on PostgreSQL.
type ContractRepo struct {
	db *gorm.DB
}

func NewContractRepo(db *gorm.DB) *ContractRepo {
	return &ContractRepo{db: db}
}

func (r *ContractRepo) Create(ctx context.Context, contract *model.Contract) error {
	now := time.Now()
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = now
	}
	contract.UpdatedAt = now

	row, err := toRow(contract)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *ContractRepo) GetByID(ctx context.Context, id string) (*model.Contract, error) {
	var row contractRow
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRow(&row), nil
}

func (r *ContractRepo) List(ctx context.Context, filter service.ListFilter) ([]*model.Contract, int64, error) {
	service.NormalizePage(&filter)

	tx := r.db.WithContext(ctx).Model(&contractRow{})
	if filter.OwnerID != "" {
		tx = tx.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ID != "" {
		tx = tx.Where("id = ?", filter.ID)
	}
	if filter.ClientName != "" {
		tx = tx.Where("client_name ILIKE ?", "%"+filter.ClientName+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []contractRow
	err := tx.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	contracts := make([]*model.Contract, 0, len(rows))
	for i := range rows {
		contracts = append(contracts, fromRow(&rows[i]))
	}
	return contracts, total, nil
}

// scoped narrows a query to (id, ownerID); an empty ownerID skips the
// ownership check.
func (r *ContractRepo) scoped(ctx context.Context, id, ownerID string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&contractRow{}).Where("id = ?", id)
	if ownerID != "" {
		tx = tx.Where("owner_id = ?", ownerID)
	}
	return tx
}

func (r *ContractRepo) Update(ctx context.Context, id, ownerID string, fields service.ContractUpdate) (*model.Contract, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if fields.ClientName != nil {
		updates["client_name"] = *fields.ClientName
	}
	if fields.Data != nil {
		updates["data"] = *fields.Data
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}

	result := r.scoped(ctx, id, ownerID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, service.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ContractRepo) UpdateAnalysis(ctx context.Context, id, ownerID string, analysis any) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	result := r.scoped(ctx, id, ownerID).Updates(map[string]any{
		"analysis":   data,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *ContractRepo) Delete(ctx context.Context, id, ownerID string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != "" {
		tx = tx.Where("owner_id = ?", ownerID)
	}

	result := tx.Delete(&contractRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// PurgeStaleDrafts deletes DRAFT contracts created before the cutoff that
// never received an analysis result.
func (r *ContractRepo) PurgeStaleDrafts(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND analysis IS NULL AND created_at < ?", model.StatusDraft, before).
		Delete(&contractRow{})
	return result.RowsAffected, result.Error
}
