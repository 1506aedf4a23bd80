package postgres

import (
	"encoding/json"
	"time"

	"github.com/prnvtripathi/tract-us/model"
)

// contractRow is the contracts table layout. IDs are UUIDs assigned by the
// application, not database sequences.
type contractRow struct {
	ID         string `gorm:"column:id;primaryKey;type:uuid"`
	ClientName string `gorm:"column:client_name;type:varchar(255);index"`
	Data       string `gorm:"column:data;type:text"`
	Status     string `gorm:"column:status;type:varchar(20);index"`
	FileURL    string `gorm:"column:file_url;type:text"`
	Analysis   []byte `gorm:"column:analysis;type:jsonb"`
	OwnerID    string `gorm:"column:owner_id;type:varchar(64);index"`

	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (contractRow) TableName() string {
	return "contracts"
}

func toRow(c *model.Contract) (*contractRow, error) {
	row := &contractRow{
		ID:         c.ID,
		ClientName: c.ClientName,
		Data:       c.Data,
		Status:     c.Status,
		FileURL:    c.FileURL,
		OwnerID:    c.OwnerID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	if c.Analysis != nil {
		data, err := json.Marshal(c.Analysis)
		if err != nil {
			return nil, err
		}
		row.Analysis = data
	}

	return row, nil
}

func fromRow(row *contractRow) *model.Contract {
	c := &model.Contract{
		ID:         row.ID,
		ClientName: row.ClientName,
		Data:       row.Data,
		Status:     row.Status,
		FileURL:    row.FileURL,
		OwnerID:    row.OwnerID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}

	if len(row.Analysis) > 0 {
		var analysis any
		if err := json.Unmarshal(row.Analysis, &analysis); err == nil {
			c.Analysis = analysis
		}
	}

	return c
}
