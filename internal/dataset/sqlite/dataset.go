package sqlite

import (
	"errors"
	"fmt"

	datasetDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/dataset"
	"github.com/joshwmy/record-management/internal/dataset"
	"gorm.io/gorm"
)

// Repository implements dataset.Repository on the local relational store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(d *dataset.Dataset) error {
	row := toDataModel(d)
	if err := r.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", dataset.ErrDuplicate, d.Name)
		}
		return err
	}
	d.ID = row.ID
	d.CreatedAt = row.CreatedAt
	d.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *Repository) CreateBatch(ds []*dataset.Dataset) error {
	if len(ds) == 0 {
		return nil
	}
	rows := make([]*datasetDatamodel.Dataset, len(ds))
	for i, d := range ds {
		rows[i] = toDataModel(d)
	}
	if err := r.db.Create(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: batch contains an existing dataset name", dataset.ErrDuplicate)
		}
		return err
	}
	for i, row := range rows {
		ds[i].ID = row.ID
	}
	return nil
}

func (r *Repository) GetByID(id int64) (*dataset.Dataset, error) {
	var row datasetDatamodel.Dataset
	err := r.db.First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dataset.ErrNotFound
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *Repository) List(filter dataset.Filter, limit, offset int) ([]*dataset.Dataset, error) {
	query := r.db.Model(&datasetDatamodel.Dataset{})
	if filter.UploadedBy != "" {
		query = query.Where("uploaded_by = ?", filter.UploadedBy)
	}

	var rows []datasetDatamodel.Dataset
	err := query.Order("upload_date DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ds := make([]*dataset.Dataset, len(rows))
	for i := range rows {
		ds[i] = fromDataModel(&rows[i])
	}
	return ds, nil
}

func (r *Repository) Update(d *dataset.Dataset) error {
	row := toDataModel(d)
	res := r.db.Model(&datasetDatamodel.Dataset{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
		"rows":        row.Rows,
		"columns":     row.Columns,
		"uploaded_by": row.UploadedBy,
		"upload_date": row.UploadDate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dataset.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	res := r.db.Delete(&datasetDatamodel.Dataset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dataset.ErrNotFound
	}
	return nil
}

func toDataModel(d *dataset.Dataset) *datasetDatamodel.Dataset {
	return &datasetDatamodel.Dataset{
		ID:         d.ID,
		Name:       d.Name,
		Rows:       d.Rows,
		Columns:    d.Columns,
		UploadedBy: d.UploadedBy,
		UploadDate: d.UploadDate,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func fromDataModel(row *datasetDatamodel.Dataset) *dataset.Dataset {
	return &dataset.Dataset{
		ID:         row.ID,
		Name:       row.Name,
		Rows:       row.Rows,
		Columns:    row.Columns,
		UploadedBy: row.UploadedBy,
		UploadDate: row.UploadDate,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
