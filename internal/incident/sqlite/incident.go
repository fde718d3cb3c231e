package sqlite

import (
	"errors"
	"fmt"

	incidentDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/incident"
	"github.com/joshwmy/record-management/internal/incident"
	"gorm.io/gorm"
)

// Repository implements incident.Repository on the local relational store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(inc *incident.Incident) error {
	row := toDataModel(inc)
	if err := r.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", incident.ErrDuplicate, inc.IncidentID)
		}
		return err
	}
	inc.ID = row.ID
	inc.CreatedAt = row.CreatedAt
	inc.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *Repository) CreateBatch(incs []*incident.Incident) error {
	if len(incs) == 0 {
		return nil
	}
	rows := make([]*incidentDatamodel.Incident, len(incs))
	for i, inc := range incs {
		rows[i] = toDataModel(inc)
	}
	if err := r.db.Create(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: batch contains an existing incident_id", incident.ErrDuplicate)
		}
		return err
	}
	for i, row := range rows {
		incs[i].ID = row.ID
	}
	return nil
}

func (r *Repository) GetByID(id int64) (*incident.Incident, error) {
	var row incidentDatamodel.Incident
	err := r.db.First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, incident.ErrNotFound
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *Repository) List(filter incident.Filter, limit, offset int) ([]*incident.Incident, error) {
	query := r.db.Model(&incidentDatamodel.Incident{})
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var rows []incidentDatamodel.Incident
	err := query.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	incs := make([]*incident.Incident, len(rows))
	for i := range rows {
		incs[i] = fromDataModel(&rows[i])
	}
	return incs, nil
}

func (r *Repository) Update(inc *incident.Incident) error {
	row := toDataModel(inc)
	res := r.db.Model(&incidentDatamodel.Incident{}).Where("id = ?", inc.ID).Updates(map[string]interface{}{
		"timestamp":   row.Timestamp,
		"severity":    row.Severity,
		"category":    row.Category,
		"status":      row.Status,
		"description": row.Description,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return incident.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	res := r.db.Delete(&incidentDatamodel.Incident{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return incident.ErrNotFound
	}
	return nil
}

func toDataModel(inc *incident.Incident) *incidentDatamodel.Incident {
	return &incidentDatamodel.Incident{
		ID:          inc.ID,
		IncidentID:  inc.IncidentID,
		Timestamp:   inc.Timestamp,
		Severity:    inc.Severity,
		Category:    inc.Category,
		Status:      inc.Status,
		Description: inc.Description,
		CreatedAt:   inc.CreatedAt,
		UpdatedAt:   inc.UpdatedAt,
	}
}

func fromDataModel(row *incidentDatamodel.Incident) *incident.Incident {
	return &incident.Incident{
		ID:          row.ID,
		IncidentID:  row.IncidentID,
		Timestamp:   row.Timestamp,
		Severity:    row.Severity,
		Category:    row.Category,
		Status:      row.Status,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
