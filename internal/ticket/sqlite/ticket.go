package sqlite

import (
	"errors"
	"fmt"

	ticketDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/ticket"
	"github.com/joshwmy/record-management/internal/ticket"
	"gorm.io/gorm"
)

// Repository implements ticket.Repository on the local relational store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(t *ticket.Ticket) error {
	row := toDataModel(t)
	if err := r.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ticket.ErrDuplicate, t.TicketID)
		}
		return err
	}
	t.ID = row.ID
	t.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *Repository) CreateBatch(ts []*ticket.Ticket) error {
	if len(ts) == 0 {
		return nil
	}
	rows := make([]*ticketDatamodel.Ticket, len(ts))
	for i, t := range ts {
		rows[i] = toDataModel(t)
	}
	if err := r.db.Create(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: batch contains an existing ticket_id", ticket.ErrDuplicate)
		}
		return err
	}
	for i, row := range rows {
		ts[i].ID = row.ID
	}
	return nil
}

func (r *Repository) GetByID(id int64) (*ticket.Ticket, error) {
	var row ticketDatamodel.Ticket
	err := r.db.First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrNotFound
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *Repository) List(filter ticket.Filter, limit, offset int) ([]*ticket.Ticket, error) {
	query := r.db.Model(&ticketDatamodel.Ticket{})
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}

	var rows []ticketDatamodel.Ticket
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ts := make([]*ticket.Ticket, len(rows))
	for i := range rows {
		ts[i] = fromDataModel(&rows[i])
	}
	return ts, nil
}

func (r *Repository) Update(t *ticket.Ticket) error {
	row := toDataModel(t)
	res := r.db.Model(&ticketDatamodel.Ticket{}).Where("id = ?", t.ID).Updates(map[string]interface{}{
		"priority":              row.Priority,
		"status":                row.Status,
		"assigned_to":           row.AssignedTo,
		"description":           row.Description,
		"resolution_time_hours": row.ResolutionTimeHours,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ticket.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	res := r.db.Delete(&ticketDatamodel.Ticket{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ticket.ErrNotFound
	}
	return nil
}

func toDataModel(t *ticket.Ticket) *ticketDatamodel.Ticket {
	return &ticketDatamodel.Ticket{
		ID:                  t.ID,
		TicketID:            t.TicketID,
		Priority:            t.Priority,
		Status:              t.Status,
		CreatedAt:           t.CreatedAt,
		AssignedTo:          t.AssignedTo,
		Description:         t.Description,
		ResolutionTimeHours: t.ResolutionTimeHours,
		UpdatedAt:           t.UpdatedAt,
	}
}

func fromDataModel(row *ticketDatamodel.Ticket) *ticket.Ticket {
	return &ticket.Ticket{
		ID:                  row.ID,
		TicketID:            row.TicketID,
		Priority:            row.Priority,
		Status:              row.Status,
		CreatedAt:           row.CreatedAt,
		AssignedTo:          row.AssignedTo,
		Description:         row.Description,
		ResolutionTimeHours: row.ResolutionTimeHours,
		UpdatedAt:           row.UpdatedAt,
	}
}
