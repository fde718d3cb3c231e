package ticket

import "time"

// Ticket is the persistence model for IT support ticket records.
type Ticket struct {
	ID                  int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TicketID            string    `gorm:"column:ticket_id;uniqueIndex;not null"`
	Priority            string    `gorm:"column:priority;not null;index"`
	Status              string    `gorm:"column:status;not null;index"`
	CreatedAt           time.Time `gorm:"column:created_at;not null;index"`
	AssignedTo          string    `gorm:"column:assigned_to;index"`
	Description         string    `gorm:"column:description"`
	ResolutionTimeHours *int      `gorm:"column:resolution_time_hours"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "it_tickets"
}
