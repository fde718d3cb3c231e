package ticket

import (
	"errors"
	"time"
)

// Ticket is a single IT support ticket record.
type Ticket struct {
	ID                  int64     `json:"id"`
	TicketID            string    `json:"ticket_id"`
	Priority            string    `json:"priority"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	AssignedTo          string    `json:"assigned_to,omitempty"`
	Description         string    `json:"description,omitempty"`
	ResolutionTimeHours *int      `json:"resolution_time_hours,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

var (
	ValidPriorities = []string{"Low", "Medium", "High", "Critical"}
	ValidStatuses   = []string{"Open", "In Progress", "Resolved", "Closed"}
)

var (
	ErrNotFound  = errors.New("ticket not found")
	ErrDuplicate = errors.New("ticket already exists")
)

// Filter narrows List results; empty fields match everything.
type Filter struct {
	Priority   string
	Status     string
	AssignedTo string
}
