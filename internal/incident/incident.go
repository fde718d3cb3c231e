package incident

import (
	"errors"
	"time"
)

// Incident is a cybersecurity incident record.
type Incident struct {
	ID          int64     `json:"id"`
	IncidentID  string    `json:"incident_id"`
	Timestamp   time.Time `json:"timestamp"`
	Severity    string    `json:"severity"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ValidSeverities = []string{"Low", "Medium", "High", "Critical"}
	ValidCategories = []string{"Phishing", "Malware", "DDoS", "Unauthorized Access", "Misconfiguration"}
	ValidStatuses   = []string{"Open", "In Progress", "Resolved", "Closed"}
)

var (
	ErrNotFound  = errors.New("incident not found")
	ErrDuplicate = errors.New("incident already exists")
)

// Filter narrows List results; empty fields match everything.
type Filter struct {
	Severity string
	Category string
	Status   string
}
