package incident

import "time"

// Incident is the persistence model for cybersecurity incident records.
type Incident struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	IncidentID  string    `gorm:"column:incident_id;uniqueIndex;not null"`
	Timestamp   time.Time `gorm:"column:timestamp;not null;index"`
	Severity    string    `gorm:"column:severity;not null;index"`
	Category    string    `gorm:"column:category;not null;index"`
	Status      string    `gorm:"column:status;not null;index"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Incident) TableName() string {
	return "cyber_incidents"
}
