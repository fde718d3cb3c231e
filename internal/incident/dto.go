package incident

import (
	errors "github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/core/common/validation"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

type CreateIncidentDTO struct {
	IncidentID  string `json:"incident_id"`
	Timestamp   string `json:"timestamp"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

func (d CreateIncidentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("incident_id", d.IncidentID).Required()
	v.Field("timestamp", d.Timestamp).Required().Date(dateTimeLayout, dateLayout)
	v.Field("severity", d.Severity).Required().OneOf(ValidSeverities, errors.ErrCodeInvalidSeverity)
	v.Field("category", d.Category).Required().OneOf(ValidCategories, errors.ErrCodeInvalidCategory)
	v.Field("status", d.Status).Required().OneOf(ValidStatuses, errors.ErrCodeInvalidStatus)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateIncidentDTO struct {
	Timestamp   *string `json:"timestamp,omitempty"`
	Severity    *string `json:"severity,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d UpdateIncidentDTO) Validate() error {
	v := validation.NewValidator()
	if d.Timestamp != nil {
		v.Field("timestamp", *d.Timestamp).Required().Date(dateTimeLayout, dateLayout)
	}
	if d.Severity != nil {
		v.Field("severity", *d.Severity).OneOf(ValidSeverities, errors.ErrCodeInvalidSeverity)
	}
	if d.Category != nil {
		v.Field("category", *d.Category).OneOf(ValidCategories, errors.ErrCodeInvalidCategory)
	}
	if d.Status != nil {
		v.Field("status", *d.Status).OneOf(ValidStatuses, errors.ErrCodeInvalidStatus)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
