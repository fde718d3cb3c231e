package ticket

import (
	errors "github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/core/common/validation"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

type CreateTicketDTO struct {
	TicketID            string `json:"ticket_id"`
	Priority            string `json:"priority"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
	AssignedTo          string `json:"assigned_to"`
	Description         string `json:"description"`
	ResolutionTimeHours *int   `json:"resolution_time_hours"`
}

func (d CreateTicketDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("ticket_id", d.TicketID).Required()
	v.Field("priority", d.Priority).Required().OneOf(ValidPriorities, errors.ErrCodeInvalidPriority)
	v.Field("status", d.Status).Required().OneOf(ValidStatuses, errors.ErrCodeInvalidStatus)
	v.Field("created_at", d.CreatedAt).Required().Date(dateTimeLayout, dateLayout)
	if d.ResolutionTimeHours != nil {
		v.Field("resolution_time_hours", int64(*d.ResolutionTimeHours)).MinInt(0, errors.ErrCodeValidationFailed)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateTicketDTO struct {
	Priority            *string `json:"priority,omitempty"`
	Status              *string `json:"status,omitempty"`
	AssignedTo          *string `json:"assigned_to,omitempty"`
	Description         *string `json:"description,omitempty"`
	ResolutionTimeHours *int    `json:"resolution_time_hours,omitempty"`
}

func (d UpdateTicketDTO) Validate() error {
	v := validation.NewValidator()
	if d.Priority != nil {
		v.Field("priority", *d.Priority).OneOf(ValidPriorities, errors.ErrCodeInvalidPriority)
	}
	if d.Status != nil {
		v.Field("status", *d.Status).OneOf(ValidStatuses, errors.ErrCodeInvalidStatus)
	}
	if d.ResolutionTimeHours != nil {
		v.Field("resolution_time_hours", int64(*d.ResolutionTimeHours)).MinInt(0, errors.ErrCodeValidationFailed)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
