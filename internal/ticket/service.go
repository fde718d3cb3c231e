package ticket

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for tickets.
type Repository interface {
	Create(t *Ticket) error
	CreateBatch(ts []*Ticket) error
	GetByID(id int64) (*Ticket, error)
	List(filter Filter, limit, offset int) ([]*Ticket, error)
	Update(t *Ticket) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateTicketDTO) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	createdAt, err := parseTimestamp(dto.CreatedAt)
	if err != nil {
		return nil, err
	}

	t := &Ticket{
		TicketID:            dto.TicketID,
		Priority:            dto.Priority,
		Status:              dto.Status,
		CreatedAt:           createdAt,
		AssignedTo:          dto.AssignedTo,
		Description:         dto.Description,
		ResolutionTimeHours: dto.ResolutionTimeHours,
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create ticket", "error", err, "ticket_id", dto.TicketID)
		return nil, err
	}

	s.logger.Info("ticket created", "id", t.ID, "ticket_id", t.TicketID, "priority", t.Priority)
	return t, nil
}

func (s *Service) GetByID(id int64) (*Ticket, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(filter Filter, limit, offset int) ([]*Ticket, error) {
	return s.repo.List(filter, limit, offset)
}

func (s *Service) Update(id int64, dto UpdateTicketDTO) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	if dto.AssignedTo != nil {
		t.AssignedTo = *dto.AssignedTo
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.ResolutionTimeHours != nil {
		t.ResolutionTimeHours = dto.ResolutionTimeHours
	}

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update ticket", "error", err, "id", id)
		return nil, err
	}

	return t, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete ticket", "error", err, "id", id)
		return err
	}
	s.logger.Info("ticket deleted", "id", id)
	return nil
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}
