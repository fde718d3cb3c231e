package incident

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for incidents.
type Repository interface {
	Create(inc *Incident) error
	CreateBatch(incs []*Incident) error
	GetByID(id int64) (*Incident, error)
	List(filter Filter, limit, offset int) ([]*Incident, error)
	Update(inc *Incident) error
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

func (s *Service) Create(dto CreateIncidentDTO) (*Incident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ts, err := parseTimestamp(dto.Timestamp)
	if err != nil {
		return nil, err
	}

	inc := &Incident{
		IncidentID:  dto.IncidentID,
		Timestamp:   ts,
		Severity:    dto.Severity,
		Category:    dto.Category,
		Status:      dto.Status,
		Description: dto.Description,
	}

	if err := s.repo.Create(inc); err != nil {
		s.logger.Error("failed to create incident", "error", err, "incident_id", dto.IncidentID)
		return nil, err
	}

	s.logger.Info("incident created", "id", inc.ID, "incident_id", inc.IncidentID, "severity", inc.Severity)
	return inc, nil
}

func (s *Service) GetByID(id int64) (*Incident, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(filter Filter, limit, offset int) ([]*Incident, error) {
	return s.repo.List(filter, limit, offset)
}

func (s *Service) Update(id int64, dto UpdateIncidentDTO) (*Incident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Timestamp != nil {
		ts, err := parseTimestamp(*dto.Timestamp)
		if err != nil {
			return nil, err
		}
		inc.Timestamp = ts
	}
	if dto.Severity != nil {
		inc.Severity = *dto.Severity
	}
	if dto.Category != nil {
		inc.Category = *dto.Category
	}
	if dto.Status != nil {
		inc.Status = *dto.Status
	}
	if dto.Description != nil {
		inc.Description = *dto.Description
	}

	if err := s.repo.Update(inc); err != nil {
		s.logger.Error("failed to update incident", "error", err, "id", id)
		return nil, err
	}

	return inc, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete incident", "error", err, "id", id)
		return err
	}
	s.logger.Info("incident deleted", "id", id)
	return nil
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}
