package dataset

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for dataset metadata.
type Repository interface {
	Create(d *Dataset) error
	CreateBatch(ds []*Dataset) error
	GetByID(id int64) (*Dataset, error)
	List(filter Filter, limit, offset int) ([]*Dataset, error)
	Update(d *Dataset) error
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

func (s *Service) Create(dto CreateDatasetDTO) (*Dataset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	uploadDate, err := parseTimestamp(dto.UploadDate)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Name:       dto.Name,
		Rows:       dto.Rows,
		Columns:    dto.Columns,
		UploadedBy: dto.UploadedBy,
		UploadDate: uploadDate,
	}

	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create dataset record", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("dataset record created", "id", d.ID, "name", d.Name)
	return d, nil
}

func (s *Service) GetByID(id int64) (*Dataset, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(filter Filter, limit, offset int) ([]*Dataset, error) {
	return s.repo.List(filter, limit, offset)
}

func (s *Service) Update(id int64, dto UpdateDatasetDTO) (*Dataset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Rows != nil {
		d.Rows = *dto.Rows
	}
	if dto.Columns != nil {
		d.Columns = *dto.Columns
	}
	if dto.UploadedBy != nil {
		d.UploadedBy = *dto.UploadedBy
	}
	if dto.UploadDate != nil {
		uploadDate, err := parseTimestamp(*dto.UploadDate)
		if err != nil {
			return nil, err
		}
		d.UploadDate = uploadDate
	}

	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update dataset record", "error", err, "id", id)
		return nil, err
	}

	return d, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete dataset record", "error", err, "id", id)
		return err
	}
	s.logger.Info("dataset record deleted", "id", id)
	return nil
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}
