package user

import (
	"log/slog"

	"github.com/joshwmy/record-management/internal/authz"
)

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

func (s *Service) List(limit, offset int) ([]*Account, error) {
	return s.repo.List(limit, offset)
}

func (s *Service) GetByUsername(username string) (*Account, error) {
	return s.repo.GetByUsername(username)
}

func (s *Service) ChangeRole(username string, dto ChangeRoleDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, _ := authz.ParseRole(dto.Role)
	if err := s.repo.UpdateRole(username, role); err != nil {
		s.logger.Error("failed to change role", "error", err, "username", username, "role", role)
		return nil, err
	}

	s.logger.Info("role changed", "username", username, "role", role)
	return s.repo.GetByUsername(username)
}
