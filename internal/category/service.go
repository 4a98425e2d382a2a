package category

import (
	"log/slog"

	"github.com/frahmantamala/approval-workflow/internal"
	categoryDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/category"
)

type Repository interface {
	ListActive() ([]*categoryDatamodel.Category, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListCategories() ([]*Category, error) {
	records, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, internal.NewInternalError("failed to list categories", err)
	}

	categories := make([]*Category, len(records))
	for i, record := range records {
		categories[i] = FromDataModel(record)
	}
	return categories, nil
}
