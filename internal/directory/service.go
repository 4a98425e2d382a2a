package directory

import (
	"log/slog"

	"github.com/frahmantamala/approval-workflow/internal"
	userDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/user"
)

// Repository defines the data access methods for directory members.
// Listings preserve insertion order.
type Repository interface {
	Create(user *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	ListAll() ([]*userDatamodel.User, error)
	ListByRole(role string) ([]*userDatamodel.User, error)
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

// AddUser appends a member to the directory and returns the created record
// with its assigned id. Ids are never reused or reassigned.
func (s *Service) AddUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	if dto.ManagerID != nil {
		if _, err := s.repo.GetByID(*dto.ManagerID); err != nil {
			s.logger.Error("referenced manager not found", "manager_id", *dto.ManagerID)
			return nil, internal.ErrUserNotFound
		}
	}

	record := &userDatamodel.User{
		Name:      dto.Name,
		Role:      dto.Role,
		ManagerID: dto.ManagerID,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create user", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user added to directory",
		"user_id", record.ID,
		"role", record.Role)

	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) ListUsers() ([]*User, error) {
	records, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) ListByRole(role Role) ([]*User, error) {
	records, err := s.repo.ListByRole(string(role))
	if err != nil {
		s.logger.Error("failed to list users by role", "error", err, "role", role)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) ListManagers() ([]*User, error) {
	return s.ListByRole(RoleManager)
}
