package postgres

import (
	"errors"

	"github.com/frahmantamala/approval-workflow/internal/directory"
	userDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// UserRepository implements directory.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) directory.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *userDatamodel.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListAll returns every member in insertion order.
func (r *UserRepository) ListAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByRole(role string) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("role = ?", role).Order("id ASC").Find(&users).Error
	return users, err
}
