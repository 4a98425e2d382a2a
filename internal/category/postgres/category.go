package postgres

import (
	"github.com/frahmantamala/approval-workflow/internal/category"
	categoryDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListActive() ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&categories).Error
	return categories, err
}
