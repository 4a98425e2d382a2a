// Package category serves the seeded expense category catalog. Claims keep
// category as a free string; this listing only feeds the submission form.
package category

import (
	categoryDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/category"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
