package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/approval-workflow/internal"
	"github.com/frahmantamala/approval-workflow/internal/category"
	categoryDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

type mockCategoryRepository struct {
	categories []*categoryDatamodel.Category
	listError  error
}

func (m *mockCategoryRepository) ListActive() ([]*categoryDatamodel.Category, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.categories, nil
}

var _ = Describe("CategoryService", func() {
	var (
		service *category.Service
		repo    *mockCategoryRepository
	)

	BeforeEach(func() {
		repo = &mockCategoryRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(repo, logger)
	})

	It("should list the active catalog in order", func() {
		repo.categories = []*categoryDatamodel.Category{
			{ID: 1, Name: "Travel", Description: "Transport and lodging"},
			{ID: 2, Name: "Meals"},
		}

		categories, err := service.ListCategories()
		Expect(err).ToNot(HaveOccurred())
		Expect(categories).To(HaveLen(2))
		Expect(categories[0].Name).To(Equal("Travel"))
		Expect(categories[1].Name).To(Equal("Meals"))
	})

	It("should wrap repository failures", func() {
		repo.listError = errors.New("connection reset")

		_, err := service.ListCategories()
		Expect(err).To(HaveOccurred())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
