package directory_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/approval-workflow/internal"
	userDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/user"
	"github.com/frahmantamala/approval-workflow/internal/directory"
)

func TestDirectory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       []*userDatamodel.User
	createError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{nextID: 1}
}

func (m *mockUserRepository) Create(user *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	user.ID = m.nextID
	m.nextID++
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockUserRepository) ListAll() ([]*userDatamodel.User, error) {
	return m.users, nil
}

func (m *mockUserRepository) ListByRole(role string) ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

var _ = Describe("DirectoryService", func() {
	var (
		service *directory.Service
		repo    *mockUserRepository
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = directory.NewService(repo, logger)
	})

	Describe("AddUser", func() {
		It("should assign sequential ids and preserve insertion order", func() {
			first, err := service.AddUser(directory.CreateUserDTO{Name: "Admin User", Role: "ADMIN"})
			Expect(err).ToNot(HaveOccurred())
			Expect(first.ID).To(Equal(int64(1)))

			second, err := service.AddUser(directory.CreateUserDTO{Name: "Maya", Role: "MANAGER"})
			Expect(err).ToNot(HaveOccurred())
			Expect(second.ID).To(Equal(int64(2)))

			users, err := service.ListUsers()
			Expect(err).ToNot(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].Name).To(Equal("Admin User"))
			Expect(users[1].Name).To(Equal("Maya"))
		})

		It("should reject a blank name", func() {
			_, err := service.AddUser(directory.CreateUserDTO{Name: "   ", Role: "EMPLOYEE"})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject an unknown role", func() {
			_, err := service.AddUser(directory.CreateUserDTO{Name: "F", Role: "FINANCE"})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("should allow duplicate names", func() {
			_, err := service.AddUser(directory.CreateUserDTO{Name: "Sam", Role: "EMPLOYEE"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.AddUser(directory.CreateUserDTO{Name: "Sam", Role: "EMPLOYEE"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should reject a manager reference that does not exist", func() {
			missing := int64(42)
			_, err := service.AddUser(directory.CreateUserDTO{Name: "E", Role: "EMPLOYEE", ManagerID: &missing})
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should keep the manager back-reference", func() {
			manager, err := service.AddUser(directory.CreateUserDTO{Name: "Maya", Role: "MANAGER"})
			Expect(err).ToNot(HaveOccurred())

			employee, err := service.AddUser(directory.CreateUserDTO{Name: "Evan", Role: "EMPLOYEE", ManagerID: &manager.ID})
			Expect(err).ToNot(HaveOccurred())
			Expect(employee.ManagerID).ToNot(BeNil())
			Expect(*employee.ManagerID).To(Equal(manager.ID))
			Expect(manager.IsDirectManagerOf(employee)).To(BeTrue())
		})
	})

	Describe("ListManagers", func() {
		It("should return only MANAGER members in insertion order", func() {
			_, err := service.AddUser(directory.CreateUserDTO{Name: "Admin User", Role: "ADMIN"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.AddUser(directory.CreateUserDTO{Name: "Maya", Role: "MANAGER"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.AddUser(directory.CreateUserDTO{Name: "Nina", Role: "MANAGER"})
			Expect(err).ToNot(HaveOccurred())

			managers, err := service.ListManagers()
			Expect(err).ToNot(HaveOccurred())
			Expect(managers).To(HaveLen(2))
			Expect(managers[0].Name).To(Equal("Maya"))
			Expect(managers[1].Name).To(Equal("Nina"))
		})
	})

	Describe("GetByID", func() {
		It("should return not-found for an unknown id", func() {
			_, err := service.GetByID(7)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})
})
