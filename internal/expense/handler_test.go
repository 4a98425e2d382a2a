package expense_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/approval-workflow/internal"
	"github.com/frahmantamala/approval-workflow/internal/directory"
	"github.com/frahmantamala/approval-workflow/internal/expense"
)

type mockExpenseService struct {
	submitResult  *expense.Expense
	submitError   error
	decideResult  *expense.Expense
	decideError   error
	getResult     *expense.Expense
	getError      error
	ownClaims     []*expense.Expense
	pendingClaims []*expense.Expense

	decidedID       int64
	decidedActorID  int64
	decidedApproved bool
}

func (m *mockExpenseService) Submit(employeeID int64, dto expense.SubmitExpenseDTO) (*expense.Expense, error) {
	return m.submitResult, m.submitError
}

func (m *mockExpenseService) Decide(expenseID, actorID int64, approved bool) (*expense.Expense, error) {
	m.decidedID = expenseID
	m.decidedActorID = actorID
	m.decidedApproved = approved
	return m.decideResult, m.decideError
}

func (m *mockExpenseService) GetByID(expenseID int64, actor *directory.User) (*expense.Expense, error) {
	return m.getResult, m.getError
}

func (m *mockExpenseService) OwnClaims(employeeID int64) ([]*expense.Expense, error) {
	return m.ownClaims, nil
}

func (m *mockExpenseService) PendingActionsFor(actor *directory.User) ([]*expense.Expense, error) {
	return m.pendingClaims, nil
}

var _ = Describe("ExpenseHandler", func() {
	var (
		service *mockExpenseService
		router  chi.Router
	)

	actingUser := &internal.ActingUser{ID: 2, Name: "Maya", Role: "MANAGER"}

	withActor := func(req *http.Request) *http.Request {
		return req.WithContext(internal.ContextWithActingUser(req.Context(), actingUser))
	}

	BeforeEach(func() {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
		service = &mockExpenseService{}
		handler := expense.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/expenses", handler.SubmitExpense)
		router.Get("/expenses", handler.OwnClaims)
		router.Get("/expenses/pending", handler.PendingActions)
		router.Get("/expenses/{id}", handler.GetExpense)
		router.Patch("/expenses/{id}/approve", handler.ApproveExpense)
		router.Patch("/expenses/{id}/reject", handler.RejectExpense)
	})

	Describe("SubmitExpense", func() {
		It("should return 201 with the created claim", func() {
			service.submitResult = &expense.Expense{
				ID:         1,
				EmployeeID: actingUser.ID,
				Amount:     decimal.NewFromFloat(120.50),
				Status:     expense.StatusPending,
			}

			body, err := json.Marshal(map[string]interface{}{
				"amount":      "120.50",
				"currency":    "USD",
				"description": "Client visit train tickets",
				"date":        "2026-08-14",
			})
			Expect(err).NotTo(HaveOccurred())

			req := withActor(httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewReader(body)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created expense.Expense
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(Equal(int64(1)))
			Expect(created.Status).To(Equal(expense.StatusPending))
		})

		It("should return 400 on a malformed body", func() {
			req := withActor(httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewReader([]byte("{"))))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 401 without an acting user", func() {
			req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewReader([]byte("{}")))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should map validation errors to 400", func() {
			service.submitError = internal.NewValidationError("amount is required", internal.ErrCodeInvalidAmount)

			req := withActor(httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewReader([]byte("{}"))))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("decisions", func() {
		It("should route approve to the service with approved=true", func() {
			service.decideResult = &expense.Expense{ID: 7, Status: expense.StatusPending, CurrentStepIndex: 1}

			req := withActor(httptest.NewRequest(http.MethodPatch, "/expenses/7/approve", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(service.decidedID).To(Equal(int64(7)))
			Expect(service.decidedActorID).To(Equal(actingUser.ID))
			Expect(service.decidedApproved).To(BeTrue())
		})

		It("should route reject to the service with approved=false", func() {
			service.decideResult = &expense.Expense{ID: 7, Status: expense.StatusRejected}

			req := withActor(httptest.NewRequest(http.MethodPatch, "/expenses/7/reject", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(service.decidedApproved).To(BeFalse())
		})

		It("should return 400 for a non-numeric id", func() {
			req := withActor(httptest.NewRequest(http.MethodPatch, "/expenses/abc/approve", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map eligibility errors to 403", func() {
			service.decideError = internal.ErrNotEligible

			req := withActor(httptest.NewRequest(http.MethodPatch, "/expenses/7/approve", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should map decision conflicts to 409", func() {
			service.decideError = internal.ErrDecisionConflict

			req := withActor(httptest.NewRequest(http.MethodPatch, "/expenses/7/approve", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("GetExpense", func() {
		It("should map a missing claim to 404", func() {
			service.getError = internal.ErrExpenseNotFound

			req := withActor(httptest.NewRequest(http.MethodGet, "/expenses/99", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("views", func() {
		It("should wrap own claims in an expenses envelope", func() {
			service.ownClaims = []*expense.Expense{{ID: 1}, {ID: 2}}

			req := withActor(httptest.NewRequest(http.MethodGet, "/expenses", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Expenses []*expense.Expense `json:"expenses"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Expenses).To(HaveLen(2))
		})

		It("should return an empty pending list as an empty array", func() {
			service.pendingClaims = []*expense.Expense{}

			req := withActor(httptest.NewRequest(http.MethodGet, "/expenses/pending", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Expenses []*expense.Expense `json:"expenses"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Expenses).To(BeEmpty())
		})
	})
})
