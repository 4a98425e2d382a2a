package expense

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/approval-workflow/internal"
	expenseDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/expense"
	"github.com/frahmantamala/approval-workflow/internal/core/events"
	"github.com/frahmantamala/approval-workflow/internal/directory"
	"github.com/frahmantamala/approval-workflow/internal/sequence"
)

// Repository defines the data access methods for claims. Listings preserve
// insertion order; ApplyDecision enforces the optimistic version guard.
type Repository interface {
	Create(exp *expenseDatamodel.Expense) error
	GetByID(id int64) (*expenseDatamodel.Expense, error)
	ListByEmployee(employeeID int64) ([]*expenseDatamodel.Expense, error)
	ListPending() ([]*expenseDatamodel.Expense, error)

	// ApplyDecision persists the mutated claim and its new history entry
	// atomically, succeeding only if the stored version still equals
	// expectedVersion. A lost race returns internal.ErrDecisionConflict.
	ApplyDecision(exp *expenseDatamodel.Expense, expectedVersion int64, entry *expenseDatamodel.ApprovalHistoryEntry) error
}

// DirectoryAPI is the slice of the directory the workflow needs.
type DirectoryAPI interface {
	GetByID(id int64) (*directory.User, error)
}

// AuthorizationResolver decides step eligibility; consulted only for
// pending claims.
type AuthorizationResolver interface {
	CanAct(actor *directory.User, claimantID int64, stepIndex int) (bool, error)
}

type Service struct {
	repo     Repository
	users    DirectoryAPI
	seq      *sequence.Sequence
	resolver AuthorizationResolver
	bus      *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, users DirectoryAPI, seq *sequence.Sequence, resolver AuthorizationResolver, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		seq:      seq,
		resolver: resolver,
		bus:      bus,
		logger:   logger,
	}
}

// Submit creates a new claim at step 0 with an empty history. The claimant
// must exist in the directory.
func (s *Service) Submit(employeeID int64, dto SubmitExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	expenseDate, err := dto.ParseDate()
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(employeeID); err != nil {
		s.logger.Error("claimant not found in directory", "employee_id", employeeID)
		return nil, internal.NewValidationError("employee does not exist", internal.ErrCodeUserNotFound)
	}

	now := time.Now()
	record := &expenseDatamodel.Expense{
		EmployeeID:       employeeID,
		Amount:           dto.Amount,
		Currency:         strings.ToUpper(strings.TrimSpace(dto.Currency)),
		Category:         dto.Category,
		Description:      dto.Description,
		ExpenseDate:      expenseDate,
		Status:           StatusPending,
		CurrentStepIndex: 0,
		SubmittedAt:      now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create expense", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense submitted",
		"expense_id", record.ID,
		"employee_id", employeeID,
		"amount", record.Amount.String(),
		"currency", record.Currency)

	_ = s.bus.Publish(context.Background(),
		events.NewExpenseSubmittedEvent(record.ID, employeeID, record.Amount.String(), record.Currency))

	return FromDataModel(record), nil
}

// Decide applies one approval or rejection to a pending claim. The
// eligibility check is defensive: a well-behaved caller never surfaces a
// claim to a user who cannot act on it.
func (s *Service) Decide(expenseID, actorID int64, approved bool) (*Expense, error) {
	actor, err := s.users.GetByID(actorID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	record, err := s.repo.GetByID(expenseID)
	if err != nil {
		s.logger.Error("expense not found for decision", "error", err, "expense_id", expenseID)
		return nil, internal.ErrExpenseNotFound
	}

	claim := FromDataModel(record)
	if !claim.IsPending() {
		s.logger.Warn("decision on terminal claim rejected",
			"expense_id", expenseID,
			"status", claim.Status,
			"actor_id", actorID)
		return nil, internal.ErrClaimNotPending
	}

	eligible, err := s.resolver.CanAct(actor, claim.EmployeeID, claim.CurrentStepIndex)
	if err != nil {
		return nil, internal.NewInternalError("eligibility check failed", err)
	}
	if !eligible {
		s.logger.Warn("actor not eligible for step",
			"expense_id", expenseID,
			"actor_id", actorID,
			"step_index", claim.CurrentStepIndex)
		return nil, internal.ErrNotEligible
	}

	expectedVersion := claim.Version
	entry := claim.ApplyDecision(actorID, approved, s.seq.IsLastStep(claim.CurrentStepIndex), time.Now())

	updated := ToDataModel(claim)
	updated.Version = expectedVersion + 1
	entryRecord := &expenseDatamodel.ApprovalHistoryEntry{
		ExpenseID:  claim.ID,
		ApproverID: entry.ApproverID,
		Approved:   entry.Approved,
		DecidedAt:  entry.DecidedAt,
	}

	if err := s.repo.ApplyDecision(updated, expectedVersion, entryRecord); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeConflict {
			s.logger.Warn("decision lost optimistic race",
				"expense_id", expenseID,
				"actor_id", actorID,
				"expected_version", expectedVersion)
			return nil, err
		}
		s.logger.Error("failed to persist decision", "error", err, "expense_id", expenseID)
		return nil, internal.NewInternalError("failed to persist decision", err)
	}

	claim.Version = updated.Version

	s.logger.Info("decision applied",
		"expense_id", claim.ID,
		"actor_id", actorID,
		"approved", approved,
		"status", claim.Status,
		"step_index", claim.CurrentStepIndex)

	_ = s.bus.Publish(context.Background(),
		events.NewExpenseDecisionAppliedEvent(claim.ID, actorID, approved, claim.CurrentStepIndex, claim.Status))

	return claim, nil
}

// GetByID returns a single claim for the acting user: the claimant always,
// any other user only while eligible to act on it.
func (s *Service) GetByID(expenseID int64, actor *directory.User) (*Expense, error) {
	record, err := s.repo.GetByID(expenseID)
	if err != nil {
		return nil, internal.ErrExpenseNotFound
	}

	claim := FromDataModel(record)
	if claim.EmployeeID == actor.ID {
		return claim, nil
	}

	if claim.IsPending() {
		eligible, err := s.resolver.CanAct(actor, claim.EmployeeID, claim.CurrentStepIndex)
		if err == nil && eligible {
			return claim, nil
		}
	}

	s.logger.Warn("claim access denied", "expense_id", expenseID, "actor_id", actor.ID)
	return nil, internal.ErrNotEligible
}

// OwnClaims lists every claim of one employee in insertion order, no
// status filter.
func (s *Service) OwnClaims(employeeID int64) ([]*Expense, error) {
	records, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list own claims", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("failed to list claims", err)
	}
	return FromDataModelSlice(records), nil
}

// PendingActionsFor lists every pending claim the user may currently act
// on, in insertion order. It is recomputed per call, never cached.
func (s *Service) PendingActionsFor(actor *directory.User) ([]*Expense, error) {
	records, err := s.repo.ListPending()
	if err != nil {
		s.logger.Error("failed to list pending claims", "error", err, "actor_id", actor.ID)
		return nil, internal.NewInternalError("failed to list claims", err)
	}

	claims := make([]*Expense, 0, len(records))
	for _, record := range records {
		claim := FromDataModel(record)
		eligible, err := s.resolver.CanAct(actor, claim.EmployeeID, claim.CurrentStepIndex)
		if err != nil {
			return nil, internal.NewInternalError("eligibility check failed", err)
		}
		if eligible {
			claims = append(claims, claim)
		}
	}

	return claims, nil
}
