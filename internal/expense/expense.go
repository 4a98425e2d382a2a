// Package expense implements the sequential approval workflow: a claim's
// lifecycle from submission through the configured chain of approvers.
package expense

import (
	"time"

	expenseDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/expense"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ApprovalHistoryEntry is immutable once appended; the slice on a claim
// only ever grows, one entry per applied decision.
type ApprovalHistoryEntry struct {
	ApproverID int64     `json:"approver_id"`
	Approved   bool      `json:"approved"`
	DecidedAt  time.Time `json:"decided_at"`
}

type Expense struct {
	ID               int64                  `json:"id"`
	EmployeeID       int64                  `json:"employee_id"`
	Amount           decimal.Decimal        `json:"amount"`
	Currency         string                 `json:"currency"`
	Category         string                 `json:"category"`
	Description      string                 `json:"description"`
	ExpenseDate      time.Time              `json:"expense_date"`
	Status           string                 `json:"status"`
	CurrentStepIndex int                    `json:"current_step_index"`
	History          []ApprovalHistoryEntry `json:"approval_history"`
	SubmittedAt      time.Time              `json:"submitted_at"`
	UpdatedAt        time.Time              `json:"updated_at"`

	// Version is the optimistic-lock counter as read from the store. It is
	// not part of the claim's public shape.
	Version int64 `json:"-"`
}

func (e *Expense) IsPending() bool {
	return e.Status == StatusPending
}

func (e *Expense) IsTerminal() bool {
	return e.Status == StatusApproved || e.Status == StatusRejected
}

// ApplyDecision appends the decision to the history and advances the state
// machine. A rejection terminates immediately with the step index frozen;
// an approval advances the index, terminating on the last step. The index
// still increments on the final approval so the history reads complete.
func (e *Expense) ApplyDecision(approverID int64, approved, isLastStep bool, now time.Time) ApprovalHistoryEntry {
	entry := ApprovalHistoryEntry{
		ApproverID: approverID,
		Approved:   approved,
		DecidedAt:  now,
	}
	e.History = append(e.History, entry)
	e.UpdatedAt = now

	switch {
	case !approved:
		e.Status = StatusRejected
	case isLastStep:
		e.Status = StatusApproved
		e.CurrentStepIndex++
	default:
		e.CurrentStepIndex++
	}

	return entry
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:               e.ID,
		EmployeeID:       e.EmployeeID,
		Amount:           e.Amount,
		Currency:         e.Currency,
		Category:         e.Category,
		Description:      e.Description,
		ExpenseDate:      e.ExpenseDate,
		Status:           e.Status,
		CurrentStepIndex: e.CurrentStepIndex,
		Version:          e.Version,
		SubmittedAt:      e.SubmittedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func FromDataModel(m *expenseDatamodel.Expense) *Expense {
	history := make([]ApprovalHistoryEntry, len(m.History))
	for i, h := range m.History {
		history[i] = ApprovalHistoryEntry{
			ApproverID: h.ApproverID,
			Approved:   h.Approved,
			DecidedAt:  h.DecidedAt,
		}
	}

	return &Expense{
		ID:               m.ID,
		EmployeeID:       m.EmployeeID,
		Amount:           m.Amount,
		Currency:         m.Currency,
		Category:         m.Category,
		Description:      m.Description,
		ExpenseDate:      m.ExpenseDate,
		Status:           m.Status,
		CurrentStepIndex: m.CurrentStepIndex,
		History:          history,
		SubmittedAt:      m.SubmittedAt,
		UpdatedAt:        m.UpdatedAt,
		Version:          m.Version,
	}
}

func FromDataModelSlice(models []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
