package postgres

import (
	"errors"

	"github.com/frahmantamala/approval-workflow/internal"
	expenseDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/expense"
	"github.com/frahmantamala/approval-workflow/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.Repository using GORM.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(exp *expenseDatamodel.Expense) error {
	return r.db.Create(exp).Error
}

func (r *ExpenseRepository) GetByID(id int64) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.db.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_history.id ASC")
		}).
		Where("id = ?", id).
		First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// ListByEmployee returns a claimant's claims in insertion order.
func (r *ExpenseRepository) ListByEmployee(employeeID int64) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_history.id ASC")
		}).
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListPending() ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_history.id ASC")
		}).
		Where("status = ?", expense.StatusPending).
		Order("id ASC").
		Find(&expenses).Error
	return expenses, err
}

// ApplyDecision persists a decision atomically under the optimistic guard:
// the claim row is updated only if its version is still expectedVersion,
// and the history entry lands in the same transaction. Losing the race
// yields internal.ErrDecisionConflict and writes nothing.
func (r *ExpenseRepository) ApplyDecision(exp *expenseDatamodel.Expense, expectedVersion int64, entry *expenseDatamodel.ApprovalHistoryEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ? AND version = ?", exp.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":             exp.Status,
				"current_step_index": exp.CurrentStepIndex,
				"version":            exp.Version,
				"updated_at":         exp.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrDecisionConflict
		}

		return tx.Create(entry).Error
	})
}
