package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persistence shape of a claim. Version backs the optimistic
// guard on decisions: an UPDATE carries the version it read, and zero rows
// affected means another approver got there first.
type Expense struct {
	ID               int64           `gorm:"primaryKey"`
	EmployeeID       int64           `gorm:"column:employee_id;not null;index"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency         string          `gorm:"type:varchar(8);not null"`
	Category         string          `gorm:"column:category"`
	Description      string          `gorm:"not null"`
	ExpenseDate      time.Time       `gorm:"column:expense_date;type:date"`
	Status           string          `gorm:"column:status;not null;default:'PENDING';index"`
	CurrentStepIndex int             `gorm:"column:current_step_index;not null;default:0"`
	Version          int64           `gorm:"column:version;not null;default:0"`
	SubmittedAt      time.Time       `gorm:"column:submitted_at;default:now()"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;default:now()"`

	History []ApprovalHistoryEntry `gorm:"foreignKey:ExpenseID"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ApprovalHistoryEntry rows are append-only; nothing updates or deletes them.
type ApprovalHistoryEntry struct {
	ID         int64     `gorm:"primaryKey"`
	ExpenseID  int64     `gorm:"column:expense_id;not null;index"`
	ApproverID int64     `gorm:"column:approver_id;not null"`
	Approved   bool      `gorm:"column:approved;not null"`
	DecidedAt  time.Time `gorm:"column:decided_at;not null"`
}

func (ApprovalHistoryEntry) TableName() string {
	return "approval_history"
}
