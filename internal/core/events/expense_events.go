package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpenseSubmitted       = "expense.submitted"
	EventTypeExpenseDecisionApplied = "expense.decision.applied"
)

func NewExpenseSubmittedEvent(expenseID, employeeID int64, amount, currency string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeExpenseSubmitted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"expense_id":  expenseID,
			"employee_id": employeeID,
			"amount":      amount,
			"currency":    currency,
		},
	}
}

func NewExpenseDecisionAppliedEvent(expenseID, approverID int64, approved bool, stepIndex int, status string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeExpenseDecisionApplied,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"expense_id":  expenseID,
			"approver_id": approverID,
			"approved":    approved,
			"step_index":  stepIndex,
			"status":      status,
		},
	}
}
