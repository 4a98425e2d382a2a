package expense

import (
	"strings"
	"time"

	"github.com/frahmantamala/approval-workflow/internal"
	"github.com/shopspring/decimal"
)

// SubmitExpenseDTO is the claim submission payload. The core validates
// field presence; format widgets (date pickers etc.) belong to the
// presentation layer.
type SubmitExpenseDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (dto SubmitExpenseDTO) Validate() error {
	if dto.Amount.IsZero() {
		return internal.NewValidationError("amount is required", internal.ErrCodeInvalidAmount)
	}
	if dto.Amount.IsNegative() {
		return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if strings.TrimSpace(dto.Description) == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeInvalidDescription)
	}
	if strings.TrimSpace(dto.Date) == "" {
		return internal.NewValidationError("date is required", internal.ErrCodeInvalidDate)
	}
	return nil
}

// ParseDate accepts the date-only form the submission widget sends, or a
// full RFC 3339 timestamp.
func (dto SubmitExpenseDTO) ParseDate() (time.Time, error) {
	raw := strings.TrimSpace(dto.Date)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, internal.NewValidationError("date is not a valid date", internal.ErrCodeInvalidDate)
	}
	return t, nil
}
