// Package sequence holds the organization's approval chain: the ordered
// step tokens a pending claim walks through.
package sequence

import (
	"strings"

	"github.com/frahmantamala/approval-workflow/internal"
)

// StepToken identifies which authorization rule applies at a position in
// the chain. The set is open: MANAGER is the only token with dedicated
// semantics, anything else (FINANCE, DIRECTOR, ...) falls through to the
// admin rule.
type StepToken string

const StepTokenManager StepToken = "MANAGER"

// Sequence is configured once per organization and read-only afterwards.
// Invariant: length >= 1.
type Sequence struct {
	steps []StepToken
}

func New(steps []string) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, internal.NewValidationError("approval sequence must have at least one step", internal.ErrCodeEmptySequence)
	}

	tokens := make([]StepToken, len(steps))
	for i, s := range steps {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, internal.NewValidationError("approval sequence step must not be blank", internal.ErrCodeEmptySequence)
		}
		tokens[i] = StepToken(strings.ToUpper(s))
	}

	return &Sequence{steps: tokens}, nil
}

func (s *Sequence) Len() int {
	return len(s.steps)
}

// StepRoleAt returns the token governing the given step. Indexes at or past
// the end return the empty token; callers only ask about indexes of
// pending claims, which are always in range.
func (s *Sequence) StepRoleAt(index int) StepToken {
	if index < 0 || index >= len(s.steps) {
		return ""
	}
	return s.steps[index]
}

func (s *Sequence) IsLastStep(index int) bool {
	return index+1 >= len(s.steps)
}

func (s *Sequence) Steps() []StepToken {
	out := make([]StepToken, len(s.steps))
	copy(out, s.steps)
	return out
}
