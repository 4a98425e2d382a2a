// Package authz decides whether a user may act on a claim at its current
// approval step.
package authz

import (
	"log/slog"

	"github.com/frahmantamala/approval-workflow/internal/directory"
	"github.com/frahmantamala/approval-workflow/internal/sequence"
)

// UserFinder is the directory lookup the manager rule needs to resolve a
// claimant's direct manager.
type UserFinder interface {
	GetByID(id int64) (*directory.User, error)
}

// stepRule is one authorization strategy. Which rule applies is selected by
// the step token, so a dedicated FINANCE or DIRECTOR rule later is an
// addition to ruleFor, not a rewrite.
type stepRule interface {
	Eligible(actor *directory.User, claimantID int64) (bool, error)
}

// managerStepRule: eligible only when the actor is a MANAGER and the exact
// direct manager of the claimant. The hierarchy is never walked.
type managerStepRule struct {
	users UserFinder
}

func (r managerStepRule) Eligible(actor *directory.User, claimantID int64) (bool, error) {
	if actor.Role != directory.RoleManager {
		return false, nil
	}
	claimant, err := r.users.GetByID(claimantID)
	if err != nil {
		return false, err
	}
	return actor.IsDirectManagerOf(claimant), nil
}

// adminFallbackRule: every non-manager step token (FINANCE, DIRECTOR, or
// anything an administrator configures) authorizes any ADMIN. The directory
// has no FINANCE/DIRECTOR role, so ADMIN is the universal approver for
// those steps.
type adminFallbackRule struct{}

func (adminFallbackRule) Eligible(actor *directory.User, _ int64) (bool, error) {
	return actor.Role == directory.RoleAdmin, nil
}

// Resolver evaluates eligibility for pending claims. Callers only consult
// it while a claim is PENDING; terminal claims are guarded upstream.
type Resolver struct {
	seq     *sequence.Sequence
	manager stepRule
	admin   stepRule
	logger  *slog.Logger
}

func NewResolver(seq *sequence.Sequence, users UserFinder, logger *slog.Logger) *Resolver {
	return &Resolver{
		seq:     seq,
		manager: managerStepRule{users: users},
		admin:   adminFallbackRule{},
		logger:  logger,
	}
}

func (r *Resolver) ruleFor(token sequence.StepToken) stepRule {
	if token == sequence.StepTokenManager {
		return r.manager
	}
	return r.admin
}

// CanAct reports whether the actor may decide a claim owned by claimantID
// that currently sits at stepIndex. Plain employees are never eligible;
// role exclusivity means no actor can match both rules at once.
func (r *Resolver) CanAct(actor *directory.User, claimantID int64, stepIndex int) (bool, error) {
	token := r.seq.StepRoleAt(stepIndex)
	if token == "" {
		return false, nil
	}

	eligible, err := r.ruleFor(token).Eligible(actor, claimantID)
	if err != nil {
		r.logger.Error("eligibility check failed",
			"error", err,
			"actor_id", actor.ID,
			"claimant_id", claimantID,
			"step_index", stepIndex)
		return false, err
	}

	return eligible, nil
}
