package expense

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/approval-workflow/internal"
	"github.com/frahmantamala/approval-workflow/internal/directory"
	"github.com/frahmantamala/approval-workflow/internal/transport"
	"github.com/frahmantamala/approval-workflow/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Submit(employeeID int64, dto SubmitExpenseDTO) (*Expense, error)
	Decide(expenseID, actorID int64, approved bool) (*Expense, error)
	GetByID(expenseID int64, actor *directory.User) (*Expense, error)
	OwnClaims(employeeID int64) ([]*Expense, error)
	PendingActionsFor(actor *directory.User) ([]*Expense, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) actingUser(w http.ResponseWriter, r *http.Request) (*directory.User, bool) {
	acting, ok := internal.ActingUserFromContext(r.Context())
	if !ok || acting == nil {
		h.Logger.Error("acting user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "acting user not supplied")
		return nil, false
	}
	return directory.FromActingUser(acting), true
}

func (h *Handler) SubmitExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	var dto SubmitExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claim, err := h.Service.Submit(actor.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitExpense: service error", "error", err, "employee_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("SubmitExpense: claim created",
		"expense_id", claim.ID,
		"employee_id", actor.ID,
		"amount", claim.Amount.String())

	h.WriteJSON(w, http.StatusCreated, claim)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	claim, err := h.Service.GetByID(expenseID, actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, claim)
}

func (h *Handler) OwnClaims(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	claims, err := h.Service.OwnClaims(actor.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"expenses": claims})
}

func (h *Handler) PendingActions(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	claims, err := h.Service.PendingActionsFor(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"expenses": claims})
}

func (h *Handler) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *Handler) RejectExpense(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, approved bool) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	claim, err := h.Service.Decide(expenseID, actor.ID, approved)
	if err != nil {
		h.Logger.Error("decide: service error",
			"error", err,
			"expense_id", expenseID,
			"actor_id", actor.ID,
			"approved", approved)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("decide: decision applied",
		"expense_id", claim.ID,
		"actor_id", actor.ID,
		"approved", approved,
		"status", claim.Status)

	h.WriteJSON(w, http.StatusOK, claim)
}
