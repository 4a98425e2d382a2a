package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/approval-workflow/internal"
	"github.com/frahmantamala/approval-workflow/internal/directory"
)

// ActorDirectory resolves an acting user id against the directory.
type ActorDirectory interface {
	GetByID(id int64) (*directory.User, error)
}

// ActingUser loads the already-authenticated principal named by the
// X-Acting-User header into the request context. Authentication itself is
// an upstream concern; this only rejects ids the directory does not know.
func ActingUser(users ActorDirectory, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-Acting-User")
			if raw == "" {
				http.Error(w, "X-Acting-User header required", http.StatusUnauthorized)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				logger.Warn("malformed acting user id", "value", raw)
				http.Error(w, "invalid acting user id", http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(userID)
			if err != nil {
				logger.Warn("acting user not in directory", "user_id", userID)
				http.Error(w, "unknown acting user", http.StatusUnauthorized)
				return
			}

			ctx := internal.ContextWithActingUser(r.Context(), user.ToActingUser())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
