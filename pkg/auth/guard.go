package auth

import (
	"net/http"
	apperrors "stayquest/pkg/errors"
	httputil "stayquest/pkg/http"
	"stayquest/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgUnauthenticated        = "Unauthenticated"
	MsgAuthenticationRequired = "Authentication required"
	MsgAdminRequired          = "Admin access required"
	MsgAdminCheckFailed       = "Failed to verify admin status"
)

// Guard resolves the caller's identity and gates handlers on it.
type Guard struct {
	verifier   Verifier
	authorizer Authorizer
	log        *logger.Logger
}

func NewGuard(verifier Verifier, authorizer Authorizer, log *logger.Logger) *Guard {
	return &Guard{verifier: verifier, authorizer: authorizer, log: log}
}

// Authenticate attaches the user id of a valid session to the request
// context. Requests without a valid session continue anonymously.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := TokenFromRequest(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := g.verifier.Verify(raw)
		if err != nil {
			g.log.FromContext(r.Context()).Debug("Session token rejected", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
	})
}

func (g *Guard) RequireAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if UserIDFromContext(r.Context()) == "" {
			g.write(w, apperrors.Unauthorized(MsgUnauthenticated))
			return
		}
		next(w, r, ps)
	}
}

func (g *Guard) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := UserIDFromContext(r.Context())
		if userID == "" {
			g.write(w, apperrors.Forbidden(MsgAuthenticationRequired))
			return
		}

		isAdmin, err := g.authorizer.IsAdmin(r.Context(), userID)
		if err != nil {
			g.log.FromContext(r.Context()).Error("Admin check failed", "user_id", userID, "error", err)
			g.write(w, apperrors.Forbidden(MsgAdminCheckFailed))
			return
		}
		if !isAdmin {
			g.log.FromContext(r.Context()).Warn("Admin access denied", "user_id", userID)
			g.write(w, apperrors.Forbidden(MsgAdminRequired))
			return
		}

		next(w, r, ps)
	}
}

// RequireAdminUser is RequireAuth followed by RequireAdmin.
func (g *Guard) RequireAdminUser(next httprouter.Handle) httprouter.Handle {
	return g.RequireAuth(g.RequireAdmin(next))
}

func (g *Guard) write(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		g.log.Error("failed to write error response", "operation", "WriteError", "error", writeErr)
	}
}
