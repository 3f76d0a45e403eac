package middleware

import (
	"chessduel/internal/apperr"
	"chessduel/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const PlayerIDKey contextKey = "playerId"

// AuthMiddleware resolves the acting player from a bearer JWT
type AuthMiddleware struct {
	authSvc  *service.AuthService
	required bool
}

// NewAuthMiddleware creates a new auth middleware. With required set, every
// request must carry a valid player token.
func NewAuthMiddleware(authSvc *service.AuthService, required bool) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc, required: required}
}

// IdentifyPlayer validates a bearer token when one is sent and stores its
// player id in the request context.
func (m *AuthMiddleware) IdentifyPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" || m.authSvc == nil || !m.authSvc.Enabled() {
			if m.required {
				unauthorized(w, "missing authorization")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authSvc.ValidatePlayerToken(token)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), PlayerIDKey, claims.PlayerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPlayerID extracts the authenticated player ID from context
func GetPlayerID(ctx context.Context) string {
	if v := ctx.Value(PlayerIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// unauthorized writes the same error body shape as the REST handlers.
func unauthorized(w http.ResponseWriter, details string) {
	e := apperr.ErrUnauthenticated
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Kind.HTTPStatus())
	json.NewEncoder(w).Encode(map[string]string{
		"error":   e.Message,
		"code":    string(e.Code),
		"kind":    string(e.Kind),
		"details": details,
	})
}
