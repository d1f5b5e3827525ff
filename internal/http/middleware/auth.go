package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/novohorizonte/pcm/internal/repo"
	"github.com/novohorizonte/pcm/internal/service"
)

type contextKey string

const ContextKeyUser contextKey = "user"

// SessionChecker resolve um token opaco para o usuário da sessão viva.
// Devolver (nil, nil) significa token desconhecido ou expirado.
type SessionChecker interface {
	CheckSession(ctx context.Context, token string) (*repo.User, error)
}

// Auth valida o token Bearer e injeta a sessão no contexto.
func Auth(checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "AUTH", "token ausente")
				return
			}

			user, err := checker.CheckSession(r.Context(), parts[1])
			if err != nil {
				writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno")
				return
			}
			if user == nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "sessão inválida ou expirada")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser recupera o usuário autenticado do contexto.
func GetUser(ctx context.Context) *repo.User {
	val, _ := ctx.Value(ContextKeyUser).(*repo.User)
	return val
}

// RequireRoles garante que o usuário autenticado possua um dos papéis.
// admin_root sempre passa.
func RequireRoles(requiredRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "sessão ausente")
				return
			}
			if !service.HasPermission(user, append(requiredRoles, repo.RoleAdminRoot)...) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "permissão insuficiente")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin restringe a administradores.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRoles(repo.RoleAdmin)(next)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
