package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/novohorizonte/pcm/internal/http/middleware"
	"github.com/novohorizonte/pcm/internal/metrics"
	"github.com/novohorizonte/pcm/internal/repo"
	"github.com/novohorizonte/pcm/internal/service"
	"github.com/novohorizonte/pcm/internal/util"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      repo.User `json:"user"`
}

// Login autentica por e-mail ou nome de usuário.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}
	if strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "identificador e senha são obrigatórios", nil)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Identifier, req.Password, service.SessionMeta{
		IPAddress: r.Header.Get("X-Real-IP"),
		UserAgent: r.Header.Get("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAccountNotActive) {
			metrics.Logins.WithLabelValues("denied").Inc()
		} else {
			metrics.Logins.WithLabelValues("error").Inc()
		}
		writeServiceError(w, err)
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	WriteJSON(w, http.StatusOK, sessionResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

type registerRequest struct {
	Name          string `json:"name"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	RequestedRole string `json:"requested_role"`
}

// Register cria a conta em status pendente, sem abrir sessão.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:          req.Name,
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		RequestedRole: req.RequestedRole,
	})
	if err != nil {
		var vErr *util.ValidationError
		if errors.As(err, &vErr) {
			WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", vErr.Error(), nil)
			return
		}
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// Session devolve o usuário da sessão autenticada.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
}

// Logout revoga a sessão do token apresentado. Sempre responde 204.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		h.auth.Logout(r.Context(), parts[1])
	}
	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword troca a senha do usuário autenticado após conferir a
// senha atual contra o hash armazenado.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.auth.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		var vErr *util.ValidationError
		if errors.As(err, &vErr) {
			WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", vErr.Error(), nil)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
