package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/novohorizonte/pcm/internal/repo"
	"github.com/novohorizonte/pcm/internal/service"
	"github.com/novohorizonte/pcm/internal/workorder"
)

// SuccessEnvelope padroniza respostas com dados.
type SuccessEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

// ErrorEnvelope padroniza respostas de erro.
type ErrorEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON escreve envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessEnvelope{Data: data, Error: nil})
}

// WriteError escreve envelope de erro e mantém formato consistente.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Data:  nil,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}

// ReadJSON decodifica o corpo rejeitando campos desconhecidos.
func ReadJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError traduz os erros sentinela dos serviços para o
// envelope HTTP. Erros não mapeados viram 500 com mensagem genérica.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "AUTH", "credenciais inválidas", nil)
	case errors.Is(err, service.ErrAccountNotActive):
		WriteError(w, http.StatusForbidden, "ACCOUNT_NOT_ACTIVE",
			"conta aguardando aprovação ou desativada", nil)
	case errors.Is(err, service.ErrDuplicateEmail):
		WriteError(w, http.StatusConflict, "DUPLICATE_EMAIL", "e-mail já cadastrado", nil)
	case errors.Is(err, service.ErrDuplicateUsername):
		WriteError(w, http.StatusConflict, "DUPLICATE_USERNAME", "usuário já cadastrado", nil)
	case errors.Is(err, service.ErrPasswordMismatch):
		WriteError(w, http.StatusUnprocessableEntity, "PASSWORD_MISMATCH",
			"senha atual incorreta", nil)
	case errors.Is(err, service.ErrApprovalFailed):
		WriteError(w, http.StatusUnprocessableEntity, "APPROVAL_FAILED",
			"não foi possível aprovar o usuário", nil)
	case errors.Is(err, workorder.ErrInvalidStatus):
		WriteError(w, http.StatusUnprocessableEntity, "INVALID_STATUS",
			"status de ordem inválido", nil)
	case errors.Is(err, workorder.ErrMissingFields):
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION",
			"campos obrigatórios ausentes", nil)
	case errors.Is(err, repo.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "recurso não encontrado", nil)
	case errors.Is(err, repo.ErrDuplicate):
		WriteError(w, http.StatusConflict, "DUPLICATE", "registro duplicado", nil)
	default:
		log.Error().Err(err).Msg("erro não mapeado")
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}
