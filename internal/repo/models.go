package repo

import (
	"time"

	"github.com/google/uuid"
)

// Papéis de acesso. Contas novas nascem sempre como RoleUser; o papel
// solicitado só passa a valer após aprovação explícita de um administrador.
const (
	RoleAdminRoot = "admin_root"
	RoleAdmin     = "admin"
	RoleUser      = "user"
)

// Status de conta.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ValidRole informa se o papel é conhecido.
func ValidRole(role string) bool {
	switch role {
	case RoleAdminRoot, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User representa um colaborador do painel PCM.
type User struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	Username              *string    `json:"username,omitempty"`
	Email                 string     `json:"email"`
	PasswordHash          string     `json:"-"`
	Role                  string     `json:"role"`
	RequestedRole         *string    `json:"requested_role,omitempty"`
	Status                string     `json:"status"`
	Phone                 *string    `json:"phone,omitempty"`
	AvatarURL             *string    `json:"avatar_url,omitempty"`
	EmailNotifications    bool       `json:"email_notifications"`
	WhatsappNotifications bool       `json:"whatsapp_notifications"`
	CreatedAt             time.Time  `json:"created_at"`
	LastLogin             *time.Time `json:"last_login,omitempty"`
	ApprovedAt            *time.Time `json:"approved_at,omitempty"`
	ApprovedBy            *uuid.UUID `json:"approved_by,omitempty"`
}

// Session é a credencial portadora: token opaco com expiração fixa.
// Nunca é renovada; um novo login cria uma nova linha.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	IPAddress *string
	UserAgent *string
	CreatedAt time.Time
}

// SessionUser agrega a sessão encontrada com o usuário dono.
type SessionUser struct {
	User      User
	ExpiresAt time.Time
}
