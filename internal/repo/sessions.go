package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertSessionParams reúne os campos de criação de sessão.
type InsertSessionParams struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	IPAddress *string
	UserAgent *string
}

// InsertSession persiste uma nova sessão. Sessões antigas do mesmo usuário
// não são tocadas; logins concorrentes são permitidos.
func (q *Queries) InsertSession(ctx context.Context, arg InsertSessionParams) (Session, error) {
	const query = `
        INSERT INTO user_sessions (user_id, token, expires_at, ip_address, user_agent)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, user_id, token, expires_at, ip_address, user_agent, created_at
    `
	var s Session
	err := q.pool.QueryRow(ctx, query,
		arg.UserID,
		arg.Token,
		arg.ExpiresAt,
		arg.IPAddress,
		arg.UserAgent,
	).Scan(&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.IPAddress, &s.UserAgent, &s.CreatedAt)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

// GetSessionUser busca a sessão pelo token junto com o usuário dono.
// A validade é decidida pela comparação de expiração no momento da leitura;
// não existe processo de limpeza em segundo plano.
func (q *Queries) GetSessionUser(ctx context.Context, token string, now time.Time) (SessionUser, error) {
	const query = `
        SELECT s.expires_at,
               u.id, u.name, u.username, u.email, u.password_hash, u.role,
               u.requested_role, u.status, u.phone, u.avatar_url,
               u.email_notifications, u.whatsapp_notifications,
               u.created_at, u.last_login, u.approved_at, u.approved_by
        FROM user_sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.token = $1 AND s.expires_at > $2
    `
	row := q.pool.QueryRow(ctx, query, token, now)

	var su SessionUser
	u := &su.User
	err := row.Scan(
		&su.ExpiresAt,
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.RequestedRole,
		&u.Status,
		&u.Phone,
		&u.AvatarURL,
		&u.EmailNotifications,
		&u.WhatsappNotifications,
		&u.CreatedAt,
		&u.LastLogin,
		&u.ApprovedAt,
		&u.ApprovedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SessionUser{}, ErrNotFound
		}
		return SessionUser{}, err
	}
	return su, nil
}

// DeleteSessionByToken remove a sessão correspondente ao token, se houver.
func (q *Queries) DeleteSessionByToken(ctx context.Context, token string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM user_sessions WHERE token = $1`, token)
	return err
}
