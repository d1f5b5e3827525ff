package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Queries encapsula o acesso às tabelas de usuários e sessões.
type Queries struct {
	pool *pgxpool.Pool
}

// New cria as queries sobre o pool informado.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

const userColumns = `
    id, name, username, email, password_hash, role, requested_role, status,
    phone, avatar_url, email_notifications, whatsapp_notifications,
    created_at, last_login, approved_at, approved_by
`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
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
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// GetUserByIdentifier busca por e-mail OU nome de usuário.
func (q *Queries) GetUserByIdentifier(ctx context.Context, identifier string) (User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users
        WHERE lower(email) = lower($1) OR username = $1
        LIMIT 1
    `
	return scanUser(q.pool.QueryRow(ctx, query, strings.TrimSpace(identifier)))
}

// GetUserByID busca usuário pelo id.
func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.pool.QueryRow(ctx, query, id))
}

// EmailExists verifica se o e-mail já está cadastrado.
func (q *Queries) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email),
	).Scan(&exists)
	return exists, err
}

// UsernameExists verifica se o nome de usuário já está em uso.
func (q *Queries) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := q.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		strings.TrimSpace(username),
	).Scan(&exists)
	return exists, err
}

// InsertUserParams reúne os campos de criação de conta.
type InsertUserParams struct {
	Name          string
	Username      *string
	Email         string
	PasswordHash  string
	Role          string
	RequestedRole *string
	Status        string
	Phone         *string
}

// InsertUser cria a conta e devolve a linha persistida.
func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) (User, error) {
	const query = `
        INSERT INTO users (name, username, email, password_hash, role, requested_role, status, phone)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + userColumns + `
	`
	user, err := scanUser(q.pool.QueryRow(ctx, query,
		arg.Name,
		arg.Username,
		strings.TrimSpace(arg.Email),
		arg.PasswordHash,
		arg.Role,
		arg.RequestedRole,
		arg.Status,
		arg.Phone,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return user, nil
}

// UpdateLastLogin registra o instante do último login.
func (q *Queries) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := q.pool.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	return err
}

// ListPendingUsers devolve contas aguardando aprovação, mais recentes primeiro.
func (q *Queries) ListPendingUsers(ctx context.Context) ([]User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users
        WHERE status = 'pending'
        ORDER BY created_at DESC
    `
	rows, err := q.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetRequestedRole lê apenas o papel solicitado na conta.
func (q *Queries) GetRequestedRole(ctx context.Context, id uuid.UUID) (*string, error) {
	var requested *string
	err := q.pool.QueryRow(ctx, `SELECT requested_role FROM users WHERE id = $1`, id).Scan(&requested)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return requested, nil
}

// ApproveUser ativa a conta concedendo o papel informado.
func (q *Queries) ApproveUser(ctx context.Context, id uuid.UUID, role string, approvedBy uuid.UUID, at time.Time) error {
	cmd, err := q.pool.Exec(ctx, `
        UPDATE users
        SET status = 'active', role = $2, approved_at = $3, approved_by = $4
        WHERE id = $1
    `, id, role, at, approvedBy)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RejectUser inativa a conta sem alterar o papel.
func (q *Queries) RejectUser(ctx context.Context, id uuid.UUID, approvedBy uuid.UUID, at time.Time) error {
	cmd, err := q.pool.Exec(ctx, `
        UPDATE users
        SET status = 'inactive', approved_at = $2, approved_by = $3
        WHERE id = $1
    `, id, at, approvedBy)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePasswordHash troca o hash de senha do usuário.
func (q *Queries) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	cmd, err := q.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
