package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/novohorizonte/pcm/internal/auth"
	"github.com/novohorizonte/pcm/internal/repo"
	"github.com/novohorizonte/pcm/internal/util"
)

var (
	// ErrInvalidCredentials cobre tanto identificador desconhecido quanto
	// senha incorreta; os dois casos viram a mesma mensagem.
	ErrInvalidCredentials = errors.New("usuário ou senha inválidos")
	// ErrAccountNotActive indica conta pendente de aprovação ou inativada.
	ErrAccountNotActive = errors.New("conta aguardando aprovação ou inativa")
	// ErrDuplicateEmail indica e-mail já cadastrado.
	ErrDuplicateEmail = errors.New("este email já está cadastrado")
	// ErrDuplicateUsername indica nome de usuário já em uso.
	ErrDuplicateUsername = errors.New("este nome de usuário já está em uso")
	// ErrApprovalFailed indica falha de leitura ou escrita ao aprovar/rejeitar.
	ErrApprovalFailed = errors.New("erro ao atualizar aprovação do usuário")
	// ErrPasswordMismatch indica senha atual incorreta na troca de senha.
	ErrPasswordMismatch = errors.New("senha atual incorreta")
)

// AuthRepository é o recorte de repo.Queries usado pela autenticação.
type AuthRepository interface {
	GetUserByIdentifier(ctx context.Context, identifier string) (repo.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (repo.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	InsertUser(ctx context.Context, arg repo.InsertUserParams) (repo.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	InsertSession(ctx context.Context, arg repo.InsertSessionParams) (repo.Session, error)
	GetSessionUser(ctx context.Context, token string, now time.Time) (repo.SessionUser, error)
	DeleteSessionByToken(ctx context.Context, token string) error
	ListPendingUsers(ctx context.Context) ([]repo.User, error)
	GetRequestedRole(ctx context.Context, id uuid.UUID) (*string, error)
	ApproveUser(ctx context.Context, id uuid.UUID, role string, approvedBy uuid.UUID, at time.Time) error
	RejectUser(ctx context.Context, id uuid.UUID, approvedBy uuid.UUID, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// SessionCache é o recorte do cliente Redis usado como cache de sessões.
// Pode ser nil; o banco continua sendo a fonte de verdade.
type SessionCache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// AuthService concentra login, registro, ciclo de vida de sessões e o
// fluxo de aprovação de contas.
type AuthService struct {
	repo       AuthRepository
	cache      SessionCache
	sessionTTL time.Duration
}

// NewAuthService cria o serviço. cache pode ser nil.
func NewAuthService(r AuthRepository, cache SessionCache, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{repo: r, cache: cache, sessionTTL: sessionTTL}
}

// SessionMeta carrega metadados opcionais da requisição de login.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// LoginResult devolve o usuário autenticado e o token da nova sessão.
type LoginResult struct {
	User      repo.User
	Token     string
	ExpiresAt time.Time
}

// Login autentica por e-mail ou nome de usuário e abre uma nova sessão.
// Sessões anteriores do mesmo usuário permanecem válidas.
func (s *AuthService) Login(ctx context.Context, identifier, password string, meta SessionMeta) (*LoginResult, error) {
	user, err := s.repo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("login: usuário não encontrado")
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("login: falha ao buscar usuário")
		return nil, ErrInvalidCredentials
	}

	// O status é verificado antes da senha: uma conta pendente ou inativa
	// nunca revela se a senha informada estava correta.
	if user.Status != repo.StatusActive {
		return nil, ErrAccountNotActive
	}

	ok, err := auth.Verify(password, user.PasswordHash)
	if err != nil {
		log.Warn().Err(err).Msg("login: verificação de senha falhou")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		log.Warn().Msg("login: senha inválida")
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := util.Now()
	expires := now.Add(s.sessionTTL)

	_, err = s.repo.InsertSession(ctx, repo.InsertSessionParams{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expires,
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
	})
	if err != nil {
		log.Error().Err(err).Msg("login: falha ao criar sessão")
		return nil, fmt.Errorf("criar sessão: %w", err)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Msg("login: falha ao registrar last_login")
	}
	s.primeCache(ctx, token, user.ID, expires)

	lastLogin := now
	user.LastLogin = &lastLogin

	return &LoginResult{User: user, Token: token, ExpiresAt: expires}, nil
}

// RegisterInput reúne os dados de criação de conta.
type RegisterInput struct {
	Name          string
	Username      string
	Email         string
	Password      string
	RequestedRole string
	Phone         string
}

// Register cria a conta em status pending com papel forçado para user;
// o papel solicitado fica em requested_role até a aprovação. Nunca abre
// sessão: contas recém-criadas não são utilizáveis.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (repo.User, error) {
	if err := util.ValidateEmail(input.Email); err != nil {
		return repo.User{}, err
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return repo.User{}, err
	}
	if err := util.RequireString(input.Name, "nome"); err != nil {
		return repo.User{}, err
	}
	if err := util.RequireString(input.Username, "nome de usuário"); err != nil {
		return repo.User{}, err
	}

	if exists, err := s.repo.EmailExists(ctx, input.Email); err != nil {
		return repo.User{}, err
	} else if exists {
		return repo.User{}, ErrDuplicateEmail
	}
	if exists, err := s.repo.UsernameExists(ctx, input.Username); err != nil {
		return repo.User{}, err
	} else if exists {
		return repo.User{}, ErrDuplicateUsername
	}

	hash, err := auth.Hash(input.Password)
	if err != nil {
		return repo.User{}, err
	}

	requested := strings.TrimSpace(input.RequestedRole)
	if !repo.ValidRole(requested) {
		requested = repo.RoleUser
	}

	username := strings.TrimSpace(input.Username)
	user, err := s.repo.InsertUser(ctx, repo.InsertUserParams{
		Name:          strings.TrimSpace(input.Name),
		Username:      &username,
		Email:         input.Email,
		PasswordHash:  hash,
		Role:          repo.RoleUser,
		RequestedRole: &requested,
		Status:        repo.StatusPending,
		Phone:         optional(input.Phone),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return repo.User{}, ErrDuplicateEmail
		}
		return repo.User{}, err
	}
	return user, nil
}

// CheckSession resolve o token para a identidade atual. Token ausente,
// desconhecido ou expirado devolve (nil, nil), nunca erro.
func (s *AuthService) CheckSession(ctx context.Context, token string) (*repo.User, error) {
	if token == "" {
		return nil, nil
	}

	if user := s.lookupCache(ctx, token); user != nil {
		return user, nil
	}

	su, err := s.repo.GetSessionUser(ctx, token, util.Now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.dropCache(ctx, token)
			return nil, nil
		}
		log.Error().Err(err).Msg("sessão: falha ao consultar token")
		return nil, nil
	}

	s.primeCache(ctx, token, su.User.ID, su.ExpiresAt)
	user := su.User
	return &user, nil
}

// Logout apaga a sessão do banco e do cache. O chamador descarta o token
// incondicionalmente, mesmo que a remoção falhe.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.repo.DeleteSessionByToken(ctx, token); err != nil {
		log.Warn().Err(err).Msg("logout: falha ao remover sessão")
	}
	s.dropCache(ctx, token)
}

// ListPendingUsers devolve contas aguardando aprovação.
func (s *AuthService) ListPendingUsers(ctx context.Context) ([]repo.User, error) {
	return s.repo.ListPendingUsers(ctx)
}

// ApproveUser ativa a conta concedendo o papel solicitado (user quando
// nenhum foi pedido). A autorização do chamador é exigida na borda HTTP.
func (s *AuthService) ApproveUser(ctx context.Context, userID, approvedBy uuid.UUID) error {
	requested, err := s.repo.GetRequestedRole(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID.String()).Msg("aprovação: falha ao ler papel solicitado")
		return ErrApprovalFailed
	}

	role := repo.RoleUser
	if requested != nil && repo.ValidRole(*requested) {
		role = *requested
	}

	if err := s.repo.ApproveUser(ctx, userID, role, approvedBy, util.Now()); err != nil {
		log.Error().Err(err).Str("user", userID.String()).Msg("aprovação: falha ao ativar conta")
		return ErrApprovalFailed
	}
	return nil
}

// RejectUser inativa a conta mantendo o papel original.
func (s *AuthService) RejectUser(ctx context.Context, userID, approvedBy uuid.UUID) error {
	if err := s.repo.RejectUser(ctx, userID, approvedBy, util.Now()); err != nil {
		log.Error().Err(err).Str("user", userID.String()).Msg("rejeição: falha ao inativar conta")
		return ErrApprovalFailed
	}
	return nil
}

// ChangePassword troca a senha após conferir a atual com o mesmo Verify
// usado no login.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := auth.Verify(current, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPasswordMismatch
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, userID, hash)
}

// HasPermission é o predicado puro de autorização: pertença do papel do
// usuário ao conjunto exigido. Sem efeitos colaterais.
func HasPermission(user *repo.User, required ...string) bool {
	if user == nil {
		return false
	}
	for _, role := range required {
		if user.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin cobre admin e admin_root.
func IsAdmin(user *repo.User) bool {
	return HasPermission(user, repo.RoleAdmin, repo.RoleAdminRoot)
}

// IsAdminRoot distingue o administrador raiz.
func IsAdminRoot(user *repo.User) bool {
	return HasPermission(user, repo.RoleAdminRoot)
}

func (s *AuthService) primeCache(ctx context.Context, token string, userID uuid.UUID, expires time.Time) {
	if s.cache == nil {
		return
	}
	ttl := time.Until(expires)
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, auth.SessionCacheKey(token), userID.String(), ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("sessão: falha ao gravar cache")
	}
}

func (s *AuthService) lookupCache(ctx context.Context, token string) *repo.User {
	if s.cache == nil {
		return nil
	}
	val, err := s.cache.Get(ctx, auth.SessionCacheKey(token)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("sessão: falha ao ler cache")
		}
		return nil
	}
	id, err := uuid.Parse(val)
	if err != nil {
		s.dropCache(ctx, token)
		return nil
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		s.dropCache(ctx, token)
		return nil
	}
	return &user
}

func (s *AuthService) dropCache(ctx context.Context, token string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, auth.SessionCacheKey(token)).Err(); err != nil && err != redis.Nil {
		log.Warn().Err(err).Msg("sessão: falha ao limpar cache")
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
