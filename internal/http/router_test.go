package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/novohorizonte/pcm/internal/asset"
	"github.com/novohorizonte/pcm/internal/auth"
	"github.com/novohorizonte/pcm/internal/inventory"
	"github.com/novohorizonte/pcm/internal/notify"
	"github.com/novohorizonte/pcm/internal/repo"
	"github.com/novohorizonte/pcm/internal/service"
	"github.com/novohorizonte/pcm/internal/settings"
	"github.com/novohorizonte/pcm/internal/technician"
	"github.com/novohorizonte/pcm/internal/workorder"
)

// stubChecker resolve tokens fixos para usuários de teste.
type stubChecker struct {
	sessions map[string]*repo.User
}

func (s *stubChecker) CheckSession(_ context.Context, token string) (*repo.User, error) {
	return s.sessions[token], nil
}

// stubAuthRepo é o recorte mínimo de banco para exercitar o AuthService
// pelos handlers.
type stubAuthRepo struct {
	user     repo.User
	sessions map[string]repo.Session
}

func (s *stubAuthRepo) GetUserByIdentifier(_ context.Context, identifier string) (repo.User, error) {
	if identifier == s.user.Email || (s.user.Username != nil && identifier == *s.user.Username) {
		return s.user, nil
	}
	return repo.User{}, repo.ErrNotFound
}

func (s *stubAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (repo.User, error) {
	if id == s.user.ID {
		return s.user, nil
	}
	return repo.User{}, repo.ErrNotFound
}

func (s *stubAuthRepo) EmailExists(_ context.Context, _ string) (bool, error)    { return false, nil }
func (s *stubAuthRepo) UsernameExists(_ context.Context, _ string) (bool, error) { return false, nil }

func (s *stubAuthRepo) InsertUser(_ context.Context, arg repo.InsertUserParams) (repo.User, error) {
	return repo.User{ID: uuid.New(), Name: arg.Name, Email: arg.Email, Phone: arg.Phone, Role: arg.Role, Status: arg.Status, RequestedRole: arg.RequestedRole}, nil
}

func (s *stubAuthRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

func (s *stubAuthRepo) InsertSession(_ context.Context, arg repo.InsertSessionParams) (repo.Session, error) {
	sess := repo.Session{ID: uuid.New(), UserID: arg.UserID, Token: arg.Token, ExpiresAt: arg.ExpiresAt}
	s.sessions[arg.Token] = sess
	return sess, nil
}

func (s *stubAuthRepo) GetSessionUser(_ context.Context, token string, now time.Time) (repo.SessionUser, error) {
	sess, ok := s.sessions[token]
	if !ok || !sess.ExpiresAt.After(now) {
		return repo.SessionUser{}, repo.ErrNotFound
	}
	return repo.SessionUser{User: s.user, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *stubAuthRepo) DeleteSessionByToken(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *stubAuthRepo) ListPendingUsers(_ context.Context) ([]repo.User, error) {
	return []repo.User{}, nil
}

func (s *stubAuthRepo) GetRequestedRole(_ context.Context, _ uuid.UUID) (*string, error) {
	return nil, nil
}

func (s *stubAuthRepo) ApproveUser(_ context.Context, _ uuid.UUID, _ string, _ uuid.UUID, _ time.Time) error {
	return nil
}

func (s *stubAuthRepo) RejectUser(_ context.Context, _ uuid.UUID, _ uuid.UUID, _ time.Time) error {
	return nil
}

func (s *stubAuthRepo) UpdatePasswordHash(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

// stubOrderStore guarda ordens em memória.
type stubOrderStore struct {
	orders []workorder.WorkOrder
}

func (s *stubOrderStore) List(_ context.Context, _ workorder.Filter) ([]workorder.WorkOrder, error) {
	return s.orders, nil
}

func (s *stubOrderStore) GetByID(_ context.Context, id uuid.UUID) (workorder.WorkOrder, error) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return workorder.WorkOrder{}, repo.ErrNotFound
}

func (s *stubOrderStore) Create(_ context.Context, p workorder.CreateParams, now time.Time) (workorder.WorkOrder, error) {
	o := workorder.WorkOrder{
		ID: uuid.New(), OrderNumber: "OS-2026-0001", Issue: p.Issue,
		Status: "Pendente", Priority: p.Priority, Sector: p.Sector, CreatedAt: now,
	}
	s.orders = append(s.orders, o)
	return o, nil
}

func (s *stubOrderStore) Update(_ context.Context, p workorder.UpdateParams) (workorder.WorkOrder, error) {
	for i, o := range s.orders {
		if o.ID == p.ID {
			o.Status = p.Status
			s.orders[i] = o
			return o, nil
		}
	}
	return workorder.WorkOrder{}, repo.ErrNotFound
}

func (s *stubOrderStore) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubAssets struct {
	assets []asset.Asset
}

func (s *stubAssets) List(_ context.Context) ([]asset.Asset, error) { return s.assets, nil }
func (s *stubAssets) GetByID(_ context.Context, _ uuid.UUID) (asset.Asset, error) {
	return asset.Asset{}, repo.ErrNotFound
}
func (s *stubAssets) Create(_ context.Context, p asset.CreateParams) (asset.Asset, error) {
	return asset.Asset{ID: uuid.New(), Code: p.Code, Name: p.Name, Status: p.Status}, nil
}
func (s *stubAssets) Update(_ context.Context, id uuid.UUID, p asset.CreateParams) (asset.Asset, error) {
	return asset.Asset{ID: id, Code: p.Code, Name: p.Name, Status: p.Status}, nil
}
func (s *stubAssets) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubTechnicians struct{}

func (stubTechnicians) ListTechnicians(_ context.Context) ([]technician.Technician, error) {
	return nil, nil
}
func (stubTechnicians) CreateTechnician(_ context.Context, p technician.TechnicianParams) (technician.Technician, error) {
	return technician.Technician{ID: uuid.New(), Name: p.Name, Status: p.Status}, nil
}
func (stubTechnicians) UpdateTechnician(_ context.Context, id uuid.UUID, p technician.TechnicianParams) (technician.Technician, error) {
	return technician.Technician{ID: id, Name: p.Name, Status: p.Status}, nil
}
func (stubTechnicians) DeleteTechnician(_ context.Context, _ uuid.UUID) error { return nil }
func (stubTechnicians) ListThirdParties(_ context.Context) ([]technician.ThirdParty, error) {
	return nil, nil
}
func (stubTechnicians) CreateThirdParty(_ context.Context, p technician.ThirdPartyParams) (technician.ThirdParty, error) {
	return technician.ThirdParty{ID: uuid.New(), Name: p.Name}, nil
}
func (stubTechnicians) DeleteThirdParty(_ context.Context, _ uuid.UUID) error { return nil }

type stubInventory struct {
	items []inventory.Item
}

func (s *stubInventory) List(_ context.Context) ([]inventory.Item, error) { return s.items, nil }
func (s *stubInventory) Create(_ context.Context, p inventory.ItemParams) (inventory.Item, error) {
	return inventory.Item{ID: uuid.New(), SKU: p.SKU, Name: p.Name,
		Quantity: p.Quantity, MinStock: p.MinStock, UnitValue: p.UnitValue,
		Status: inventory.DeriveStatus(p.Quantity, p.MinStock)}, nil
}
func (s *stubInventory) Update(_ context.Context, id uuid.UUID, p inventory.ItemParams) (inventory.Item, error) {
	return inventory.Item{ID: id, SKU: p.SKU, Name: p.Name,
		Status: inventory.DeriveStatus(p.Quantity, p.MinStock)}, nil
}
func (s *stubInventory) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubSettings struct {
	saved *settings.Settings
}

func (s *stubSettings) Get(_ context.Context) (settings.Settings, error) {
	if s.saved != nil {
		return *s.saved, nil
	}
	return settings.Defaults(), nil
}

func (s *stubSettings) Save(_ context.Context, cfg settings.Settings, _ uuid.UUID) (settings.Settings, error) {
	s.saved = &cfg
	return cfg, nil
}

func testUser(t *testing.T, role string) (*repo.User, string) {
	t.Helper()
	hash, err := auth.Hash("segredo1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	username := "ana"
	return &repo.User{
		ID:           uuid.New(),
		Name:         "Ana",
		Username:     &username,
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         role,
		Status:       repo.StatusActive,
	}, "token-" + role
}

func newTestRouter(t *testing.T, users ...*repo.User) (http.Handler, map[string]*repo.User) {
	t.Helper()

	sessions := make(map[string]*repo.User)
	for _, u := range users {
		sessions["token-"+u.Role] = u
	}

	authRepo := &stubAuthRepo{sessions: make(map[string]repo.Session)}
	if len(users) > 0 {
		authRepo.user = *users[0]
	}

	h := &Handler{
		auth:        service.NewAuthService(authRepo, nil, time.Hour),
		orders:      workorder.NewService(&stubOrderStore{}, notify.Noop{}),
		assets:      &stubAssets{},
		technicians: stubTechnicians{},
		inventory:   &stubInventory{},
		settings:    &stubSettings{},
	}
	return h.Routes(&stubChecker{sessions: sessions}), sessions
}

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return payload
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("esperado 200, obtido %d", res.Code)
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("esperado 401, obtido %d", res.Code)
	}
	payload := decodeEnvelope(t, res.Body.Bytes())
	if payload["data"] != nil {
		t.Fatal("envelope de erro deve ter data nulo")
	}
}

func TestDashboardWithSession(t *testing.T) {
	user, token := testUser(t, repo.RoleUser)
	router, _ := newTestRouter(t, user)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("esperado 200, obtido %d: %s", res.Code, res.Body.String())
	}
	payload := decodeEnvelope(t, res.Body.Bytes())
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("envelope sem data: %s", res.Body.String())
	}
	if _, ok := data["executive"]; !ok {
		t.Fatal("dashboard sem consolidado executivo")
	}
}

func TestPendingUsersRequiresAdmin(t *testing.T) {
	user, token := testUser(t, repo.RoleUser)
	router, _ := newTestRouter(t, user)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("esperado 403 para papel user, obtido %d", res.Code)
	}
}

func TestPendingUsersAsAdmin(t *testing.T) {
	admin, token := testUser(t, repo.RoleAdmin)
	router, _ := newTestRouter(t, admin)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("esperado 200 para admin, obtido %d", res.Code)
	}
}

func TestAdminRootPassesAdminGate(t *testing.T) {
	root, token := testUser(t, repo.RoleAdminRoot)
	router, _ := newTestRouter(t, root)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("admin_root deve passar pela trava de admin, obtido %d", res.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	user, _ := testUser(t, repo.RoleUser)
	router, _ := newTestRouter(t, user)

	body, _ := json.Marshal(map[string]string{
		"identifier": "ana@example.com",
		"password":   "segredo1",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("esperado 200, obtido %d: %s", res.Code, res.Body.String())
	}
	payload := decodeEnvelope(t, res.Body.Bytes())
	data := payload["data"].(map[string]any)
	if data["token"] == "" {
		t.Fatal("login sem token")
	}
	if _, ok := data["user"].(map[string]any)["password_hash"]; ok {
		t.Fatal("hash de senha vazou na resposta")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user, _ := testUser(t, repo.RoleUser)
	router, _ := newTestRouter(t, user)

	body, _ := json.Marshal(map[string]string{
		"identifier": "ana@example.com",
		"password":   "errada",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("esperado 401, obtido %d", res.Code)
	}
	payload := decodeEnvelope(t, res.Body.Bytes())
	errBody := payload["error"].(map[string]any)
	if errBody["code"] != "AUTH" {
		t.Fatalf("código de erro inesperado: %v", errBody["code"])
	}
}

func TestRegisterAcceptsPhone(t *testing.T) {
	router, _ := newTestRouter(t)

	// O telefone é opcional no cadastro e precisa atravessar o handler
	// sem derrubar a decodificação estrita do corpo.
	body, _ := json.Marshal(map[string]string{
		"name":     "Carlos Lima",
		"username": "carlos",
		"email":    "carlos@example.com",
		"password": "segredo1",
		"phone":    "11999999999",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("esperado 201, obtido %d: %s", res.Code, res.Body.String())
	}
	payload := decodeEnvelope(t, res.Body.Bytes())
	data := payload["data"].(map[string]any)
	if data["phone"] != "11999999999" {
		t.Fatalf("telefone não persistido no cadastro: %v", data["phone"])
	}
}

func TestPublicReportSkipsAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/reports/public", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("relatório público não pode exigir sessão, obtido %d", res.Code)
	}
}

func TestCreateWorkOrderValidation(t *testing.T) {
	user, token := testUser(t, repo.RoleUser)
	router, _ := newTestRouter(t, user)

	body, _ := json.Marshal(map[string]string{"issue": "só o problema"})
	req := httptest.NewRequest(http.MethodPost, "/v1/workorders", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("esperado 422, obtido %d", res.Code)
	}
}

func TestDeleteWorkOrderRequiresAdmin(t *testing.T) {
	user, token := testUser(t, repo.RoleUser)
	router, _ := newTestRouter(t, user)

	req := httptest.NewRequest(http.MethodDelete, "/v1/workorders/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("esperado 403, obtido %d", res.Code)
	}
}
