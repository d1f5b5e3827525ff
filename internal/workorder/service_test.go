package workorder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/novohorizonte/pcm/internal/repo"
)

type stubStore struct {
	orders  map[uuid.UUID]WorkOrder
	updated *UpdateParams
	seq     int
}

func newStubStore() *stubStore {
	return &stubStore{orders: make(map[uuid.UUID]WorkOrder)}
}

func (s *stubStore) List(_ context.Context, _ Filter) ([]WorkOrder, error) {
	var list []WorkOrder
	for _, o := range s.orders {
		list = append(list, o)
	}
	return list, nil
}

func (s *stubStore) GetByID(_ context.Context, id uuid.UUID) (WorkOrder, error) {
	o, ok := s.orders[id]
	if !ok {
		return WorkOrder{}, repo.ErrNotFound
	}
	return o, nil
}

func (s *stubStore) Create(_ context.Context, p CreateParams, now time.Time) (WorkOrder, error) {
	s.seq++
	o := WorkOrder{
		ID:          uuid.New(),
		OrderNumber: fmt.Sprintf("OS-%d-%04d", now.Year(), s.seq),
		Issue:       p.Issue,
		Status:      "Pendente",
		Priority:    p.Priority,
		Sector:      p.Sector,
		CreatedAt:   now,
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *stubStore) Update(_ context.Context, p UpdateParams) (WorkOrder, error) {
	o, ok := s.orders[p.ID]
	if !ok {
		return WorkOrder{}, repo.ErrNotFound
	}
	s.updated = &p
	o.Status = p.Status
	if p.RespondedAt != nil {
		o.RespondedAt = p.RespondedAt
	}
	if p.ResolvedAt != nil {
		o.ResolvedAt = p.ResolvedAt
	}
	if p.ResponseHours != nil {
		o.ResponseHours = p.ResponseHours
	}
	o.UpdatedAt = &p.UpdatedAt
	s.orders[p.ID] = o
	return o, nil
}

func (s *stubStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.orders[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

type recordingDispatcher struct {
	events []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event string, _ any) {
	d.events = append(d.events, event)
}

func TestCreateRequiresFields(t *testing.T) {
	svc := NewService(newStubStore(), nil)

	_, err := svc.Create(context.Background(), CreateParams{Issue: "vazamento"})
	if err != ErrMissingFields {
		t.Fatalf("esperado ErrMissingFields, obtido %v", err)
	}
}

func TestCreateOpensPendingAndNotifies(t *testing.T) {
	store := newStubStore()
	disp := &recordingDispatcher{}
	svc := NewService(store, disp)

	order, err := svc.Create(context.Background(), CreateParams{
		Issue:    "vazamento de óleo",
		Priority: "Alta",
		Sector:   "Extrusão",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != "Pendente" {
		t.Fatalf("ordem deve nascer Pendente, obtido %q", order.Status)
	}
	if order.OrderNumber == "" {
		t.Fatal("ordem sem número")
	}
	if len(disp.events) != 1 || disp.events[0] != "work_order_created" {
		t.Fatalf("evento de criação não disparado: %v", disp.events)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	svc := NewService(newStubStore(), nil)

	_, err := svc.UpdateStatus(context.Background(), UpdateInput{ID: uuid.New(), Status: "Em Análise"})
	if err != ErrInvalidStatus {
		t.Fatalf("esperado ErrInvalidStatus, obtido %v", err)
	}
}

func TestFirstAttendanceStampsRespondedAt(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil)

	order, err := svc.Create(context.Background(), CreateParams{
		Issue: "parada total", Priority: "Alta", Sector: "Fundição",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), UpdateInput{
		ID: order.ID, Status: "Em Manutenção",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.RespondedAt == nil {
		t.Fatal("primeiro atendimento deve carimbar responded_at")
	}
	if updated.ResponseHours == nil {
		t.Fatal("primeiro atendimento deve derivar response_hours")
	}

	first := *updated.RespondedAt

	// Um segundo avanço não pode regredir o carimbo.
	again, err := svc.UpdateStatus(context.Background(), UpdateInput{
		ID: order.ID, Status: "Aguardando Peça",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !again.RespondedAt.Equal(first) {
		t.Fatal("responded_at não pode ser sobrescrito")
	}
}

func TestConclusionStampsResolvedAt(t *testing.T) {
	store := newStubStore()
	disp := &recordingDispatcher{}
	svc := NewService(store, disp)

	order, err := svc.Create(context.Background(), CreateParams{
		Issue: "troca de correia", Priority: "Média", Sector: "Usinagem",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), UpdateInput{
		ID: order.ID, Status: "Concluído",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ResolvedAt == nil {
		t.Fatal("conclusão deve carimbar resolved_at")
	}
	if disp.events[len(disp.events)-1] != "work_order_updated" {
		t.Fatalf("evento de atualização não disparado: %v", disp.events)
	}
}

func TestDeleteUnknownOrder(t *testing.T) {
	svc := NewService(newStubStore(), nil)

	if err := svc.Delete(context.Background(), uuid.New()); err != repo.ErrNotFound {
		t.Fatalf("esperado ErrNotFound, obtido %v", err)
	}
}

func TestStatsOrderCoercion(t *testing.T) {
	w := WorkOrder{ID: uuid.New(), OrderNumber: "OS-2026-0001", Status: "Pendente", CreatedAt: time.Now()}

	o := w.StatsOrder()

	if o.DowntimeHours != 0 || o.RepairHours != 0 || o.PartsCost != 0 {
		t.Fatal("campos ausentes devem virar zero")
	}
	if o.TechnicianID != "" || o.AssetID != "" {
		t.Fatal("referências ausentes devem virar vazio")
	}
}
