package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFunctionDispatcherPostsEnvelope(t *testing.T) {
	var got envelope
	var path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type inesperado: %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewFunctionDispatcher(srv.URL)
	d.Dispatch(context.Background(), EventWorkOrderCreated, WorkOrderPayload{
		OrderNumber: "OS-2026-0001",
		Status:      "Pendente",
	})

	if path != "/send-notification" {
		t.Fatalf("rota inesperada: %q", path)
	}
	if got.Event != EventWorkOrderCreated {
		t.Fatalf("evento inesperado: %q", got.Event)
	}
}

func TestFunctionDispatcherSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewFunctionDispatcher(srv.URL)

	// Nenhum panic ou erro: o envio é melhor esforço.
	d.Dispatch(context.Background(), EventWorkOrderUpdated, WorkOrderPayload{})
	d2 := NewFunctionDispatcher("http://127.0.0.1:0")
	d2.Dispatch(context.Background(), EventWorkOrderUpdated, WorkOrderPayload{})
}

func TestNoopDispatcher(t *testing.T) {
	Noop{}.Dispatch(context.Background(), EventWorkOrderCreated, nil)
}
