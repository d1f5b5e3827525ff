// Package notify publica eventos de domínio para as funções de
// notificação externas. Todo envio é melhor esforço: falhas são
// registradas e nunca interrompem a operação que originou o evento.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/novohorizonte/pcm/internal/metrics"
)

// Eventos conhecidos.
const (
	EventWorkOrderCreated = "work_order_created"
	EventWorkOrderUpdated = "work_order_updated"
)

// WorkOrderPayload é o corpo enviado para eventos de ordem de serviço.
type WorkOrderPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Issue       string `json:"issue"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Sector      string `json:"sector"`
}

// Dispatcher publica um evento nomeado com o corpo dado.
type Dispatcher interface {
	Dispatch(ctx context.Context, event string, payload any)
}

// Noop descarta todos os eventos. Usado quando não há endpoint
// configurado e nos testes.
type Noop struct{}

func (Noop) Dispatch(context.Context, string, any) {}

// FunctionDispatcher envia eventos via POST JSON para a função
// send-notification hospedada em baseURL.
type FunctionDispatcher struct {
	baseURL string
	client  *http.Client
}

func NewFunctionDispatcher(baseURL string) *FunctionDispatcher {
	return &FunctionDispatcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func (d *FunctionDispatcher) Dispatch(ctx context.Context, event string, payload any) {
	body, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("notify: payload inválido")
		return
	}

	url := fmt.Sprintf("%s/send-notification", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("notify: requisição inválida")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("notify: envio falhou")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("event", event).
			Msg("notify: função recusou o evento")
		return
	}
	metrics.NotificationsSent.Inc()
}
