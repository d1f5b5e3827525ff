// Package metrics expõe os contadores Prometheus do serviço.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Logins conta autenticações por resultado (success, denied, error).
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pcm",
		Name:      "logins_total",
		Help:      "Autenticações por resultado.",
	}, []string{"result"})

	// HTTPRequests conta requisições por rota e classe de status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pcm",
		Name:      "http_requests_total",
		Help:      "Requisições HTTP por rota e classe de status.",
	}, []string{"route", "status"})

	// WorkOrdersCreated conta ordens de serviço abertas.
	WorkOrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pcm",
		Name:      "work_orders_created_total",
		Help:      "Ordens de serviço abertas.",
	})

	// NotificationsSent conta eventos aceitos pela função de notificação.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pcm",
		Name:      "notifications_sent_total",
		Help:      "Eventos de notificação entregues.",
	})
)

// Handler serve o endpoint /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
