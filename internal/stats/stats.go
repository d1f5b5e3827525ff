// Package stats reduz coleções de ordens de serviço a métricas de
// confiabilidade, custo e desempenho. Todas as funções são puras: nada é
// persistido e nada falha. Campos ausentes ou malformados contribuem com
// zero para cada termo numérico.
package stats

import (
	"strings"
	"time"
)

// Status de ordem de serviço.
const (
	StatusPendente       = "Pendente"
	StatusEmManutencao   = "Em Manutenção"
	StatusAguardandoPeca = "Aguardando Peça"
	StatusConcluido      = "Concluído"
	StatusCancelado      = "Cancelado"
)

// Order é a visão de uma ordem de serviço consumida pelo agregador,
// já com as referências de ativo e executor resolvidas.
type Order struct {
	ID              string
	OrderNumber     string
	Status          string
	Priority        string
	MaintenanceType string
	FailureType     string
	AssetID         string
	AssetName       string
	AssetCategory   string
	TechnicianID    string
	TechnicianName  string
	ThirdPartyID    string
	ThirdPartyName  string
	CreatedAt       time.Time
	RespondedAt     *time.Time
	ResolvedAt      *time.Time
	UpdatedAt       *time.Time
	DowntimeHours   float64
	RepairHours     float64
	ResponseHours   float64
	EstimatedHours  float64
	PartsCost       float64
	HourlyRate      float64
}

// Closed informa se a ordem está no estado terminal.
func (o Order) Closed() bool {
	return o.Status == StatusConcluido
}

// Attended informa se a ordem teve primeiro atendimento registrado.
func (o Order) Attended() bool {
	return o.ResponseHours != 0 || o.RespondedAt != nil
}

// Corrective informa se a ordem é de manutenção corretiva.
func (o Order) Corrective() bool {
	return strings.EqualFold(strings.TrimSpace(o.MaintenanceType), "corretiva")
}

// Preventive informa se a ordem é de manutenção preventiva.
func (o Order) Preventive() bool {
	return strings.EqualFold(strings.TrimSpace(o.MaintenanceType), "preventiva")
}

// Stats é o conjunto fixo de métricas operacionais de um período.
type Stats struct {
	MTTR            float64 `json:"mttr"`
	MTTA            float64 `json:"mtta"`
	MTBF            float64 `json:"mtbf"`
	Downtime        float64 `json:"downtime"`
	Availability    float64 `json:"availability"`
	Cost            float64 `json:"cost"`
	PartsCost       float64 `json:"parts_cost"`
	LaborCost       float64 `json:"labor_cost"`
	CorrectiveCount int     `json:"corrective_count"`
}

// Calculate reduz as ordens de um período às métricas operacionais.
// periodHours é a janela observada em horas; assetCount o número de ativos
// da categoria; now o instante de referência para ordens ainda abertas.
//
// Regras de borda:
//   - MTTR/MTTA valem 0 com conjunto vazio, nunca NaN.
//   - Ordens abertas contribuem para o downtime com o tempo decorrido até
//     now: o valor cresce a cada chamada e não é armazenado.
//   - MTBF recai para periodHours quando não houve corretivas no período.
//   - Disponibilidade vale 100 quando não há ativos.
func Calculate(orders []Order, periodHours float64, assetCount int, now time.Time) Stats {
	var st Stats

	var repairSum float64
	var closedCount int
	var responseSum float64
	var attendedCount int

	for _, o := range orders {
		if o.Closed() {
			repairSum += o.RepairHours
			closedCount++
		}
		if o.Attended() {
			responseSum += responseHours(o)
			attendedCount++
		}
		if o.Corrective() {
			st.CorrectiveCount++
		}
		st.Downtime += downtimeHours(o, now)
		st.PartsCost += o.PartsCost
		if o.ThirdPartyID != "" {
			st.LaborCost += o.HourlyRate
		}
	}

	if closedCount > 0 {
		st.MTTR = repairSum / float64(closedCount)
	}
	if attendedCount > 0 {
		st.MTTA = responseSum / float64(attendedCount)
	}

	total := periodHours * float64(assetCount)
	operable := total - st.Downtime

	if st.CorrectiveCount > 0 {
		st.MTBF = operable / float64(st.CorrectiveCount)
	} else {
		// Sem falhas observadas: o MTBF sinaliza a própria janela,
		// não as horas operáveis.
		st.MTBF = periodHours
	}

	if assetCount == 0 {
		st.Availability = 100
	} else {
		st.Availability = (total - st.Downtime) / total * 100
	}

	st.Cost = st.PartsCost + st.LaborCost
	return st
}

// responseHours usa o campo armazenado quando positivo; senão deriva do
// intervalo entre criação e primeiro atendimento.
func responseHours(o Order) float64 {
	if o.ResponseHours > 0 {
		return o.ResponseHours
	}
	if o.RespondedAt != nil && !o.CreatedAt.IsZero() {
		if h := o.RespondedAt.Sub(o.CreatedAt).Hours(); h > 0 {
			return h
		}
	}
	return 0
}

// downtimeHours devolve o maior entre o valor armazenado e o tempo
// decorrido: até resolved_at/updated_at quando concluída, até now quando
// ainda aberta.
func downtimeHours(o Order, now time.Time) float64 {
	if o.CreatedAt.IsZero() {
		return o.DowntimeHours
	}

	end := now
	if o.Closed() {
		switch {
		case o.ResolvedAt != nil:
			end = *o.ResolvedAt
		case o.UpdatedAt != nil:
			end = *o.UpdatedAt
		}
	}

	elapsed := end.Sub(o.CreatedAt).Hours()
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > o.DowntimeHours {
		return elapsed
	}
	return o.DowntimeHours
}
