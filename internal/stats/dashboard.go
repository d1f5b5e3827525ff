package stats

import (
	"sort"
	"strings"
	"time"
)

// DashboardSummary reúne os cartões do painel principal.
type DashboardSummary struct {
	Stats              Stats   `json:"stats"`
	TotalOrders        int     `json:"total_orders"`
	OpenCount          int     `json:"open_count"`
	UrgentCount        int     `json:"urgent_count"`
	InMaintenanceCount int     `json:"in_maintenance_count"`
	CompletedCount     int     `json:"completed_count"`
	AvgWaitHours       float64 `json:"avg_wait_hours"`
	AvgExecutionHours  float64 `json:"avg_execution_hours"`
}

// Summary calcula os cartões do painel sobre o mesmo conjunto de ordens
// usado pelo agregador de métricas.
func Summary(orders []Order, periodHours float64, assetCount int, now time.Time) DashboardSummary {
	sum := DashboardSummary{
		Stats:       Calculate(orders, periodHours, assetCount, now),
		TotalOrders: len(orders),
	}

	var storedDowntime, repairSum float64
	for _, o := range orders {
		switch o.Status {
		case StatusPendente:
			sum.OpenCount++
			if urgentPriority(o.Priority) {
				sum.UrgentCount++
			}
		case StatusEmManutencao:
			sum.InMaintenanceCount++
		case StatusConcluido:
			sum.CompletedCount++
			repairSum += o.RepairHours
		}
		storedDowntime += o.DowntimeHours
	}

	if sum.CompletedCount > 0 {
		wait := storedDowntime - repairSum
		if wait < 0 {
			wait = 0
		}
		sum.AvgWaitHours = wait / float64(sum.CompletedCount)
		sum.AvgExecutionHours = repairSum / float64(sum.CompletedCount)
	}
	return sum
}

func urgentPriority(priority string) bool {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "alta", "crítica", "crítico":
		return true
	}
	return false
}

// AssetHours acumula horas paradas por ativo.
type AssetHours struct {
	AssetID string  `json:"asset_id"`
	Name    string  `json:"name"`
	Hours   float64 `json:"hours"`
}

// TopAssetDowntime soma as horas paradas armazenadas por ativo e devolve
// os maiores ofensores, limitado a max entradas.
func TopAssetDowntime(orders []Order, max int) []AssetHours {
	index := make(map[string]int)
	var result []AssetHours

	for _, o := range orders {
		if o.AssetID == "" || o.DowntimeHours <= 0 {
			continue
		}
		pos, ok := index[o.AssetID]
		if !ok {
			pos = len(result)
			index[o.AssetID] = pos
			result = append(result, AssetHours{AssetID: o.AssetID, Name: o.AssetName})
		}
		result[pos].Hours += o.DowntimeHours
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Hours > result[j].Hours
	})
	if max > 0 && len(result) > max {
		result = result[:max]
	}
	return result
}

// TimelineEntry separa espera e execução de um atendimento.
type TimelineEntry struct {
	Asset     string    `json:"asset"`
	Date      time.Time `json:"date"`
	WaitHours float64   `json:"wait_hours"`
	ExecHours float64   `json:"exec_hours"`
}

// Timeline monta a cronologia espera-versus-execução dos últimos
// atendimentos com dados de tempo relevantes.
func Timeline(orders []Order, max int) []TimelineEntry {
	var entries []TimelineEntry
	for _, o := range orders {
		if o.DowntimeHours <= 0 && o.RepairHours <= 0 {
			continue
		}
		wait := o.DowntimeHours - o.RepairHours
		if wait < 0 {
			wait = 0
		}
		entries = append(entries, TimelineEntry{
			Asset:     o.AssetName,
			Date:      o.CreatedAt,
			WaitHours: wait,
			ExecHours: o.RepairHours,
		})
		if max > 0 && len(entries) == max {
			break
		}
	}
	return entries
}
