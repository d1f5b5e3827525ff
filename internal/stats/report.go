package stats

import "time"

// NameCount é um par rótulo/contagem para histogramas.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Report é o bloco gerencial usado nos relatórios PCM.
type Report struct {
	Summary           DashboardSummary      `json:"summary"`
	Executive         ExecutiveSummary      `json:"executive"`
	Reliability       float64               `json:"reliability"`
	StatusHistogram   []NameCount           `json:"status_histogram"`
	PriorityHistogram []NameCount           `json:"priority_histogram"`
	Leaderboard       []ExecutorPerformance `json:"leaderboard"`
	ProblematicAssets []AssetHours          `json:"problematic_assets"`
}

// BuildReport consolida o relatório do período: cartões, consolidado
// executivo, confiabilidade e distribuições.
func BuildReport(orders []Order, periodHours float64, assetsByCategory map[string]int, now time.Time) Report {
	totalAssets := 0
	for _, n := range assetsByCategory {
		totalAssets += n
	}

	rep := Report{
		Summary:           Summary(orders, periodHours, totalAssets, now),
		Executive:         Executive(orders, periodHours, assetsByCategory, now),
		StatusHistogram:   histogram(orders, func(o Order) string { return o.Status }),
		PriorityHistogram: histogram(orders, func(o Order) string { return o.Priority }),
		Leaderboard:       Leaderboard(orders),
		ProblematicAssets: TopAssetDowntime(orders, leaderboardSize),
	}
	rep.Reliability = reliability(orders, periodHours, totalAssets)
	return rep
}

// reliability segue o cálculo do relatório gerencial: tempo operacional
// (não negativo) sobre o tempo total possível, com as horas paradas
// armazenadas. 100 quando não há janela observável.
func reliability(orders []Order, periodHours float64, assetCount int) float64 {
	if assetCount == 0 {
		assetCount = 1
	}
	total := periodHours * float64(assetCount)
	if total <= 0 {
		return 100
	}

	var stored float64
	for _, o := range orders {
		stored += o.DowntimeHours
	}
	operational := total - stored
	if operational < 0 {
		operational = 0
	}
	return operational / total * 100
}

func histogram(orders []Order, key func(Order) string) []NameCount {
	index := make(map[string]int)
	var result []NameCount
	for _, o := range orders {
		k := key(o)
		if k == "" {
			continue
		}
		pos, ok := index[k]
		if !ok {
			pos = len(result)
			index[k] = pos
			result = append(result, NameCount{Name: k})
		}
		result[pos].Count++
	}
	return result
}
