package stats

import "time"

// CategoryStats agrupa as métricas de um recorte de categoria.
type CategoryStats struct {
	Category   string `json:"category"`
	Orders     int    `json:"orders"`
	AssetCount int    `json:"asset_count"`
	Stats      Stats  `json:"stats"`
}

// ExecutiveSummary é o consolidado executivo das três categorias.
type ExecutiveSummary struct {
	Availability    float64         `json:"availability"`
	TotalCost       float64         `json:"total_cost"`
	PartsCost       float64         `json:"parts_cost"`
	LaborCost       float64         `json:"labor_cost"`
	Backlog         int             `json:"backlog"`
	PreventiveRatio float64         `json:"preventive_ratio"`
	Categories      []CategoryStats `json:"categories"`
}

// Executive consolida o período inteiro: calcula as três categorias com a
// mesma função de classificação e reduz ao resumo executivo.
//
// A disponibilidade consolidada é a média simples das três
// disponibilidades, sem ponderar pelo número de ativos de cada categoria.
// O backlog conta toda ordem fora do estado terminal, independente de
// categoria.
func Executive(orders []Order, periodHours float64, assetsByCategory map[string]int, now time.Time) ExecutiveSummary {
	buckets := SplitByCategory(orders)

	var summary ExecutiveSummary
	var availabilitySum float64

	for _, cat := range Categories() {
		catOrders := buckets[cat]
		st := Calculate(catOrders, periodHours, assetsByCategory[cat], now)

		summary.Categories = append(summary.Categories, CategoryStats{
			Category:   cat,
			Orders:     len(catOrders),
			AssetCount: assetsByCategory[cat],
			Stats:      st,
		})

		availabilitySum += st.Availability
		summary.TotalCost += st.Cost
		summary.PartsCost += st.PartsCost
		summary.LaborCost += st.LaborCost
	}

	summary.Availability = availabilitySum / float64(len(Categories()))

	var preventive int
	for _, o := range orders {
		if !o.Closed() {
			summary.Backlog++
		}
		if o.Preventive() {
			preventive++
		}
	}
	if len(orders) > 0 {
		summary.PreventiveRatio = float64(preventive) / float64(len(orders)) * 100
	}

	return summary
}
