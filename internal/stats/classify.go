package stats

import "strings"

// Categorias de classificação de ordens e ativos. Toda ordem cai em
// exatamente uma delas; a mesma função é usada em todos os recortes
// categorizados (estatísticas, rankings, gráficos, linhas do tempo).
const (
	CategoryMaquina = "MÁQUINA"
	CategoryPredial = "PREDIAL"
	CategoryOutros  = "OUTROS"
)

// Categories lista as categorias na ordem de exibição.
func Categories() []string {
	return []string{CategoryMaquina, CategoryPredial, CategoryOutros}
}

// Classify mapeia a ordem para uma categoria em cascata: categoria do
// ativo, depois o tipo de manutenção, depois o tipo de falha. O que não
// casar vai para OUTROS.
func Classify(o Order) string {
	for _, text := range []string{o.AssetCategory, o.MaintenanceType, o.FailureType} {
		if cat, ok := ClassifyText(text); ok {
			return cat
		}
	}
	return CategoryOutros
}

// ClassifyText tenta mapear um texto livre para uma categoria.
// A comparação é por substring, sem diferenciar maiúsculas ou acentos
// nos radicais conhecidos. Reclassificar um rótulo já exibido devolve a
// mesma categoria.
func ClassifyText(text string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return "", false
	}

	for _, token := range []string{"maquina", "máquina", "mecanica", "mecânica", "industrial"} {
		if strings.Contains(s, token) {
			return CategoryMaquina, true
		}
	}
	for _, token := range []string{"predial", "preditiv"} {
		if strings.Contains(s, token) {
			return CategoryPredial, true
		}
	}
	if strings.Contains(s, "outros") {
		return CategoryOutros, true
	}
	return "", false
}

// SplitByCategory distribui as ordens nos três recortes, sempre com as
// três chaves presentes.
func SplitByCategory(orders []Order) map[string][]Order {
	buckets := map[string][]Order{
		CategoryMaquina: nil,
		CategoryPredial: nil,
		CategoryOutros:  nil,
	}
	for _, o := range orders {
		cat := Classify(o)
		buckets[cat] = append(buckets[cat], o)
	}
	return buckets
}
