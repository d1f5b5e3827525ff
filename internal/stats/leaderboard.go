package stats

import "sort"

// ExecutorPerformance contabiliza ordens por executor: técnico interno ou
// empresa terceirizada, conforme a referência presente na ordem.
type ExecutorPerformance struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed int    `json:"closed"`
	Open   int    `json:"open"`
}

const leaderboardSize = 5

// Leaderboard conta concluídas e abertas por executor e devolve os cinco
// primeiros por concluídas, em ordem decrescente. Empates preservam a
// ordem de chegada das ordens; não há chave secundária de desempate.
func Leaderboard(orders []Order) []ExecutorPerformance {
	index := make(map[string]int)
	var ranking []ExecutorPerformance

	for _, o := range orders {
		key := o.TechnicianID
		name := o.TechnicianName
		if key == "" {
			key = o.ThirdPartyID
			name = o.ThirdPartyName
		}
		if key == "" {
			continue
		}

		pos, ok := index[key]
		if !ok {
			pos = len(ranking)
			index[key] = pos
			ranking = append(ranking, ExecutorPerformance{ID: key, Name: name})
		}

		if o.Closed() {
			ranking[pos].Closed++
		} else {
			ranking[pos].Open++
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Closed > ranking[j].Closed
	})

	if len(ranking) > leaderboardSize {
		ranking = ranking[:leaderboardSize]
	}
	return ranking
}
