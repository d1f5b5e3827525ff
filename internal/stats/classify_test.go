package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCascade(t *testing.T) {
	cases := []struct {
		name  string
		order Order
		want  string
	}{
		{"categoria do ativo vence", Order{AssetCategory: "Máquina Industrial", MaintenanceType: "predial"}, CategoryMaquina},
		{"cai para tipo de manutenção", Order{MaintenanceType: "Manutenção Predial"}, CategoryPredial},
		{"cai para tipo de falha", Order{FailureType: "falha mecânica"}, CategoryMaquina},
		{"sem acento", Order{AssetCategory: "maquina"}, CategoryMaquina},
		{"mecanica", Order{AssetCategory: "Mecanica"}, CategoryMaquina},
		{"preditiva vira predial", Order{MaintenanceType: "Preditiva"}, CategoryPredial},
		{"nada casa", Order{AssetCategory: "elétrica", MaintenanceType: "corretiva"}, CategoryOutros},
		{"tudo vazio", Order{}, CategoryOutros},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.order))
		})
	}
}

func TestClassifyIdempotentOnLabels(t *testing.T) {
	// Reclassificar um rótulo já exibido devolve a mesma categoria.
	for _, cat := range Categories() {
		got, ok := ClassifyText(cat)
		assert.True(t, ok, cat)
		assert.Equal(t, cat, got)
	}
}

func TestSplitByCategoryAlwaysThreeKeys(t *testing.T) {
	buckets := SplitByCategory(nil)

	assert.Len(t, buckets, 3)
	for _, cat := range Categories() {
		_, ok := buckets[cat]
		assert.True(t, ok, cat)
	}
}

func TestSplitByCategoryPartition(t *testing.T) {
	orders := []Order{
		{AssetCategory: "máquina"},
		{MaintenanceType: "predial"},
		{FailureType: "desconhecida"},
	}

	buckets := SplitByCategory(orders)

	total := 0
	for _, cat := range Categories() {
		total += len(buckets[cat])
	}
	assert.Equal(t, len(orders), total)
	assert.Len(t, buckets[CategoryMaquina], 1)
	assert.Len(t, buckets[CategoryPredial], 1)
	assert.Len(t, buckets[CategoryOutros], 1)
}
