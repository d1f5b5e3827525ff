package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		quantity, minStock int
		want               string
	}{
		{0, 5, StatusEsgotado},
		{-1, 5, StatusEsgotado},
		{3, 5, StatusBaixo},
		{5, 5, StatusBaixo},
		{6, 5, StatusNormal},
		{100, 0, StatusNormal},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveStatus(tc.quantity, tc.minStock),
			"qty=%d min=%d", tc.quantity, tc.minStock)
	}
}

func TestSummarize(t *testing.T) {
	items := []Item{
		{Quantity: 10, UnitValue: 2.5, Status: StatusNormal},
		{Quantity: 2, UnitValue: 100, Status: StatusBaixo},
		{Quantity: 0, UnitValue: 999, Status: StatusEsgotado},
	}

	sum := Summarize(items)

	assert.Equal(t, 3, sum.TotalItems)
	assert.InDelta(t, 10*2.5+2*100, sum.TotalValue, 1e-9)
	assert.Equal(t, 2, sum.CriticalCount)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)

	assert.Zero(t, sum.TotalItems)
	assert.Zero(t, sum.TotalValue)
	assert.Zero(t, sum.CriticalCount)
}
