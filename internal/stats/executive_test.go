package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecutiveUnweightedAvailability(t *testing.T) {
	// Uma categoria com parada, duas intactas: a média é simples, sem
	// ponderar pelo número de ativos.
	orders := []Order{
		{AssetCategory: "máquina", Status: StatusConcluido, CreatedAt: baseTime,
			ResolvedAt: hoursAfter(72), DowntimeHours: 72},
	}
	assets := map[string]int{CategoryMaquina: 1, CategoryPredial: 9, CategoryOutros: 0}

	sum := Executive(orders, 720, assets, baseTime.Add(72*time.Hour))

	// MÁQUINA: (720-72)/720 = 90%; PREDIAL: 100%; OUTROS (sem ativos): 100%.
	assert.InDelta(t, (90.0+100.0+100.0)/3, sum.Availability, 1e-9)
	assert.Len(t, sum.Categories, 3)
}

func TestExecutiveCostsAreSummed(t *testing.T) {
	orders := []Order{
		{AssetCategory: "máquina", Status: StatusConcluido, CreatedAt: baseTime,
			ResolvedAt: hoursAfter(1), PartsCost: 100, ThirdPartyID: "e1", HourlyRate: 50},
		{MaintenanceType: "predial", Status: StatusConcluido, CreatedAt: baseTime,
			ResolvedAt: hoursAfter(1), PartsCost: 30},
	}
	assets := map[string]int{CategoryMaquina: 1, CategoryPredial: 1}

	sum := Executive(orders, 720, assets, baseTime.Add(time.Hour))

	assert.InDelta(t, 130.0, sum.PartsCost, 1e-9)
	assert.InDelta(t, 50.0, sum.LaborCost, 1e-9)
	assert.InDelta(t, 180.0, sum.TotalCost, 1e-9)
}

func TestExecutiveBacklog(t *testing.T) {
	orders := []Order{
		{Status: StatusPendente, CreatedAt: baseTime},
		{Status: StatusEmManutencao, CreatedAt: baseTime},
		{Status: StatusAguardandoPeca, CreatedAt: baseTime},
		{Status: StatusCancelado, CreatedAt: baseTime},
		closedOrder(1, 1),
	}

	sum := Executive(orders, 720, nil, baseTime.Add(time.Hour))

	// Tudo que não é Concluído conta, inclusive canceladas.
	assert.Equal(t, 4, sum.Backlog)
}

func TestExecutivePreventiveRatio(t *testing.T) {
	orders := []Order{
		{MaintenanceType: "Preventiva", Status: StatusPendente, CreatedAt: baseTime},
		{MaintenanceType: "preventiva", Status: StatusPendente, CreatedAt: baseTime},
		{MaintenanceType: "Corretiva", Status: StatusPendente, CreatedAt: baseTime},
		{Status: StatusPendente, CreatedAt: baseTime},
	}

	sum := Executive(orders, 720, nil, baseTime.Add(time.Hour))

	assert.InDelta(t, 50.0, sum.PreventiveRatio, 1e-9)
}

func TestExecutiveEmpty(t *testing.T) {
	sum := Executive(nil, 720, nil, baseTime)

	assert.InDelta(t, 100.0, sum.Availability, 1e-9)
	assert.Zero(t, sum.Backlog)
	assert.Zero(t, sum.PreventiveRatio)
	assert.Len(t, sum.Categories, 3)
}

func TestBuildReportReliability(t *testing.T) {
	orders := []Order{
		{Status: StatusConcluido, CreatedAt: baseTime, ResolvedAt: hoursAfter(10), DowntimeHours: 72},
	}
	assets := map[string]int{CategoryMaquina: 1}

	rep := BuildReport(orders, 720, assets, baseTime.Add(10*time.Hour))

	// (720 - 72) / 720
	assert.InDelta(t, 90.0, rep.Reliability, 1e-9)
	assert.NotEmpty(t, rep.StatusHistogram)
}

func TestReliabilityNeverNegative(t *testing.T) {
	orders := []Order{{Status: StatusPendente, CreatedAt: baseTime, DowntimeHours: 10000}}

	rep := BuildReport(orders, 720, map[string]int{CategoryMaquina: 1}, baseTime)

	assert.GreaterOrEqual(t, rep.Reliability, 0.0)
}
