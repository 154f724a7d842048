package capacity_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshop-quote/capacity"
	"workshop-quote/models"
)

func TestWeeklyBudget(t *testing.T) {
	assert.Equal(t, 18000.0, capacity.WeeklyBudget(30, 10, 100))
	assert.InDelta(t, 16200.0, capacity.WeeklyBudget(30, 10, 90), 1e-9)
	assert.Equal(t, 0.0, capacity.WeeklyBudget(30, 0, 100))
}

func TestAsIsAllocation(t *testing.T) {
	tests := map[string]struct {
		items    []models.ProductItem
		expected []capacity.Allocation
	}{
		"EqualSplitOfSharedBudget": {
			items: []models.ProductItem{
				{Name: "Chairs", RequiredPrisoners: 1, MinutesPerUnit: 30},
				{Name: "Tables", RequiredPrisoners: 2, MinutesPerUnit: 45},
			},
			expected: []capacity.Allocation{
				{Name: "Chairs", PoolMinutes: 9000, MinutesPerUnit: 30, MaxUnits: 300},
				{Name: "Tables", PoolMinutes: 9000, MinutesPerUnit: 90, MaxUnits: 100},
			},
		},
		"DedicatedPoolComesOffTheTop": {
			items: []models.ProductItem{
				{Name: "Benches", RequiredPrisoners: 2, MinutesPerUnit: 60, AssignedPrisoners: 4},
				{Name: "Stools", RequiredPrisoners: 1, MinutesPerUnit: 20},
			},
			expected: []capacity.Allocation{
				{Name: "Benches", Dedicated: true, PoolMinutes: 7200, MinutesPerUnit: 120, MaxUnits: 60},
				{Name: "Stools", PoolMinutes: 10800, MinutesPerUnit: 20, MaxUnits: 540},
			},
		},
		"OverAssignedLeavesNothingShared": {
			items: []models.ProductItem{
				{Name: "Benches", RequiredPrisoners: 1, MinutesPerUnit: 60, AssignedPrisoners: 10},
				{Name: "Stools", RequiredPrisoners: 1, MinutesPerUnit: 20},
			},
			expected: []capacity.Allocation{
				{Name: "Benches", Dedicated: true, PoolMinutes: 18000, MinutesPerUnit: 60, MaxUnits: 300},
				{Name: "Stools", PoolMinutes: 0, MinutesPerUnit: 20, MaxUnits: 0},
			},
		},
		"ZeroMinutesYieldsZeroUnits": {
			items: []models.ProductItem{
				{Name: "Samples", RequiredPrisoners: 1, MinutesPerUnit: 0},
			},
			expected: []capacity.Allocation{
				{Name: "Samples", PoolMinutes: 18000, MinutesPerUnit: 0, MaxUnits: 0},
			},
		},
		"TinyMinutesAreCapped": {
			items: []models.ProductItem{
				{Name: "Pins", RequiredPrisoners: 1, MinutesPerUnit: 1e-16},
			},
			expected: []capacity.Allocation{
				{Name: "Pins", PoolMinutes: 18000, MinutesPerUnit: 1e-16, MaxUnits: capacity.UnitCap},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := capacity.AsIsAllocation(tt.items, 30, 10, 100)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAsIsAllocation_FloorIsStable(t *testing.T) {
	// 90% of 30h for one prisoner is 1620 minutes, exactly 54 units of 30.
	items := []models.ProductItem{{Name: "Chairs", RequiredPrisoners: 1, MinutesPerUnit: 30}}
	got := capacity.AsIsAllocation(items, 30, 1, 90)
	require.Len(t, got, 1)
	assert.Equal(t, 54, got[0].MaxUnits)
}

func TestCheckTargets(t *testing.T) {
	items := []models.ProductItem{
		{Name: "Chairs", RequiredPrisoners: 1, MinutesPerUnit: 30},
		{Name: "Tables", RequiredPrisoners: 2, MinutesPerUnit: 45},
		{Name: "Stools", RequiredPrisoners: 1, MinutesPerUnit: 10},
	}

	t.Run("Fits", func(t *testing.T) {
		check := capacity.CheckTargets(items, []int{100, 50, 100}, 18000)
		assert.False(t, check.Exceeded)
		assert.Equal(t, 8500.0, check.RequiredMinutes)
		assert.Empty(t, check.Impacted)
	})

	t.Run("ExactlyFull", func(t *testing.T) {
		check := capacity.CheckTargets(items, []int{300, 100, 0}, 18000)
		assert.False(t, check.Exceeded)
	})

	t.Run("Exceeded", func(t *testing.T) {
		check := capacity.CheckTargets(items, []int{400, 100, 100}, 18000)
		assert.True(t, check.Exceeded)
		assert.Equal(t, 22000.0, check.RequiredMinutes)
		assert.Equal(t, []capacity.ImpactedItem{
			{Name: "Tables", RequestedMinutes: 9000, AllocatedMinutes: 6000, UnmetMinutes: 3000},
			{Name: "Stools", RequestedMinutes: 1000, AllocatedMinutes: 0, UnmetMinutes: 1000},
		}, check.Impacted)
	})
}

func TestAdhocThroughput(t *testing.T) {
	today := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		line     models.AdhocLine
		budget   float64
		expected capacity.Throughput
	}{
		"Feasible": {
			line:   models.AdhocLine{Name: "Signs", UnitsRequested: 1000, PrisonersPerItem: 1, MinutesPerItem: 20, Deadline: today.AddDate(0, 0, 14)},
			budget: 18000,
			expected: capacity.Throughput{
				PerWeek: 900, WeeksNeeded: 2, RequiredBy: today.AddDate(0, 0, 14), Feasible: true,
			},
		},
		"DeadlineBeforeRequiredBy": {
			line:   models.AdhocLine{Name: "Signs", UnitsRequested: 1000, PrisonersPerItem: 2, MinutesPerItem: 60, Deadline: today.AddDate(0, 0, 30)},
			budget: 18000,
			expected: capacity.Throughput{
				PerWeek: 150, WeeksNeeded: 7, RequiredBy: today.AddDate(0, 0, 49), Feasible: false,
			},
		},
		"NoThroughput": {
			line:     models.AdhocLine{Name: "Statue", UnitsRequested: 1, PrisonersPerItem: 1, MinutesPerItem: 20000, Deadline: today},
			budget:   18000,
			expected: capacity.Throughput{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, capacity.AdhocThroughput(tt.line, tt.budget, today))
		})
	}
}

func TestAdhocThroughput_HugeOrder(t *testing.T) {
	today := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	line := models.AdhocLine{Name: "Pins", UnitsRequested: math.MaxInt, PrisonersPerItem: 1, MinutesPerItem: 1e-16, Deadline: today}

	got := capacity.AdhocThroughput(line, 18000, today)
	assert.Equal(t, capacity.UnitCap, got.PerWeek)
	assert.Equal(t, (math.MaxInt-1)/capacity.UnitCap+1, got.WeeksNeeded)
	assert.Positive(t, got.WeeksNeeded)
	assert.True(t, got.RequiredBy.After(today))
	assert.False(t, got.Feasible)
}
