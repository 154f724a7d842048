// Package capacity computes weekly labour-minute budgets and arbitrates item
// production against them.
package capacity

import (
	"math"
	"time"

	"workshop-quote/models"
)

// Guards floor() against binary rounding of exact quotients such as 0.9·x.
const epsilon = 1e-9

// UnitCap caps weekly units so that unit counts and their money products
// stay far from integer overflow.
const UnitCap = math.MaxInt32

// Completion dates are clamped to about 5.8 million years out.
const maxWeeks = math.MaxInt32 / 7

// WeeklyBudget is hours · 60 · prisoners · (outputPct / 100).
func WeeklyBudget(hours float64, prisoners int, outputPct float64) float64 {
	return hours * 60 * float64(prisoners) * outputPct / 100
}

// Allocation is the minutes pool granted to one item under AsIsCapacity.
type Allocation struct {
	Name           string
	Dedicated      bool
	PoolMinutes    float64
	MinutesPerUnit float64
	MaxUnits       int
}

// AsIsAllocation gives items with assigned prisoners a dedicated pool and
// splits what is left of the global budget equally between the other items.
// Allocations are returned in declaration order.
func AsIsAllocation(items []models.ProductItem, hours float64, prisoners int, outputPct float64) []Allocation {
	budget := WeeklyBudget(hours, prisoners, outputPct)
	allocs := make([]Allocation, len(items))

	dedicatedTotal := 0.0
	sharedCount := 0
	for i, item := range items {
		allocs[i] = Allocation{
			Name:           item.Name,
			MinutesPerUnit: item.MinutesRequiredPerUnit(),
		}
		if item.AssignedPrisoners > 0 {
			pool := WeeklyBudget(hours, item.AssignedPrisoners, outputPct)
			allocs[i].Dedicated = true
			allocs[i].PoolMinutes = pool
			dedicatedTotal += pool
			continue
		}
		sharedCount++
	}

	if sharedCount > 0 {
		share := math.Max(budget-dedicatedTotal, 0) / float64(sharedCount)
		for i := range allocs {
			if !allocs[i].Dedicated {
				allocs[i].PoolMinutes = share
			}
		}
	}

	for i := range allocs {
		allocs[i].MaxUnits = unitsIn(allocs[i].PoolMinutes, allocs[i].MinutesPerUnit)
	}
	return allocs
}

// ImpactedItem is an item whose weekly target does not fit the budget.
type ImpactedItem struct {
	Name             string
	RequestedMinutes float64
	AllocatedMinutes float64
	UnmetMinutes     float64
}

// TargetCheck reports whether weekly targets fit the budget.
type TargetCheck struct {
	RequiredMinutes float64
	BudgetMinutes   float64
	Exceeded        bool
	Impacted        []ImpactedItem
}

// CheckTargets validates targets against budget. When they do not fit, the
// budget is handed out in declaration order and every item left short is
// reported. The check is advisory; callers still price the targets.
func CheckTargets(items []models.ProductItem, targets []int, budget float64) TargetCheck {
	requested := make([]float64, len(items))
	check := TargetCheck{BudgetMinutes: budget}
	for i, item := range items {
		requested[i] = float64(targets[i]) * item.MinutesRequiredPerUnit()
		check.RequiredMinutes += requested[i]
	}

	// Fast path: everything fits
	if check.RequiredMinutes <= budget+epsilon {
		return check
	}

	check.Exceeded = true
	remaining := budget
	for i, item := range items {
		if remaining+epsilon >= requested[i] {
			remaining -= requested[i]
			continue
		}
		allocated := math.Max(remaining, 0)
		check.Impacted = append(check.Impacted, ImpactedItem{
			Name:             item.Name,
			RequestedMinutes: requested[i],
			AllocatedMinutes: allocated,
			UnmetMinutes:     requested[i] - allocated,
		})
		remaining = 0
	}
	return check
}

// Throughput is the delivery estimate for one ad-hoc line.
type Throughput struct {
	PerWeek     int
	WeeksNeeded int
	RequiredBy  time.Time
	Feasible    bool
}

// AdhocThroughput estimates how many weeks the whole budget needs to make a
// line and whether that meets its deadline. A zero weekly throughput is never
// feasible and has no completion date.
func AdhocThroughput(line models.AdhocLine, budget float64, today time.Time) Throughput {
	perWeek := unitsIn(budget, line.MinutesRequiredPerUnit())
	if perWeek == 0 {
		return Throughput{}
	}
	weeks := (line.UnitsRequested-1)/perWeek + 1
	requiredBy := today.AddDate(0, 0, 7*min(weeks, maxWeeks))
	return Throughput{
		PerWeek:     perWeek,
		WeeksNeeded: weeks,
		RequiredBy:  requiredBy,
		Feasible:    !line.Deadline.Before(requiredBy),
	}
}

func unitsIn(pool, minutesPerUnit float64) int {
	if minutesPerUnit <= 0 || pool <= 0 {
		return 0
	}
	units := math.Floor(pool/minutesPerUnit + epsilon)
	if units >= UnitCap {
		return UnitCap
	}
	return int(units)
}
