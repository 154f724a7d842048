package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"workshop-quote/capacity"
	"workshop-quote/models"
	"workshop-quote/rates"
)

// priceContractual prices ongoing weekly production. Fixed monthly costs are
// shared between items pro rata by the minutes each item consumes.
func priceContractual(q quoteContext, c models.ContractualProduction) *models.QuoteResult {
	derived := q.derived()
	var notes []models.Note

	units := make([]int, len(c.Items))
	switch c.PricingBasis {
	case models.AsIsCapacity:
		allocs := capacity.AsIsAllocation(c.Items, q.req.WorkshopHoursPerWeek, q.req.NumPrisoners, q.req.OutputPct)
		for i, a := range allocs {
			units[i] = a.MaxUnits
		}
	case models.WeeklyTargets:
		copy(units, c.Targets)
		if check := capacity.CheckTargets(c.Items, c.Targets, q.budget); check.Exceeded {
			notes = append(notes, capacityExceededNote(check))
		}
	}

	minutes := make([]decimal.Decimal, len(c.Items))
	totalMinutes := decimal.Zero
	for i, item := range c.Items {
		minutes[i] = decimal.NewFromInt(int64(units[i])).Mul(decimal.NewFromFloat(item.MinutesPerUnit)).
			Mul(decimal.NewFromInt(int64(item.RequiredPrisoners)))
		totalMinutes = totalMinutes.Add(minutes[i])
	}

	instructorsWeekly := rates.MonthlyToWeekly(q.sharedInstructors())
	overheadsWeekly := rates.MonthlyToWeekly(q.sharedOverheads())
	wagePerMinute := q.wagePerMinute()

	items := make([]models.ItemCost, len(c.Items))
	lines := make([]models.LineItem, 0, len(c.Items)+1)
	overheadShareTotal := decimal.Zero
	devWeeklyTotal := decimal.Zero

	for i, item := range c.Items {
		cost := models.ItemCost{
			Name:                  item.Name,
			UnitsPerWeek:          units[i],
			MinutesPerWeek:        minutes[i].InexactFloat64(),
			WeeklyPrisonerCost:    minutes[i].Mul(wagePerMinute),
			WeeklyInstructorShare: decimal.Zero,
			WeeklyOverheadShare:   decimal.Zero,
			WeeklyDevCharge:       decimal.Zero,
		}
		if totalMinutes.IsPositive() {
			cost.WeeklyInstructorShare = instructorsWeekly.Mul(minutes[i]).Div(totalMinutes)
			cost.WeeklyOverheadShare = overheadsWeekly.Mul(minutes[i]).Div(totalMinutes)
		}
		if q.commercial() {
			cost.WeeklyDevCharge = cost.WeeklyOverheadShare.Mul(q.rates.EffectiveDevRate)
		}

		weekly := cost.WeeklyPrisonerCost.Add(cost.WeeklyInstructorShare).Add(cost.WeeklyOverheadShare).Add(cost.WeeklyDevCharge)
		if units[i] > 0 {
			unitEx := weekly.Div(decimal.NewFromInt(int64(units[i])))
			unitInc := rates.ApplyVAT(unitEx, q.rates.VATRatePct)
			cost.UnitCostExVAT = &unitEx
			cost.UnitCostIncVAT = &unitInc
		} else {
			notes = append(notes, models.Note{
				Code:    models.NoteZeroUnits,
				Message: fmt.Sprintf("%s has no weekly units; unit cost is undefined", item.Name),
				Items:   []string{item.Name},
			})
		}
		cost.MonthlyExVAT = rates.WeeklyToMonthly(weekly)
		cost.MonthlyIncVAT = rates.ApplyVAT(cost.MonthlyExVAT, q.rates.VATRatePct)

		overheadShareTotal = overheadShareTotal.Add(cost.WeeklyOverheadShare)
		devWeeklyTotal = devWeeklyTotal.Add(cost.WeeklyDevCharge)
		items[i] = cost
		lines = append(lines, models.LineItem{Label: item.Name, Amount: cost.MonthlyExVAT})
	}

	if q.commercial() {
		derived.DevChargeBeforeReductions = rates.WeeklyToMonthly(overheadShareTotal.Mul(q.rates.DevRateBase))
		derived.DevChargeApplied = rates.WeeklyToMonthly(devWeeklyTotal)
		lines = append(lines, models.LineItem{Label: models.LabelDevChargeApplied, Amount: derived.DevChargeApplied, Memo: true})
	}

	notes = append(notes, sharedWorkshopNotes(q)...)
	result := assemble(models.KindContractualProduction, lines, notes, derived, q.rates.VATRatePct, models.LabelGrandTotalMonthly)
	result.Items = items
	return result
}

func capacityExceededNote(check capacity.TargetCheck) models.Note {
	names := make([]string, len(check.Impacted))
	for i, item := range check.Impacted {
		names[i] = item.Name
	}
	return models.Note{
		Code: models.NoteCapacityExceeded,
		Message: fmt.Sprintf("Weekly targets need %.0f minutes but only %.0f are available; short: %s",
			check.RequiredMinutes, check.BudgetMinutes, strings.Join(names, ", ")),
		Items: names,
	}
}
