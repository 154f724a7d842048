package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"workshop-quote/capacity"
	"workshop-quote/models"
	"workshop-quote/rates"
)

// priceAdhoc prices a one-off job. Each line is costed per unit from wages,
// fixed costs per prisoner-minute and, for commercial customers, the
// development charge on the overhead part. Feasibility never blocks pricing.
func priceAdhoc(q quoteContext, c models.AdhocProduction) *models.QuoteResult {
	derived := q.derived()
	var notes []models.Note

	minutesPerWeek := q.minutesPerWeek()
	wagePerMinute := q.wagePerMinute()
	fixedPerMinute := rates.MonthlyToWeekly(q.sharedInstructors().Add(q.sharedOverheads())).Div(minutesPerWeek)
	overheadPerMinute := rates.MonthlyToWeekly(q.sharedOverheads()).Div(minutesPerWeek)

	costs := make([]models.AdhocLineCost, len(c.Lines))
	lines := make([]models.LineItem, 0, len(c.Lines)+1)
	devBase := decimal.Zero
	devApplied := decimal.Zero

	for i, line := range c.Lines {
		unitMinutes := decimal.NewFromFloat(line.MinutesPerItem).Mul(decimal.NewFromInt(int64(line.PrisonersPerItem)))
		units := decimal.NewFromInt(int64(line.UnitsRequested))

		cost := models.AdhocLineCost{
			Name:           line.Name,
			UnitsRequested: line.UnitsRequested,
			WageComponent:  unitMinutes.Mul(wagePerMinute),
			FixedComponent: unitMinutes.Mul(fixedPerMinute),
			DevComponent:   decimal.Zero,
			Deadline:       line.Deadline,
		}
		if q.commercial() {
			overheadShare := unitMinutes.Mul(overheadPerMinute)
			cost.DevComponent = overheadShare.Mul(q.rates.EffectiveDevRate)
			devBase = devBase.Add(overheadShare.Mul(q.rates.DevRateBase).Mul(units))
			devApplied = devApplied.Add(cost.DevComponent.Mul(units))
		}
		cost.UnitCostExVAT = cost.WageComponent.Add(cost.FixedComponent).Add(cost.DevComponent)
		cost.UnitCostIncVAT = rates.ApplyVAT(cost.UnitCostExVAT, q.rates.VATRatePct)
		cost.LineTotalExVAT = cost.UnitCostExVAT.Mul(units)
		cost.LineTotalIncVAT = rates.ApplyVAT(cost.LineTotalExVAT, q.rates.VATRatePct)

		tp := capacity.AdhocThroughput(line, q.budget, c.Today)
		cost.WeeklyThroughput = tp.PerWeek
		cost.WeeksNeeded = tp.WeeksNeeded
		cost.Feasible = tp.Feasible
		if tp.PerWeek > 0 {
			requiredBy := tp.RequiredBy
			cost.RequiredBy = &requiredBy
		}
		notes = append(notes, deliveryNotes(line, tp)...)

		costs[i] = cost
		lines = append(lines, models.LineItem{Label: line.Name, Amount: cost.LineTotalExVAT})
	}

	if q.commercial() {
		derived.DevChargeBeforeReductions = devBase
		derived.DevChargeApplied = devApplied
		lines = append(lines, models.LineItem{Label: models.LabelDevChargeApplied, Amount: devApplied, Memo: true})
	}

	notes = append(notes, sharedWorkshopNotes(q)...)
	result := assemble(models.KindAdhocProduction, lines, notes, derived, q.rates.VATRatePct, models.LabelGrandTotalJob)
	result.Lines = costs
	return result
}

func deliveryNotes(line models.AdhocLine, tp capacity.Throughput) []models.Note {
	if tp.PerWeek == 0 {
		return []models.Note{{
			Code:    models.NoteNoThroughput,
			Message: fmt.Sprintf("%s cannot be produced with the available weekly capacity", line.Name),
			Items:   []string{line.Name},
		}}
	}
	if tp.Feasible {
		return nil
	}
	requiredBy := tp.RequiredBy
	return []models.Note{{
		Code: models.NoteInfeasibleDeadline,
		Message: fmt.Sprintf("%s needs %d week(s) and completes %s, after its deadline %s",
			line.Name, tp.WeeksNeeded, tp.RequiredBy.Format(time.DateOnly), line.Deadline.Format(time.DateOnly)),
		Items:       []string{line.Name},
		WeeksNeeded: tp.WeeksNeeded,
		RequiredBy:  &requiredBy,
	}}
}
