package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"workshop-quote/models"
	"workshop-quote/rates"
)

// priceHost builds the monthly Host breakdown. Line order is fixed: wages,
// instructors, overheads, then the development-charge lines.
func priceHost(q quoteContext) *models.QuoteResult {
	derived := q.derived()

	wages := rates.WeeklyToMonthly(q.req.PrisonerSalaryPerWeek.Mul(decimal.NewFromInt(int64(q.req.NumPrisoners))))
	overheads := q.sharedOverheads()

	lines := []models.LineItem{
		{Label: models.LabelPrisonerWages, Amount: wages},
		{Label: models.LabelInstructors, Amount: q.sharedInstructors()},
		{Label: models.LabelOverheads, Amount: overheads},
	}
	var notes []models.Note

	if q.commercial() {
		base := overheads.Mul(q.rates.DevRateBase)
		applied := overheads.Mul(q.rates.EffectiveDevRate)
		reduction := base.Sub(applied)

		lines = append(lines, models.LineItem{Label: models.LabelDevBeforeReductions, Amount: base, Memo: true})
		if reduction.IsPositive() {
			lines = append(lines, models.LineItem{Label: models.LabelReductions, Amount: reduction.Neg(), Memo: true})
			notes = append(notes, reductionsNote(q, reduction))
		}
		lines = append(lines, models.LineItem{Label: models.LabelRevisedDevCharge, Amount: applied})

		derived.DevChargeBeforeReductions = base
		derived.DevChargeApplied = applied
	}

	notes = append(notes, sharedWorkshopNotes(q)...)
	return assemble(models.KindHost, lines, notes, derived, q.rates.VATRatePct, models.LabelGrandTotalMonthly)
}

func reductionsNote(q quoteContext, reduction decimal.Decimal) models.Note {
	return models.Note{
		Code: models.NoteReductionsApplied,
		Message: fmt.Sprintf("Employment support (%s) reduces the development charge by £%s",
			q.req.SupportChoice, reduction.StringFixed(2)),
	}
}

// sharedWorkshopNotes explains the contracts_overseen divisor.
func sharedWorkshopNotes(q quoteContext) []models.Note {
	if q.req.ContractsOverseen <= 1 {
		return nil
	}
	return []models.Note{{
		Code: models.NoteSharedWorkshop,
		Message: fmt.Sprintf("Instructor and overhead costs are shared across %d contracts; this quote carries one share",
			q.req.ContractsOverseen),
	}}
}
