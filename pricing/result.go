package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"workshop-quote/models"
	"workshop-quote/rates"
)

// assemble rolls chargeable lines up into totals and returns the uniform
// result: line items in declaration order, totals, then notes.
func assemble(kind models.ContractKind, lines []models.LineItem, notes []models.Note, derived models.Derived,
	vatPct decimal.Decimal, grandLabel string) *models.QuoteResult {
	result := &models.QuoteResult{
		Kind:      kind,
		LineItems: lines,
		Notes:     notes,
		Derived:   derived,
	}
	if result.LineItems == nil {
		result.LineItems = []models.LineItem{}
	}
	if result.Notes == nil {
		result.Notes = []models.Note{}
	}

	subtotal := result.ChargeableSum()
	vat := rates.VATOn(subtotal, vatPct)
	result.Totals = models.Totals{
		Subtotal:        subtotal,
		VATRatePct:      vatPct,
		VATAmount:       vat,
		GrandTotal:      subtotal.Add(vat),
		VATLabel:        VATLabel(vatPct),
		GrandTotalLabel: grandLabel,
	}
	return result
}

// VATLabel renders the VAT line label with the rate to one decimal place.
func VATLabel(pct decimal.Decimal) string {
	return fmt.Sprintf("VAT (%s%%)", pct.StringFixed(1))
}
