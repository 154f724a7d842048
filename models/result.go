package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical line-item labels consumed by the presentation layer.
const (
	LabelPrisonerWages       = "Prisoner wages"
	LabelInstructors         = "Instructors"
	LabelOverheads           = "Overheads"
	LabelDevBeforeReductions = "Development charge (before reductions)"
	LabelReductions          = "Reductions"
	LabelRevisedDevCharge    = "Revised development charge"
	LabelDevChargeApplied    = "Development charge (applied)"
	LabelSubtotal            = "Subtotal"
	LabelGrandTotalMonthly   = "Grand Total (£/month)"
	LabelGrandTotalJob       = "Grand Total (£)"
)

// NoteCode identifies an advisory condition found while pricing.
type NoteCode string

const (
	NoteCapacityExceeded   NoteCode = "CAPACITY_EXCEEDED"
	NoteInfeasibleDeadline NoteCode = "INFEASIBLE_DEADLINE"
	NoteNoThroughput       NoteCode = "NO_THROUGHPUT"
	NoteZeroUnits          NoteCode = "ZERO_UNITS"
	NoteReductionsApplied  NoteCode = "REDUCTIONS_APPLIED"
	NoteSharedWorkshop     NoteCode = "SHARED_WORKSHOP"
)

// QuoteResult is the uniform output of every pricer.
type QuoteResult struct {
	Kind      ContractKind `json:"kind"`
	LineItems []LineItem   `json:"line_items"`
	Totals    Totals       `json:"totals"`
	Notes     []Note       `json:"notes"`
	Derived   Derived      `json:"derived"`
	// Items is set for contractual production quotes.
	Items []ItemCost `json:"items,omitempty"`
	// Lines is set for ad-hoc production quotes.
	Lines []AdhocLineCost `json:"lines,omitempty"`
}

// LineItem is one labelled amount. Memo lines explain other lines and are not
// part of the subtotal.
type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Memo   bool            `json:"memo,omitempty"`
}

// Totals holds the roll-up of the chargeable line items.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	VATRatePct      decimal.Decimal `json:"vat_rate_pct"`
	VATAmount       decimal.Decimal `json:"vat_amount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	VATLabel        string          `json:"vat_label"`
	GrandTotalLabel string          `json:"grand_total_label"`
}

// Note is a structured advisory message. Notes never abort a quote.
type Note struct {
	Code        NoteCode   `json:"code"`
	Message     string     `json:"message"`
	Items       []string   `json:"items,omitempty"`
	WeeksNeeded int        `json:"weeks_needed,omitempty"`
	RequiredBy  *time.Time `json:"required_by,omitempty"`
}

// Derived exposes intermediate values of the calculation.
type Derived struct {
	Region                    Region          `json:"region"`
	CustomerCoversSupervisors bool            `json:"customer_covers_supervisors"`
	InstructorsMonthly        decimal.Decimal `json:"instructors_monthly"`
	OverheadsMonthly          decimal.Decimal `json:"overheads_monthly"`
	DevRateBase               decimal.Decimal `json:"dev_rate_base"`
	EffectiveDevRate          decimal.Decimal `json:"effective_dev_rate"`
	DevChargeBeforeReductions decimal.Decimal `json:"dev_charge_before_reductions"`
	DevChargeApplied          decimal.Decimal `json:"dev_charge_applied"`
	WeeklyMinutesBudget       float64         `json:"weekly_minutes_budget"`
}

// ItemCost is the per-item detail of a contractual production quote.
type ItemCost struct {
	Name                  string           `json:"name"`
	UnitsPerWeek          int              `json:"units_per_week"`
	MinutesPerWeek        float64          `json:"minutes_per_week"`
	WeeklyPrisonerCost    decimal.Decimal  `json:"weekly_prisoner_cost"`
	WeeklyInstructorShare decimal.Decimal  `json:"weekly_instructor_share"`
	WeeklyOverheadShare   decimal.Decimal  `json:"weekly_overhead_share"`
	WeeklyDevCharge       decimal.Decimal  `json:"weekly_dev_charge"`
	UnitCostExVAT         *decimal.Decimal `json:"unit_cost_ex_vat"`
	UnitCostIncVAT        *decimal.Decimal `json:"unit_cost_inc_vat"`
	MonthlyExVAT          decimal.Decimal  `json:"monthly_ex_vat"`
	MonthlyIncVAT         decimal.Decimal  `json:"monthly_inc_vat"`
}

// AdhocLineCost is the per-line detail of an ad-hoc production quote.
type AdhocLineCost struct {
	Name             string          `json:"name"`
	UnitsRequested   int             `json:"units_requested"`
	WageComponent    decimal.Decimal `json:"wage_component"`
	FixedComponent   decimal.Decimal `json:"fixed_component"`
	DevComponent     decimal.Decimal `json:"dev_component"`
	UnitCostExVAT    decimal.Decimal `json:"unit_cost_ex_vat"`
	UnitCostIncVAT   decimal.Decimal `json:"unit_cost_inc_vat"`
	LineTotalExVAT   decimal.Decimal `json:"line_total_ex_vat"`
	LineTotalIncVAT  decimal.Decimal `json:"line_total_inc_vat"`
	WeeklyThroughput int             `json:"weekly_throughput"`
	WeeksNeeded      int             `json:"weeks_needed"`
	RequiredBy       *time.Time      `json:"required_by,omitempty"`
	Deadline         time.Time       `json:"deadline"`
	Feasible         bool            `json:"feasible"`
}

// ChargeableSum adds every non-memo line item.
func (r *QuoteResult) ChargeableSum() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range r.LineItems {
		if !li.Memo {
			sum = sum.Add(li.Amount)
		}
	}
	return sum
}

// Line returns the first line item with the given label.
func (r *QuoteResult) Line(label string) (LineItem, bool) {
	for _, li := range r.LineItems {
		if li.Label == label {
			return li, true
		}
	}
	return LineItem{}, false
}

// NotesWithCode returns the notes carrying code, in order.
func (r *QuoteResult) NotesWithCode(code NoteCode) []Note {
	var notes []Note
	for _, n := range r.Notes {
		if n.Code == code {
			notes = append(notes, n)
		}
	}
	return notes
}
