// Package rates derives the monetary rates a quote is priced from: monthly
// instructor and overhead costs, the development-charge rate and VAT.
package rates

import (
	"github.com/shopspring/decimal"

	"workshop-quote/models"
	"workshop-quote/refdata"
)

var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Development-charge discounts per employment-support commitment.
var supportDiscounts = map[models.SupportChoice]decimal.Decimal{
	models.SupportNone:          decimal.Zero,
	models.SupportOnReleaseROTL: decimal.RequireFromString("0.10"),
	models.SupportPostRelease:   decimal.RequireFromString("0.10"),
	models.SupportBoth:          decimal.RequireFromString("0.20"),
}

// Rates are the derived monthly figures shared by every pricer.
type Rates struct {
	CustomerCoversSupervisors bool
	InstructorsMonthly        decimal.Decimal
	OverheadsMonthly          decimal.Decimal
	DevRateBase               decimal.Decimal
	EffectiveDevRate          decimal.Decimal
	VATRatePct                decimal.Decimal
}

// Resolve computes the rates for req priced in region.
func Resolve(req models.QuoteRequest, region models.Region, ref refdata.Provider, d refdata.Defaults) Rates {
	covers := req.CustomerCoversSupervisors()
	return Rates{
		CustomerCoversSupervisors: covers,
		InstructorsMonthly:        InstructorsMonthly(req.InstructorBands, req.EffectivePct, covers),
		OverheadsMonthly:          OverheadsMonthly(req.InstructorBands, covers, req.LockOverheads, ref.ShadowCost(region), d.OverheadPct),
		DevRateBase:               d.DevRateBase,
		EffectiveDevRate:          EffectiveDevRate(req.SupportChoice, req.CustomerType, d.DevRateBase),
		VATRatePct:                VATRatePct(req.CustomerType, d.VATRatePct),
	}
}

// PerInstructorMonthly is (salary / 12) · (effectivePct / 100).
func PerInstructorMonthly(salary decimal.Decimal, effectivePct float64) decimal.Decimal {
	return salary.Mul(decimal.NewFromFloat(effectivePct)).Div(monthsPerYear.Mul(hundred))
}

// InstructorsMonthly sums the monthly cost of every band, or 0 when the
// customer covers supervisors.
func InstructorsMonthly(bands []decimal.Decimal, effectivePct float64, customerCovers bool) decimal.Decimal {
	total := decimal.Zero
	if customerCovers {
		return total
	}
	for _, s := range bands {
		total = total.Add(PerInstructorMonthly(s, effectivePct))
	}
	return total
}

// OverheadsMonthly derives overheads from the shadow salary when the customer
// covers supervisors, from the highest band only when locked, and from the
// sum of bands otherwise. Effective percent never scales overheads.
func OverheadsMonthly(bands []decimal.Decimal, customerCovers, lock bool, shadow, overheadPct decimal.Decimal) decimal.Decimal {
	if customerCovers {
		return shadow.Mul(overheadPct).Div(monthsPerYear)
	}
	if lock && len(bands) > 0 {
		return decimal.Max(bands[0], bands[1:]...).Mul(overheadPct).Div(monthsPerYear)
	}
	total := decimal.Zero
	for _, s := range bands {
		total = total.Add(s.Mul(overheadPct).Div(monthsPerYear))
	}
	return total
}

// SupportDiscount is the development-rate reduction for choice.
func SupportDiscount(choice models.SupportChoice) decimal.Decimal {
	return supportDiscounts[choice]
}

// EffectiveDevRate is base less the support discount, clamped at 0. OGD
// customers pay no development charge.
func EffectiveDevRate(choice models.SupportChoice, customer models.CustomerType, base decimal.Decimal) decimal.Decimal {
	if customer == models.OGD {
		return decimal.Zero
	}
	rate := base.Sub(SupportDiscount(choice))
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

// VATRatePct is the VAT percentage applied to customer.
func VATRatePct(customer models.CustomerType, standard decimal.Decimal) decimal.Decimal {
	if customer == models.OGD {
		return decimal.Zero
	}
	return standard
}

// WeeklyToMonthly converts a weekly amount with the 52/12 factor.
func WeeklyToMonthly(x decimal.Decimal) decimal.Decimal {
	return x.Mul(weeksPerYear).Div(monthsPerYear)
}

// MonthlyToWeekly converts a monthly amount with the 12/52 factor.
func MonthlyToWeekly(x decimal.Decimal) decimal.Decimal {
	return x.Mul(monthsPerYear).Div(weeksPerYear)
}

// ApplyVAT returns x · (1 + pct/100).
func ApplyVAT(x, pct decimal.Decimal) decimal.Decimal {
	return x.Add(VATOn(x, pct))
}

// VATOn returns x · pct/100.
func VATOn(x, pct decimal.Decimal) decimal.Decimal {
	return x.Mul(pct).Div(hundred)
}
