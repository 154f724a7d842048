// Package pricing turns a validated quote request into a QuoteResult under the
// Host, contractual production and ad-hoc production regimes.
//
// The engine is a pure function of its request and the reference data it was
// built with. It performs no I/O and may be called from many goroutines.
package pricing

import (
	"github.com/shopspring/decimal"

	"workshop-quote/capacity"
	customerrors "workshop-quote/errors"
	"workshop-quote/models"
	"workshop-quote/rates"
	"workshop-quote/refdata"
)

// Engine prices quote requests against fixed reference data.
type Engine struct {
	ref      refdata.Provider
	defaults refdata.Defaults
}

// NewEngine builds an engine. ref and defaults must not change afterwards.
func NewEngine(ref refdata.Provider, defaults refdata.Defaults) *Engine {
	return &Engine{ref: ref, defaults: defaults}
}

// Defaults returns the defaults the engine prices with.
func (e *Engine) Defaults() refdata.Defaults {
	return e.defaults
}

// Quote validates req and prices it. A failed precondition returns a
// *errors.QuoteError and no result.
func (e *Engine) Quote(req models.QuoteRequest) (*models.QuoteResult, error) {
	req.Contract = variant(req.Contract)
	region, err := e.validate(req)
	if err != nil {
		return nil, err
	}

	q := quoteContext{
		req:    req,
		region: region,
		rates:  rates.Resolve(req, region, e.ref, e.defaults),
		budget: capacity.WeeklyBudget(req.WorkshopHoursPerWeek, req.NumPrisoners, req.OutputPct),
	}

	switch c := req.Contract.(type) {
	case models.Host:
		return priceHost(q), nil
	case models.ContractualProduction:
		return priceContractual(q, c), nil
	case models.AdhocProduction:
		return priceAdhoc(q, c), nil
	}
	return nil, customerrors.New(customerrors.KindInternal, "contract", "unhandled contract variant %T", req.Contract)
}

// variant returns the value form of a contract; a nil pointer is no contract.
func variant(c models.Contract) models.Contract {
	switch v := c.(type) {
	case *models.Host:
		if v != nil {
			return *v
		}
		return nil
	case *models.ContractualProduction:
		if v != nil {
			return *v
		}
		return nil
	case *models.AdhocProduction:
		if v != nil {
			return *v
		}
		return nil
	}
	return c
}

// quoteContext carries the values every pricer derives from.
type quoteContext struct {
	req    models.QuoteRequest
	region models.Region
	rates  rates.Rates
	budget float64
}

func (q quoteContext) commercial() bool {
	return q.req.CustomerType == models.Commercial
}

func (q quoteContext) contracts() decimal.Decimal {
	return decimal.NewFromInt(int64(q.req.ContractsOverseen))
}

// sharedInstructors is this contract's share of the monthly instructor cost.
func (q quoteContext) sharedInstructors() decimal.Decimal {
	return q.rates.InstructorsMonthly.Div(q.contracts())
}

// sharedOverheads is this contract's share of the monthly overheads.
func (q quoteContext) sharedOverheads() decimal.Decimal {
	return q.rates.OverheadsMonthly.Div(q.contracts())
}

// minutesPerWeek is one prisoner's workshop minutes in a week.
func (q quoteContext) minutesPerWeek() decimal.Decimal {
	return decimal.NewFromFloat(q.req.WorkshopHoursPerWeek).Mul(decimal.NewFromInt(60))
}

// wagePerMinute is the prisoner wage per prisoner-minute.
func (q quoteContext) wagePerMinute() decimal.Decimal {
	return q.req.PrisonerSalaryPerWeek.Div(q.minutesPerWeek())
}

func (q quoteContext) derived() models.Derived {
	return models.Derived{
		Region:                    q.region,
		CustomerCoversSupervisors: q.rates.CustomerCoversSupervisors,
		InstructorsMonthly:        q.sharedInstructors(),
		OverheadsMonthly:          q.sharedOverheads(),
		DevRateBase:               q.rates.DevRateBase,
		EffectiveDevRate:          q.rates.EffectiveDevRate,
		DevChargeBeforeReductions: decimal.Zero,
		DevChargeApplied:          decimal.Zero,
		WeeklyMinutesBudget:       q.budget,
	}
}
