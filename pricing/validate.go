package pricing

import (
	"math"

	customerrors "workshop-quote/errors"
	"workshop-quote/models"
)

const maxHoursPerWeek = 168

// validate checks every precondition before any arithmetic and returns the
// region derived from the prison. Contracts must already be in value form.
func (e *Engine) validate(req models.QuoteRequest) (models.Region, error) {
	if req.Contract == nil {
		return "", customerrors.New(customerrors.KindInvalidEnum, "contract_type", "contract is missing")
	}
	if !req.CustomerType.IsValid() {
		return "", customerrors.New(customerrors.KindInvalidEnum, "customer_type", "%q is not a customer type", req.CustomerType)
	}
	if !req.SupportChoice.IsValid() {
		return "", customerrors.New(customerrors.KindInvalidEnum, "support_choice", "%q is not a support choice", req.SupportChoice)
	}

	region, err := e.ref.RegionOf(req.Prison)
	if err != nil {
		return "", err
	}

	if err := validateCommon(req); err != nil {
		return "", err
	}

	switch c := req.Contract.(type) {
	case models.Host:
	case models.ContractualProduction:
		err = validateContractual(req, c)
	case models.AdhocProduction:
		err = validateAdhoc(req, c)
	default:
		err = customerrors.New(customerrors.KindInvalidEnum, "contract_type", "%q is not a contract type", req.Contract.Kind())
	}
	if err != nil {
		return "", err
	}
	return region, nil
}

func validateCommon(req models.QuoteRequest) error {
	if !within(req.WorkshopHoursPerWeek, 0, maxHoursPerWeek) {
		return customerrors.New(customerrors.KindOutOfRange, "workshop_hours_per_week", "%v is outside [0,%d]", req.WorkshopHoursPerWeek, maxHoursPerWeek)
	}
	if req.NumPrisoners < 0 {
		return customerrors.New(customerrors.KindOutOfRange, "num_prisoners", "%d is negative", req.NumPrisoners)
	}
	if req.PrisonerSalaryPerWeek.IsNegative() {
		return customerrors.New(customerrors.KindOutOfRange, "prisoner_salary_per_week", "%s is negative", req.PrisonerSalaryPerWeek)
	}
	for i, band := range req.InstructorBands {
		if band.IsNegative() {
			return customerrors.New(customerrors.KindOutOfRange, "instructor_bands", "band %d is negative", i)
		}
	}
	if !within(req.EffectivePct, 0, 100) {
		return customerrors.New(customerrors.KindOutOfRange, "effective_pct", "%v is outside [0,100]", req.EffectivePct)
	}
	if !within(req.OutputPct, 0, 100) {
		return customerrors.New(customerrors.KindOutOfRange, "output_pct", "%v is outside [0,100]", req.OutputPct)
	}
	if req.ContractsOverseen < 1 {
		return customerrors.New(customerrors.KindOutOfRange, "contracts_overseen", "%d is less than 1", req.ContractsOverseen)
	}
	return nil
}

func validateContractual(req models.QuoteRequest, c models.ContractualProduction) error {
	if !c.PricingBasis.IsValid() {
		return customerrors.New(customerrors.KindInvalidEnum, "pricing_basis", "%q is not a pricing basis", c.PricingBasis)
	}
	if len(c.Items) == 0 {
		return customerrors.New(customerrors.KindEmptyProduction, "items", "no items to produce")
	}
	if req.WorkshopHoursPerWeek == 0 {
		return customerrors.New(customerrors.KindInconsistentRequest, "workshop_hours_per_week", "production needs workshop hours")
	}

	assigned := 0
	for _, item := range c.Items {
		if item.RequiredPrisoners < 1 {
			return customerrors.New(customerrors.KindOutOfRange, "items.required_prisoners", "%q needs at least 1 prisoner", item.Name)
		}
		if !(item.MinutesPerUnit > 0) || math.IsInf(item.MinutesPerUnit, 0) {
			return customerrors.New(customerrors.KindOutOfRange, "items.minutes_per_unit", "%q must take a positive time per unit", item.Name)
		}
		if item.AssignedPrisoners < 0 {
			return customerrors.New(customerrors.KindOutOfRange, "items.assigned_prisoners", "%q has a negative assignment", item.Name)
		}
		assigned += item.AssignedPrisoners
	}
	if assigned > req.NumPrisoners {
		return customerrors.New(customerrors.KindInconsistentRequest, "items.assigned_prisoners", "%d prisoners assigned but only %d in the workshop", assigned, req.NumPrisoners)
	}

	if c.PricingBasis == models.WeeklyTargets {
		if len(c.Targets) != len(c.Items) {
			return customerrors.New(customerrors.KindInconsistentRequest, "targets", "%d targets for %d items", len(c.Targets), len(c.Items))
		}
		for i, target := range c.Targets {
			if target < 0 {
				return customerrors.New(customerrors.KindOutOfRange, "targets", "target for %q is negative", c.Items[i].Name)
			}
		}
	}
	return nil
}

func validateAdhoc(req models.QuoteRequest, c models.AdhocProduction) error {
	if len(c.Lines) == 0 {
		return customerrors.New(customerrors.KindEmptyProduction, "lines", "no job lines")
	}
	if req.WorkshopHoursPerWeek == 0 {
		return customerrors.New(customerrors.KindInconsistentRequest, "workshop_hours_per_week", "production needs workshop hours")
	}
	if c.Today.IsZero() {
		return customerrors.New(customerrors.KindInconsistentRequest, "today", "quote date is missing")
	}
	for _, line := range c.Lines {
		if line.UnitsRequested < 1 {
			return customerrors.New(customerrors.KindOutOfRange, "lines.units_requested", "%q must request at least 1 unit", line.Name)
		}
		if line.PrisonersPerItem < 1 {
			return customerrors.New(customerrors.KindOutOfRange, "lines.prisoners_per_item", "%q needs at least 1 prisoner", line.Name)
		}
		if !(line.MinutesPerItem > 0) || math.IsInf(line.MinutesPerItem, 0) {
			return customerrors.New(customerrors.KindOutOfRange, "lines.minutes_per_item", "%q must take a positive time per item", line.Name)
		}
		if line.Deadline.IsZero() {
			return customerrors.New(customerrors.KindInconsistentRequest, "lines.deadline", "%q has no deadline", line.Name)
		}
	}
	return nil
}

// within reports lo <= v <= hi; NaN is never within.
func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
