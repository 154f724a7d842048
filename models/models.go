package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Region is the pay region a prison belongs to.
type Region string

const (
	InnerLondon Region = "InnerLondon"
	OuterLondon Region = "OuterLondon"
	National    Region = "National"
)

// IsValid reports whether r is one of the known regions.
func (r Region) IsValid() bool {
	switch r {
	case InnerLondon, OuterLondon, National:
		return true
	}
	return false
}

// CustomerType selects between commercial pricing and the
// VAT/development-charge exemption for other government departments.
type CustomerType string

const (
	Commercial CustomerType = "Commercial"
	OGD        CustomerType = "OGD"
)

// IsValid reports whether c is Commercial or OGD.
func (c CustomerType) IsValid() bool {
	return c == Commercial || c == OGD
}

// SupportChoice is the employment-support commitment that discounts the
// development charge.
type SupportChoice string

const (
	SupportNone          SupportChoice = "None"
	SupportOnReleaseROTL SupportChoice = "OnReleaseROTL"
	SupportPostRelease   SupportChoice = "PostRelease"
	SupportBoth          SupportChoice = "Both"
)

// IsValid reports whether s is one of the known support choices.
func (s SupportChoice) IsValid() bool {
	switch s {
	case SupportNone, SupportOnReleaseROTL, SupportPostRelease, SupportBoth:
		return true
	}
	return false
}

// ContractKind tags the contract variant of a request and its result.
type ContractKind string

const (
	KindHost                  ContractKind = "Host"
	KindContractualProduction ContractKind = "ContractualProduction"
	KindAdhocProduction       ContractKind = "AdhocProduction"
)

// PricingBasis selects how weekly units are obtained for contractual production.
type PricingBasis string

const (
	AsIsCapacity  PricingBasis = "AsIsCapacity"
	WeeklyTargets PricingBasis = "WeeklyTargets"
)

// IsValid reports whether p is one of the known pricing bases.
func (p PricingBasis) IsValid() bool {
	return p == AsIsCapacity || p == WeeklyTargets
}

// QuoteRequest is the populated input handed to the engine by an input provider.
// Region is not part of the request; the engine derives it from Prison.
type QuoteRequest struct {
	Prison                string
	CustomerType          CustomerType
	CustomerName          string
	WorkshopHoursPerWeek  float64
	NumPrisoners          int
	PrisonerSalaryPerWeek decimal.Decimal
	// InstructorBands holds annual salaries. Empty means the customer
	// supplies their own supervisors.
	InstructorBands   []decimal.Decimal
	EffectivePct      float64
	OutputPct         float64
	LockOverheads     bool
	ContractsOverseen int
	SupportChoice     SupportChoice
	Contract          Contract
}

// CustomerCoversSupervisors reports whether the customer supplies the instructors.
func (r QuoteRequest) CustomerCoversSupervisors() bool {
	return len(r.InstructorBands) == 0
}

// Contract is one of Host, ContractualProduction or AdhocProduction.
type Contract interface {
	Kind() ContractKind
}

// Host is a labour-capacity rental priced as a monthly fixed cost.
type Host struct{}

func (Host) Kind() ContractKind { return KindHost }

// ContractualProduction is ongoing weekly production of ProductItems.
type ContractualProduction struct {
	PricingBasis PricingBasis
	Items        []ProductItem
	// Targets are weekly units per item, used with WeeklyTargets.
	Targets []int
}

func (ContractualProduction) Kind() ContractKind { return KindContractualProduction }

// AdhocProduction is a one-off job.
type AdhocProduction struct {
	Lines []AdhocLine
	Today time.Time
}

func (AdhocProduction) Kind() ContractKind { return KindAdhocProduction }

// ProductItem is a product made under a contractual production contract.
type ProductItem struct {
	Name              string
	RequiredPrisoners int
	MinutesPerUnit    float64
	// AssignedPrisoners work solely on this item when non-zero.
	AssignedPrisoners int
}

// MinutesRequiredPerUnit is the prisoner-minutes consumed by one unit.
func (p ProductItem) MinutesRequiredPerUnit() float64 {
	return p.MinutesPerUnit * float64(p.RequiredPrisoners)
}

// AdhocLine is one line of an ad-hoc job.
type AdhocLine struct {
	Name             string
	UnitsRequested   int
	PrisonersPerItem int
	MinutesPerItem   float64
	Deadline         time.Time
}

// MinutesRequiredPerUnit is the prisoner-minutes consumed by one unit.
func (l AdhocLine) MinutesRequiredPerUnit() float64 {
	return l.MinutesPerItem * float64(l.PrisonersPerItem)
}
