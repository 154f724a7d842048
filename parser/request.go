package parser

import (
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	customerrors "workshop-quote/errors"
	"workshop-quote/models"
	"workshop-quote/refdata"
)

const (
	dateLayout = "2006-01-02"
	fullTime   = 100.0
)

type requestDocument struct {
	Prison                string            `json:"prison"`
	CustomerType          string            `json:"customer_type"`
	CustomerName          string            `json:"customer_name"`
	WorkshopHoursPerWeek  float64           `json:"workshop_hours_per_week"`
	NumPrisoners          int               `json:"num_prisoners"`
	PrisonerSalaryPerWeek decimal.Decimal   `json:"prisoner_salary_per_week"`
	InstructorBands       []decimal.Decimal `json:"instructor_bands"`
	EffectivePct          *float64          `json:"effective_pct"`
	OutputPct             *float64          `json:"output_pct"`
	LockOverheads         bool              `json:"lock_overheads"`
	ContractsOverseen     *int              `json:"contracts_overseen"`
	SupportChoice         string            `json:"support_choice"`
	Contract              *contractDocument `json:"contract"`
}

type contractDocument struct {
	Type         string         `json:"type"`
	PricingBasis string         `json:"pricing_basis"`
	Items        []itemDocument `json:"items"`
	Targets      []int          `json:"targets"`
	Today        string         `json:"today"`
	Lines        []lineDocument `json:"lines"`
}

type itemDocument struct {
	Name              string  `json:"name"`
	RequiredPrisoners int     `json:"required_prisoners"`
	MinutesPerUnit    float64 `json:"minutes_per_unit"`
	AssignedPrisoners int     `json:"assigned_prisoners"`
}

type lineDocument struct {
	Name             string  `json:"name"`
	UnitsRequested   int     `json:"units_requested"`
	PrisonersPerItem int     `json:"prisoners_per_item"`
	MinutesPerItem   float64 `json:"minutes_per_item"`
	Deadline         string  `json:"deadline"`
}

// ParseRequest decodes a JSON quote request. An absent output_pct takes the
// global output default, an absent effective_pct is 100, an absent contracts_overseen
// is 1 and an absent support_choice is None. Enum values are passed through
// unchecked; the engine validates them, except for the contract type which
// selects the variant here.
func ParseRequest(r io.Reader, defaults refdata.Defaults) (models.QuoteRequest, error) {
	var doc requestDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return models.QuoteRequest{}, &customerrors.ParseError{
			Err: fmt.Errorf("%w: %v", customerrors.ErrInvalidDocument, err),
		}
	}

	req := models.QuoteRequest{
		Prison:                strings.TrimSpace(doc.Prison),
		CustomerType:          models.CustomerType(doc.CustomerType),
		CustomerName:          strings.TrimSpace(doc.CustomerName),
		WorkshopHoursPerWeek:  doc.WorkshopHoursPerWeek,
		NumPrisoners:          doc.NumPrisoners,
		PrisonerSalaryPerWeek: doc.PrisonerSalaryPerWeek,
		InstructorBands:       doc.InstructorBands,
		EffectivePct:          fullTime,
		OutputPct:             defaults.GlobalOutputDefaultPct,
		LockOverheads:         doc.LockOverheads,
		ContractsOverseen:     1,
		SupportChoice:         models.SupportNone,
	}
	if doc.EffectivePct != nil {
		req.EffectivePct = *doc.EffectivePct
	}
	if doc.OutputPct != nil {
		req.OutputPct = *doc.OutputPct
	}
	if doc.ContractsOverseen != nil {
		req.ContractsOverseen = *doc.ContractsOverseen
	}
	if doc.SupportChoice != "" {
		req.SupportChoice = models.SupportChoice(doc.SupportChoice)
	}

	if doc.Contract == nil {
		return models.QuoteRequest{}, customerrors.New(customerrors.KindInvalidEnum, "contract.type", "contract is missing")
	}
	contract, err := doc.Contract.toContract()
	if err != nil {
		return models.QuoteRequest{}, err
	}
	req.Contract = contract
	return req, nil
}

func (c *contractDocument) toContract() (models.Contract, error) {
	switch models.ContractKind(c.Type) {
	case models.KindHost:
		return models.Host{}, nil

	case models.KindContractualProduction:
		items := make([]models.ProductItem, len(c.Items))
		for i, it := range c.Items {
			items[i] = models.ProductItem{
				Name:              strings.TrimSpace(it.Name),
				RequiredPrisoners: it.RequiredPrisoners,
				MinutesPerUnit:    it.MinutesPerUnit,
				AssignedPrisoners: it.AssignedPrisoners,
			}
		}
		return models.ContractualProduction{
			PricingBasis: models.PricingBasis(c.PricingBasis),
			Items:        items,
			Targets:      c.Targets,
		}, nil

	case models.KindAdhocProduction:
		today, err := parseDate(c.Today, "today")
		if err != nil {
			return nil, err
		}
		lines := make([]models.AdhocLine, len(c.Lines))
		for i, l := range c.Lines {
			deadline, err := parseDate(l.Deadline, "deadline")
			if err != nil {
				return nil, err
			}
			lines[i] = models.AdhocLine{
				Name:             strings.TrimSpace(l.Name),
				UnitsRequested:   l.UnitsRequested,
				PrisonersPerItem: l.PrisonersPerItem,
				MinutesPerItem:   l.MinutesPerItem,
				Deadline:         deadline,
			}
		}
		return models.AdhocProduction{Lines: lines, Today: today}, nil
	}
	return nil, customerrors.New(customerrors.KindInvalidEnum, "contract.type", "%q is not a contract type", c.Type)
}

// parseDate leaves an empty value as the zero time; the engine rejects it.
func parseDate(value, field string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &customerrors.ParseError{
			Err: fmt.Errorf("%w: %s %q", customerrors.ErrInvalidDate, field, value),
		}
	}
	return t, nil
}
