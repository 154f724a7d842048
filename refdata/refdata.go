// Package refdata holds the immutable reference tables consulted by the quote
// engine: prison regions, instructor salary bands, shadow costs and defaults.
package refdata

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	customerrors "workshop-quote/errors"
	"workshop-quote/models"
)

//go:embed tables.yaml
var embeddedTables []byte

// Provider is the read contract the engine consumes.
type Provider interface {
	RegionOf(prison string) (models.Region, error)
	SalaryBands(region models.Region) []SalaryBand
	ShadowCost(region models.Region) decimal.Decimal
}

// SalaryBand is an instructor pay band.
type SalaryBand struct {
	Title       string          `yaml:"title" json:"title"`
	AnnualTotal decimal.Decimal `yaml:"annual_total" json:"annual_total_gbp"`
}

// Defaults are the global pricing constants injected into the engine.
type Defaults struct {
	VATRatePct             decimal.Decimal `yaml:"vat_rate_pct"`
	DevRateBase            decimal.Decimal `yaml:"dev_rate_base"`
	OverheadPct            decimal.Decimal `yaml:"overhead_pct"`
	GlobalOutputDefaultPct float64         `yaml:"global_output_default_pct"`
}

// StandardDefaults returns the built-in defaults.
func StandardDefaults() Defaults {
	return Defaults{
		VATRatePct:             decimal.NewFromInt(20),
		DevRateBase:            decimal.RequireFromString("0.20"),
		OverheadPct:            decimal.RequireFromString("0.61"),
		GlobalOutputDefaultPct: 100,
	}
}

// Prison is a registry entry.
type Prison struct {
	Name   string        `json:"name"`
	Region models.Region `json:"region"`
}

type regionTable struct {
	ShadowCost decimal.Decimal `yaml:"shadow_cost"`
	Bands      []SalaryBand    `yaml:"bands"`
}

type document struct {
	Defaults *Defaults                     `yaml:"defaults"`
	Regions  map[models.Region]regionTable `yaml:"regions"`
	Prisons  map[string]models.Region      `yaml:"prisons"`
}

// Table is a loaded, validated set of reference tables. It is never mutated
// after loading and is safe for concurrent reads.
type Table struct {
	defaults Defaults
	regions  map[models.Region]regionTable
	prisons  map[string]models.Region
}

// Embedded loads the tables compiled into the binary.
func Embedded() (*Table, error) {
	return Load(bytes.NewReader(embeddedTables))
}

// LoadFile loads tables from a YAML file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a YAML reference document.
func Load(r io.Reader) (*Table, error) {
	// Keys missing from a defaults block keep their standard values.
	defaults := StandardDefaults()
	doc := document{Defaults: &defaults}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid reference data: %w", err)
	}
	if doc.Defaults == nil {
		defaults = StandardDefaults()
	}
	return &Table{
		defaults: defaults,
		regions:  doc.Regions,
		prisons:  doc.Prisons,
	}, nil
}

func validate(doc *document) error {
	if len(doc.Prisons) == 0 {
		return fmt.Errorf("prisons are required")
	}
	for _, region := range []models.Region{models.InnerLondon, models.OuterLondon, models.National} {
		rt, ok := doc.Regions[region]
		if !ok {
			return fmt.Errorf("region %s is missing", region)
		}
		if !rt.ShadowCost.IsPositive() {
			return fmt.Errorf("region %s: shadow cost must be positive", region)
		}
		if len(rt.Bands) == 0 {
			return fmt.Errorf("region %s: salary bands are required", region)
		}
	}
	for region := range doc.Regions {
		if !region.IsValid() {
			return fmt.Errorf("unknown region %q", region)
		}
	}
	for name, region := range doc.Prisons {
		if !region.IsValid() {
			return fmt.Errorf("prison %q maps to unknown region %q", name, region)
		}
	}
	if doc.Defaults == nil {
		return nil
	}
	d := doc.Defaults
	if d.VATRatePct.IsNegative() || d.DevRateBase.IsNegative() || d.OverheadPct.IsNegative() {
		return fmt.Errorf("defaults must not be negative")
	}
	if d.GlobalOutputDefaultPct < 0 || d.GlobalOutputDefaultPct > 100 {
		return fmt.Errorf("global_output_default_pct must be within [0,100]")
	}
	return nil
}

// Defaults returns the defaults carried by the document.
func (t *Table) Defaults() Defaults {
	return t.defaults
}

// RegionOf maps a prison to its region. Names match exactly.
func (t *Table) RegionOf(prison string) (models.Region, error) {
	region, ok := t.prisons[prison]
	if !ok {
		return "", customerrors.New(customerrors.KindUnknownPrison, "prison", "%q is not in the registry", prison)
	}
	return region, nil
}

// SalaryBands returns a copy of the ordered bands for region.
func (t *Table) SalaryBands(region models.Region) []SalaryBand {
	bands := t.regions[region].Bands
	out := make([]SalaryBand, len(bands))
	copy(out, bands)
	return out
}

// ShadowCost returns the Band 3 salary imputed for region, falling back to
// National for an unknown region.
func (t *Table) ShadowCost(region models.Region) decimal.Decimal {
	if rt, ok := t.regions[region]; ok {
		return rt.ShadowCost
	}
	return t.regions[models.National].ShadowCost
}

// Prisons returns every registered prison sorted by name.
func (t *Table) Prisons() []Prison {
	prisons := make([]Prison, 0, len(t.prisons))
	for name, region := range t.prisons {
		prisons = append(prisons, Prison{Name: name, Region: region})
	}
	sort.Slice(prisons, func(i, j int) bool {
		return prisons[i].Name < prisons[j].Name
	})
	return prisons
}
