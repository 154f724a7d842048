package parser_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "workshop-quote/errors"
	"workshop-quote/models"
	"workshop-quote/parser"
	"workshop-quote/refdata"
)

func TestParseRequest_HostDefaults(t *testing.T) {
	input := `{
		"prison": " Wakefield ",
		"customer_type": "Commercial",
		"customer_name": "Acme Ltd",
		"workshop_hours_per_week": 27,
		"num_prisoners": 10,
		"prisoner_salary_per_week": "25",
		"instructor_bands": ["38591.05", 42248],
		"contract": {"type": "Host"}
	}`

	defaults := refdata.StandardDefaults()
	defaults.GlobalOutputDefaultPct = 90

	req, err := parser.ParseRequest(strings.NewReader(input), defaults)
	require.NoError(t, err)

	assert.Equal(t, "Wakefield", req.Prison)
	assert.Equal(t, models.Commercial, req.CustomerType)
	assert.Equal(t, 27.0, req.WorkshopHoursPerWeek)
	assert.Equal(t, 10, req.NumPrisoners)
	assert.True(t, req.PrisonerSalaryPerWeek.Equal(decimal.NewFromInt(25)))
	require.Len(t, req.InstructorBands, 2)
	assert.True(t, req.InstructorBands[1].Equal(decimal.NewFromInt(42248)))

	assert.Equal(t, 100.0, req.EffectivePct)
	assert.Equal(t, 90.0, req.OutputPct)
	assert.Equal(t, 1, req.ContractsOverseen)
	assert.Equal(t, models.SupportNone, req.SupportChoice)
	assert.False(t, req.LockOverheads)
	assert.Equal(t, models.Host{}, req.Contract)
}

func TestParseRequest_Variants(t *testing.T) {
	tests := map[string]struct {
		contract string
		check    func(t *testing.T, c models.Contract)
	}{
		"ContractualProduction": {
			contract: `{"type": "ContractualProduction", "pricing_basis": "WeeklyTargets",
				"items": [{"name": "Chairs", "required_prisoners": 5, "minutes_per_unit": 30, "assigned_prisoners": 5}],
				"targets": [100]}`,
			check: func(t *testing.T, c models.Contract) {
				cp, ok := c.(models.ContractualProduction)
				require.True(t, ok, "got %T", c)
				assert.Equal(t, models.WeeklyTargets, cp.PricingBasis)
				assert.Equal(t, []models.ProductItem{
					{Name: "Chairs", RequiredPrisoners: 5, MinutesPerUnit: 30, AssignedPrisoners: 5},
				}, cp.Items)
				assert.Equal(t, []int{100}, cp.Targets)
			},
		},
		"AdhocProduction": {
			contract: `{"type": "AdhocProduction", "today": "2025-01-01",
				"lines": [{"name": "Signs", "units_requested": 50, "prisoners_per_item": 1,
					"minutes_per_item": 20, "deadline": "2025-03-01"}]}`,
			check: func(t *testing.T, c models.Contract) {
				ap, ok := c.(models.AdhocProduction)
				require.True(t, ok, "got %T", c)
				assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), ap.Today)
				require.Len(t, ap.Lines, 1)
				assert.Equal(t, "Signs", ap.Lines[0].Name)
				assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ap.Lines[0].Deadline)
			},
		},
		"AdhocProduction_MissingToday": {
			contract: `{"type": "AdhocProduction", "lines": []}`,
			check: func(t *testing.T, c models.Contract) {
				ap, ok := c.(models.AdhocProduction)
				require.True(t, ok, "got %T", c)
				assert.True(t, ap.Today.IsZero())
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			input := `{"prison": "Leeds", "customer_type": "OGD", "workshop_hours_per_week": 30,
				"num_prisoners": 10, "prisoner_salary_per_week": 20, "effective_pct": 50,
				"output_pct": 80, "contracts_overseen": 2, "support_choice": "Both",
				"contract": ` + tt.contract + `}`

			req, err := parser.ParseRequest(strings.NewReader(input), refdata.StandardDefaults())
			require.NoError(t, err)
			assert.Equal(t, 50.0, req.EffectivePct)
			assert.Equal(t, 80.0, req.OutputPct)
			assert.Equal(t, 2, req.ContractsOverseen)
			assert.Equal(t, models.SupportBoth, req.SupportChoice)
			tt.check(t, req.Contract)
		})
	}
}

func TestParseRequest_Errors(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedError error
	}{
		"MalformedJSON": {
			input:         `{"prison": `,
			expectedError: customerrors.ErrInvalidDocument,
		},
		"MissingContract": {
			input:         `{"prison": "Leeds"}`,
			expectedError: customerrors.ErrInvalidEnum,
		},
		"UnknownContractType": {
			input:         `{"prison": "Leeds", "contract": {"type": "Lease"}}`,
			expectedError: customerrors.ErrInvalidEnum,
		},
		"BadToday": {
			input:         `{"prison": "Leeds", "contract": {"type": "AdhocProduction", "today": "01/01/2025"}}`,
			expectedError: customerrors.ErrInvalidDate,
		},
		"BadDeadline": {
			input: `{"prison": "Leeds", "contract": {"type": "AdhocProduction", "today": "2025-01-01",
				"lines": [{"name": "Signs", "deadline": "soon"}]}}`,
			expectedError: customerrors.ErrInvalidDate,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parser.ParseRequest(strings.NewReader(tt.input), refdata.StandardDefaults())
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}
