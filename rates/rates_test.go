package rates_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshop-quote/models"
	"workshop-quote/rates"
	"workshop-quote/refdata"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, expected float64, actual decimal.Decimal) {
	t.Helper()
	assert.InDelta(t, expected, actual.InexactFloat64(), 0.01, "got %s", actual)
}

func TestInstructorsMonthly(t *testing.T) {
	tests := map[string]struct {
		bands     []decimal.Decimal
		effective float64
		covers    bool
		expected  float64
	}{
		"SingleBandFullTime": {
			bands:     []decimal.Decimal{d("42248")},
			effective: 100,
			expected:  3520.67,
		},
		"TwoBandsHalfTime": {
			bands:     []decimal.Decimal{d("42248"), d("38591.05")},
			effective: 50,
			expected:  (42248 + 38591.05) / 24,
		},
		"CustomerCovers": {
			covers:    true,
			effective: 100,
			expected:  0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assertMoney(t, tt.expected, rates.InstructorsMonthly(tt.bands, tt.effective, tt.covers))
		})
	}
}

func TestOverheadsMonthly(t *testing.T) {
	pct := d("0.61")
	bands := []decimal.Decimal{d("38591.05"), d("42248")}

	tests := map[string]struct {
		bands    []decimal.Decimal
		covers   bool
		lock     bool
		expected float64
	}{
		"SumOfBands": {
			bands:    bands,
			expected: (38591.05 + 42248) * 0.61 / 12,
		},
		"LockedUsesHighestBand": {
			bands:    bands,
			lock:     true,
			expected: 42248 * 0.61 / 12,
		},
		"CustomerCoversUsesShadow": {
			covers:   true,
			expected: 49202.70 * 0.61 / 12,
		},
		"CustomerCoversIgnoresLock": {
			covers:   true,
			lock:     true,
			expected: 49202.70 * 0.61 / 12,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assertMoney(t, tt.expected, rates.OverheadsMonthly(tt.bands, tt.covers, tt.lock, d("49202.70"), pct))
		})
	}
}

func TestEffectiveDevRate(t *testing.T) {
	base := d("0.20")

	tests := map[string]struct {
		choice   models.SupportChoice
		customer models.CustomerType
		expected string
	}{
		"None":        {models.SupportNone, models.Commercial, "0.20"},
		"ROTL":        {models.SupportOnReleaseROTL, models.Commercial, "0.10"},
		"PostRelease": {models.SupportPostRelease, models.Commercial, "0.10"},
		"Both":        {models.SupportBoth, models.Commercial, "0"},
		"OGD":         {models.SupportNone, models.OGD, "0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := rates.EffectiveDevRate(tt.choice, tt.customer, base)
			assert.True(t, got.Equal(d(tt.expected)), "got %s", got)
		})
	}
}

func TestEffectiveDevRate_ClampsAtZero(t *testing.T) {
	got := rates.EffectiveDevRate(models.SupportBoth, models.Commercial, d("0.15"))
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestVATRatePct(t *testing.T) {
	assert.True(t, rates.VATRatePct(models.Commercial, d("20")).Equal(d("20")))
	assert.True(t, rates.VATRatePct(models.OGD, d("20")).IsZero())
}

func TestConversions(t *testing.T) {
	weekly := d("250")
	assertMoney(t, 1083.33, rates.WeeklyToMonthly(weekly))
	assert.True(t, rates.MonthlyToWeekly(rates.WeeklyToMonthly(weekly)).Round(10).Equal(weekly))

	assert.True(t, rates.VATOn(d("100"), d("20")).Equal(d("20")))
	assert.True(t, rates.ApplyVAT(d("100"), d("20")).Equal(d("120")))
}

func TestResolve(t *testing.T) {
	req := models.QuoteRequest{
		CustomerType:    models.Commercial,
		InstructorBands: []decimal.Decimal{d("42248")},
		EffectivePct:    100,
		SupportChoice:   models.SupportOnReleaseROTL,
	}
	table, err := refdata.Embedded()
	require.NoError(t, err)

	r := rates.Resolve(req, models.National, table, refdata.StandardDefaults())
	assert.False(t, r.CustomerCoversSupervisors)
	assertMoney(t, 3520.67, r.InstructorsMonthly)
	assertMoney(t, 2147.61, r.OverheadsMonthly)
	assert.True(t, r.EffectiveDevRate.Equal(d("0.10")))
	assert.True(t, r.VATRatePct.Equal(d("20")))
}
