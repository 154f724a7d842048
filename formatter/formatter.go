package formatter

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"workshop-quote/models"
)

const (
	labelWidth  = 42
	amountWidth = 14
)

// QuoteData holds prepared quote data used by all formatters
type QuoteData struct {
	Kind      models.ContractKind `json:"kind"`
	Region    models.Region       `json:"region"`
	LineItems []LineRow           `json:"line_items"`
	Totals    []LineRow           `json:"totals"`
	Items     []ItemRow           `json:"items,omitempty"`
	Lines     []JobRow            `json:"lines,omitempty"`
	Notes     []models.Note       `json:"notes"`
}

// LineRow is a labelled amount rounded to pence
type LineRow struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Memo   bool            `json:"memo,omitempty"`
}

// ItemRow summarises one contractual production item
type ItemRow struct {
	Name           string           `json:"name"`
	UnitsPerWeek   int              `json:"units_per_week"`
	UnitCostExVAT  *decimal.Decimal `json:"unit_cost_ex_vat"`
	UnitCostIncVAT *decimal.Decimal `json:"unit_cost_inc_vat"`
	MonthlyExVAT   decimal.Decimal  `json:"monthly_ex_vat"`
	MonthlyIncVAT  decimal.Decimal  `json:"monthly_inc_vat"`
}

// JobRow summarises one ad-hoc job line
type JobRow struct {
	Name            string          `json:"name"`
	UnitsRequested  int             `json:"units_requested"`
	UnitCostExVAT   decimal.Decimal `json:"unit_cost_ex_vat"`
	UnitCostIncVAT  decimal.Decimal `json:"unit_cost_inc_vat"`
	LineTotalExVAT  decimal.Decimal `json:"line_total_ex_vat"`
	LineTotalIncVAT decimal.Decimal `json:"line_total_inc_vat"`
	WeeksNeeded     int             `json:"weeks_needed"`
	RequiredBy      string          `json:"required_by,omitempty"`
	Deadline        string          `json:"deadline"`
	Feasible        bool            `json:"feasible"`
}

// prepareQuoteData rounds a result to pence and flattens totals into rows
func prepareQuoteData(result *models.QuoteResult) *QuoteData {
	data := &QuoteData{
		Kind:      result.Kind,
		Region:    result.Derived.Region,
		LineItems: make([]LineRow, 0, len(result.LineItems)),
		Notes:     result.Notes,
	}
	if data.Notes == nil {
		data.Notes = []models.Note{}
	}

	for _, li := range result.LineItems {
		data.LineItems = append(data.LineItems, LineRow{Label: li.Label, Amount: li.Amount.Round(2), Memo: li.Memo})
	}
	data.Totals = []LineRow{
		{Label: models.LabelSubtotal, Amount: result.Totals.Subtotal.Round(2)},
		{Label: result.Totals.VATLabel, Amount: result.Totals.VATAmount.Round(2)},
		{Label: result.Totals.GrandTotalLabel, Amount: result.Totals.GrandTotal.Round(2)},
	}

	for _, item := range result.Items {
		data.Items = append(data.Items, ItemRow{
			Name:           item.Name,
			UnitsPerWeek:   item.UnitsPerWeek,
			UnitCostExVAT:  roundOptional(item.UnitCostExVAT),
			UnitCostIncVAT: roundOptional(item.UnitCostIncVAT),
			MonthlyExVAT:   item.MonthlyExVAT.Round(2),
			MonthlyIncVAT:  item.MonthlyIncVAT.Round(2),
		})
	}

	for _, line := range result.Lines {
		row := JobRow{
			Name:            line.Name,
			UnitsRequested:  line.UnitsRequested,
			UnitCostExVAT:   line.UnitCostExVAT.Round(2),
			UnitCostIncVAT:  line.UnitCostIncVAT.Round(2),
			LineTotalExVAT:  line.LineTotalExVAT.Round(2),
			LineTotalIncVAT: line.LineTotalIncVAT.Round(2),
			WeeksNeeded:     line.WeeksNeeded,
			Deadline:        line.Deadline.Format(time.DateOnly),
			Feasible:        line.Feasible,
		}
		if line.RequiredBy != nil {
			row.RequiredBy = line.RequiredBy.Format(time.DateOnly)
		}
		data.Lines = append(data.Lines, row)
	}

	return data
}

func roundOptional(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}

// FormatText returns the text representation of the quote
func FormatText(result *models.QuoteResult) string {
	data := prepareQuoteData(result)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s quote (%s)\n", data.Kind, data.Region))
	hasMemo := false
	for _, row := range data.LineItems {
		sb.WriteString(formatTextLine(row))
		hasMemo = hasMemo || row.Memo
	}
	sb.WriteString(strings.Repeat("-", labelWidth+amountWidth+1) + "\n")
	for _, row := range data.Totals {
		sb.WriteString(formatTextLine(row))
	}
	if hasMemo {
		sb.WriteString("  * memo line, not added to the subtotal\n")
	}

	if len(data.Items) > 0 {
		sb.WriteString("\nItems:\n")
		for _, item := range data.Items {
			sb.WriteString(fmt.Sprintf("  • %s: %d/week, unit %s (%s inc VAT), monthly %s (%s inc VAT)\n",
				item.Name, item.UnitsPerWeek,
				FormatOptionalGBP(item.UnitCostExVAT), FormatOptionalGBP(item.UnitCostIncVAT),
				FormatGBP(item.MonthlyExVAT), FormatGBP(item.MonthlyIncVAT)))
		}
	}

	if len(data.Lines) > 0 {
		sb.WriteString("\nJob lines:\n")
		for _, line := range data.Lines {
			sb.WriteString(fmt.Sprintf("  • %s: %d units, unit %s (%s inc VAT), total %s (%s inc VAT), deadline %s\n",
				line.Name, line.UnitsRequested,
				FormatGBP(line.UnitCostExVAT), FormatGBP(line.UnitCostIncVAT),
				FormatGBP(line.LineTotalExVAT), FormatGBP(line.LineTotalIncVAT), line.Deadline))
		}
	}

	// Add advisory warnings if any
	for _, note := range data.Notes {
		sb.WriteString(fmt.Sprintf("  ⚠️  %s: %s\n", note.Code, note.Message))
	}

	return sb.String()
}

// formatTextLine formats a single labelled amount for text output
func formatTextLine(row LineRow) string {
	marker := ""
	if row.Memo {
		marker = " *"
	}
	return fmt.Sprintf("%-*s %*s%s\n", labelWidth, row.Label, amountWidth, FormatGBP(row.Amount), marker)
}

// FormatJSON returns the JSON representation of the quote
func FormatJSON(result *models.QuoteResult) string {
	data := prepareQuoteData(result)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the quote
func FormatCSV(result *models.QuoteResult) string {
	data := prepareQuoteData(result)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{"Section", "Label", "Amount", "Memo", "Detail"})

	for _, row := range data.LineItems {
		writer.Write([]string{"line", row.Label, row.Amount.StringFixed(2), yesNo(row.Memo), ""})
	}
	for _, row := range data.Totals {
		writer.Write([]string{"total", row.Label, row.Amount.StringFixed(2), "No", ""})
	}
	for _, item := range data.Items {
		unit := "n/a"
		if item.UnitCostExVAT != nil {
			unit = item.UnitCostExVAT.StringFixed(2)
		}
		writer.Write([]string{"item", item.Name, item.MonthlyExVAT.StringFixed(2), "No",
			fmt.Sprintf("units_per_week=%d; unit_cost_ex_vat=%s", item.UnitsPerWeek, unit)})
	}
	for _, line := range data.Lines {
		writer.Write([]string{"job", line.Name, line.LineTotalExVAT.StringFixed(2), "No",
			fmt.Sprintf("units=%d; unit_cost_ex_vat=%s; weeks_needed=%d; deadline=%s",
				line.UnitsRequested, line.UnitCostExVAT.StringFixed(2), line.WeeksNeeded, line.Deadline)})
	}
	for _, note := range data.Notes {
		writer.Write([]string{"note", string(note.Code), "", "", note.Message})
	}

	writer.Flush()
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
