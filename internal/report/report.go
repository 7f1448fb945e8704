// Package report sums ledger rows and renders them as JSON, CSV or XLSX.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/bhushanhacker007/solar-burji-app/internal/period"

	"github.com/shopspring/decimal"
)

const (
	MoneyPlaces  int32 = 2
	EnergyPlaces int32 = 3
)

// Total is one named aggregate, rounded to Places only when rendered.
type Total struct {
	Key    string
	Value  decimal.Decimal
	Places int32
}

// Fixed renders the rounded value, e.g. "100.00".
func (t Total) Fixed() string {
	return t.Value.StringFixed(t.Places)
}

// Table is a ledger's rows plus everything needed to render them.
type Table struct {
	Entity  string // file name prefix: sales, borrowings, solar
	RowsKey string // JSON key of the row list
	Rows    any
	Totals  []Total
	Header  []string
	Records [][]string // raw stored values, one per row
	Footer  []string   // the synthetic TOTALS row
}

// JSON builds the summary object: range, totals as numbers, and the ordered rows.
func (t *Table) JSON(r period.Range) map[string]any {
	out := map[string]any{
		"range": r,
	}
	for _, tot := range t.Totals {
		out[tot.Key] = json.Number(tot.Fixed())
	}
	out[t.RowsKey] = t.Rows
	return out
}

// Filename is "{entity}_{start}_to_{end}.{ext}".
func (t *Table) Filename(r period.Range, ext string) string {
	return fmt.Sprintf("%s_%s_to_%s.%s", t.Entity, r.Start, r.End, ext)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
