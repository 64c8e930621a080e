package sheets

import (
	"context"

	"creditreport/internal/core"
	"creditreport/internal/ui"
)

// Ports for outbound adapters.
type (
	// TableExporter writes a report table and its totals to an external
	// sheet and returns a reference to what was written.
	TableExporter interface {
		ExportTable(ctx context.Context, table ui.TableProps, totals []core.Total) (ref string, err error)
	}
)

// TotalLabel heads the totals block below an exported table.
const TotalLabel = "TOTAL"

// Values lays out table and totals as sheet rows: the column labels, the
// rows in display order, a blank separator and one TOTAL line per currency.
func Values(table ui.TableProps, totals []core.Total) [][]any {
	values := make([][]any, 0, len(table.Rows)+len(totals)+2)

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c.Label
	}
	values = append(values, header)

	for _, row := range table.DisplayRows() {
		line := make([]any, len(table.Columns))
		for i, c := range table.Columns {
			line[i] = row[c.Key]
		}
		values = append(values, line)
	}

	if len(totals) > 0 {
		values = append(values, []any{})
		for _, t := range totals {
			values = append(values, []any{TotalLabel, core.FormatDecimal(t.Profit), t.Currency})
		}
	}
	return values
}
