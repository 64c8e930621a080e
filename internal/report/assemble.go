package report

import (
	"creditreport/internal/core"
	"creditreport/internal/ui"
)

const (
	TableName = "CreditFacilityReport"
	Title     = "Credit Facility Report"
)

// Column keys, also used as table cell keys.
const (
	ColOrder     = "order"
	ColLogin     = "login"
	ColName      = "name"
	ColCloseTime = "close_time"
	ColComment   = "comment"
	ColProfit    = "profit"
	ColCurrency  = "currency"
)

// Columns is the table schema in display order.
var Columns = []ui.ColumnDef{
	{Key: ColOrder, Label: "ORDER"},
	{Key: ColLogin, Label: "LOGIN"},
	{Key: ColName, Label: "NAME"},
	{Key: ColCloseTime, Label: "CLOSE_TIME"},
	{Key: ColComment, Label: "COMMENT"},
	{Key: ColProfit, Label: "AMOUNT"},
	{Key: ColCurrency, Label: "CURRENCY"},
}

// Cells keys a row by column key.
func Cells(r core.ReportRow) map[string]string {
	return map[string]string{
		ColOrder:     r.Order,
		ColLogin:     r.Login,
		ColName:      r.Name,
		ColCloseTime: r.CloseTime,
		ColComment:   r.Comment,
		ColProfit:    r.Profit,
		ColCurrency:  r.Currency,
	}
}

// NewTable returns the configured, empty report table.
func NewTable() *ui.TableBuilder {
	b := ui.NewTableBuilder(TableName).
		SetIDColumn(ColOrder).
		SetOrderBy(ColOrder, ui.OrderDesc).
		EnableRefreshButton(false).
		EnableBookmarksButton(false).
		EnableExportButton(true)
	for _, c := range Columns {
		b.AddColumn(c)
	}
	return b
}

// Assemble wraps rows into the report page: a heading above the table.
func Assemble(rows []core.ReportRow) ui.Page {
	table := NewTable()
	for _, r := range rows {
		table.AddRow(Cells(r))
	}
	return ui.CreateUI(ui.Column(
		ui.H1(ui.Text(Title)),
		ui.Table(nil, table.CreateTableProps()),
	))
}
