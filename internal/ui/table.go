package ui

import (
	"sort"
	"strconv"
	"strings"
)

const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

type ColumnDef struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type OrderBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Toolbar toggles the host table controls.
type Toolbar struct {
	Refresh   bool `json:"refresh"`
	Bookmarks bool `json:"bookmarks"`
	Export    bool `json:"export"`
}

// TableProps is the complete table description: schema, toolbar, rows.
type TableProps struct {
	Name     string              `json:"name"`
	IDColumn string              `json:"id_column"`
	OrderBy  OrderBy             `json:"order_by"`
	Toolbar  Toolbar             `json:"toolbar"`
	Columns  []ColumnDef         `json:"columns"`
	Rows     []map[string]string `json:"rows"`
}

// TableBuilder accumulates a table description.
type TableBuilder struct {
	props TableProps
}

func NewTableBuilder(name string) *TableBuilder {
	return &TableBuilder{props: TableProps{
		Name:    name,
		OrderBy: OrderBy{Direction: OrderAsc},
		Rows:    []map[string]string{},
	}}
}

func (b *TableBuilder) SetIDColumn(key string) *TableBuilder {
	b.props.IDColumn = key
	return b
}

// SetOrderBy sets the display ordering; direction is normalised to ASC/DESC.
func (b *TableBuilder) SetOrderBy(field, direction string) *TableBuilder {
	dir := OrderAsc
	if strings.EqualFold(direction, OrderDesc) {
		dir = OrderDesc
	}
	b.props.OrderBy = OrderBy{Field: field, Direction: dir}
	return b
}

func (b *TableBuilder) EnableRefreshButton(on bool) *TableBuilder {
	b.props.Toolbar.Refresh = on
	return b
}

func (b *TableBuilder) EnableBookmarksButton(on bool) *TableBuilder {
	b.props.Toolbar.Bookmarks = on
	return b
}

func (b *TableBuilder) EnableExportButton(on bool) *TableBuilder {
	b.props.Toolbar.Export = on
	return b
}

func (b *TableBuilder) AddColumn(col ColumnDef) *TableBuilder {
	b.props.Columns = append(b.props.Columns, col)
	return b
}

// AddRow appends a row keyed by column key. The map is copied.
func (b *TableBuilder) AddRow(row map[string]string) *TableBuilder {
	cp := make(map[string]string, len(row))
	for k, v := range row {
		cp[k] = v
	}
	b.props.Rows = append(b.props.Rows, cp)
	return b
}

func (b *TableBuilder) CreateTableProps() TableProps {
	props := b.props
	props.Columns = append([]ColumnDef(nil), b.props.Columns...)
	props.Rows = append([]map[string]string{}, b.props.Rows...)
	return props
}

// DisplayRows returns the rows in the order the host shows them. Cells that
// both parse as integers compare numerically, otherwise as strings. The sort
// is stable so equal keys keep insertion order.
func (p TableProps) DisplayRows() []map[string]string {
	rows := append([]map[string]string(nil), p.Rows...)
	if p.OrderBy.Field == "" {
		return rows
	}
	desc := p.OrderBy.Direction == OrderDesc
	field := p.OrderBy.Field
	sort.SliceStable(rows, func(i, j int) bool {
		c := compareCells(rows[i][field], rows[j][field])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return rows
}

func compareCells(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
