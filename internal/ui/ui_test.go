package ui

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTableBuilder(t *testing.T) {
	props := NewTableBuilder("T").
		SetIDColumn("id").
		SetOrderBy("id", "desc").
		EnableRefreshButton(false).
		EnableBookmarksButton(true).
		EnableExportButton(true).
		AddColumn(ColumnDef{Key: "id", Label: "ID"}).
		AddColumn(ColumnDef{Key: "v", Label: "VALUE"}).
		AddRow(map[string]string{"id": "1", "v": "a"}).
		CreateTableProps()

	if props.Name != "T" || props.IDColumn != "id" {
		t.Fatalf("unexpected props: %+v", props)
	}
	if props.OrderBy != (OrderBy{Field: "id", Direction: OrderDesc}) {
		t.Fatalf("unexpected order: %+v", props.OrderBy)
	}
	if props.Toolbar != (Toolbar{Refresh: false, Bookmarks: true, Export: true}) {
		t.Fatalf("unexpected toolbar: %+v", props.Toolbar)
	}
	if len(props.Columns) != 2 || props.Columns[1].Label != "VALUE" {
		t.Fatalf("unexpected columns: %+v", props.Columns)
	}
	if len(props.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(props.Rows))
	}
}

func TestAddRowCopies(t *testing.T) {
	row := map[string]string{"id": "1"}
	b := NewTableBuilder("T").AddRow(row)
	row["id"] = "2"
	if got := b.CreateTableProps().Rows[0]["id"]; got != "1" {
		t.Fatalf("row was aliased: %s", got)
	}
}

func TestDisplayRowsNumericDesc(t *testing.T) {
	props := NewTableBuilder("T").SetOrderBy("id", OrderDesc).
		AddRow(map[string]string{"id": "9"}).
		AddRow(map[string]string{"id": "10"}).
		AddRow(map[string]string{"id": "100"}).
		CreateTableProps()

	rows := props.DisplayRows()
	got := []string{rows[0]["id"], rows[1]["id"], rows[2]["id"]}
	if strings.Join(got, ",") != "100,10,9" {
		t.Fatalf("unexpected order: %v", got)
	}
	// insertion order untouched
	if props.Rows[0]["id"] != "9" {
		t.Fatal("DisplayRows mutated props")
	}
}

func TestDisplayRowsStringAsc(t *testing.T) {
	props := NewTableBuilder("T").SetOrderBy("k", "asc").
		AddRow(map[string]string{"k": "b"}).
		AddRow(map[string]string{"k": "a"}).
		CreateTableProps()
	rows := props.DisplayRows()
	if rows[0]["k"] != "a" {
		t.Fatalf("unexpected order: %v", rows)
	}
}

func TestCreateUIJSON(t *testing.T) {
	page := CreateUI(Column(H1(Text("Hello")), Table(nil, NewTableBuilder("T").CreateTableProps())))
	b, err := json.Marshal(page)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{`"type":"ui"`, `"type":"column"`, `"type":"h1"`, `"value":"Hello"`, `"type":"table"`, `"name":"T"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %s in %s", want, s)
		}
	}
}

func TestFind(t *testing.T) {
	root := Column(H1(Text("x")), Table(nil, TableProps{Name: "T"}))
	n, ok := root.Find(TypeTable)
	if !ok || n.Props.(TableProps).Name != "T" {
		t.Fatalf("table not found: %+v", n)
	}
	if _, ok := root.Find("chart"); ok {
		t.Fatal("unexpected node")
	}
}
