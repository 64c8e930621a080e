package memory

import (
	"context"
	"fmt"
	"sync"

	"creditreport/internal/core"
	"creditreport/internal/sheets"
	"creditreport/internal/ui"
)

// Export is one recorded table export.
type Export struct {
	Ref    string
	Values [][]any
}

// Store keeps exports in memory instead of a spreadsheet.
type Store struct {
	mu      sync.Mutex
	exports []Export
}

func New() *Store {
	return &Store{}
}

func (s *Store) ExportTable(_ context.Context, table ui.TableProps, totals []core.Total) (string, error) {
	values := sheets.Values(table, totals)
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := fmt.Sprintf("mem:%d!A1:G%d", len(s.exports)+1, len(values))
	s.exports = append(s.exports, Export{Ref: ref, Values: values})
	return ref, nil
}

func (s *Store) Exports() []Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Export(nil), s.exports...)
}

var _ sheets.TableExporter = (*Store)(nil)
