// Package backend builds the host data backend and the optional exporter
// from configuration.
package backend

import (
	"context"
	"time"

	"creditreport/internal/adapters"
	"creditreport/internal/host"
	"creditreport/internal/sheets"
)

type CleanupFunc func() error

// BackendResult is a ready host server plus what the binaries need around it.
type BackendResult struct {
	Server host.Server
	// Groups is the caching decorator around Server, nil when caching is off.
	Groups  *adapters.CachedGroups
	Ready   func(ctx context.Context) error
	Cleanup CleanupFunc
}

// CacheSize reports cached group entries, zero when caching is off.
func (r *BackendResult) CacheSize() int {
	if r.Groups == nil {
		return 0
	}
	return r.Groups.Cache().Size()
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	// CreateExporter returns nil when export is not configured.
	CreateExporter(ctx context.Context, config Config) (sheets.TableExporter, error)
}

type Config struct {
	Type BackendType

	// Memory backend
	FixturesPath string

	// SQLite backend
	SQLiteDBPath string

	// Zero disables the group cache.
	GroupCacheTTL time.Duration

	// Export
	ExportType               ExportType
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

type BackendType string

// ExportType selects the report exporter.
type ExportType string

const (
	GoogleExport ExportType = "google"
	MemoryExport ExportType = "memory"
)

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
