package backend

import (
	"context"
	"fmt"

	"creditreport/internal/adapters"
	"creditreport/internal/host"
	"creditreport/internal/host/memory"
	"creditreport/internal/log"
	"creditreport/internal/sheets"
	gsheet "creditreport/internal/sheets/google"
	sheetsmem "creditreport/internal/sheets/memory"
	"creditreport/internal/storage"
)

type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.GroupCacheTTL > 0 {
		result.Groups = adapters.NewCachedGroups(result.Server, config.GroupCacheTTL)
		result.Server = result.Groups
		f.logger.InfoContext(ctx, "Group cache enabled", "ttl", config.GroupCacheTTL)
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Server:  adapters.NewSQLiteHost(repo),
		Ready:   repo.Ping,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store, err := memory.NewFromFile(config.FixturesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	f.logger.Info("Initialized memory backend", "fixtures", config.FixturesPath)

	return &BackendResult{Server: store}, nil
}

// CreateExporter builds the configured exporter: the in-process store, or
// Google Sheets when a spreadsheet is set.
func (f *DefaultFactory) CreateExporter(ctx context.Context, config Config) (sheets.TableExporter, error) {
	if !config.ExportEnabled() {
		f.logger.InfoContext(ctx, "Report export disabled")
		return nil, nil
	}
	if config.ExportType == MemoryExport {
		f.logger.InfoContext(ctx, "Report export kept in memory")
		return sheetsmem.New(), nil
	}

	client, err := gsheet.NewFromConfig(ctx, gsheet.Config{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		SheetName:          config.GoogleSheetName,
		ServiceAccountFile: config.GoogleServiceAccountFile,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets exporter: %w", err)
	}
	return client, nil
}

var _ host.Server = (*adapters.CachedGroups)(nil)
