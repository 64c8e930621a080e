package backend

import (
	"fmt"

	"creditreport/internal/config"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:          backendType,
		FixturesPath:  appConfig.FixturesPath,
		SQLiteDBPath:  appConfig.SQLiteDBPath,
		GroupCacheTTL: appConfig.GroupCacheTTL,

		ExportType:               ExportType(appConfig.ExportBackend),
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
	}, nil
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemoryBackend:
		// A missing fixtures file yields an empty host.
	}

	switch c.ExportType {
	case "", GoogleExport, MemoryExport:
	default:
		return fmt.Errorf("invalid export type: %s", c.ExportType)
	}

	if c.GroupCacheTTL < 0 {
		return fmt.Errorf("group cache TTL must not be negative")
	}
	if c.ExportType != MemoryExport && c.ExportEnabled() && c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
		return fmt.Errorf("either GoogleServiceAccountFile or GoogleServiceAccountJSON must be provided for export")
	}
	return nil
}

// ExportEnabled reports whether CreateExporter builds an exporter. An empty
// ExportType means Google Sheets.
func (c Config) ExportEnabled() bool {
	return c.ExportType == MemoryExport || c.GoogleSpreadsheetID != ""
}

func GetBackendTypes() []BackendType {
	return []BackendType{SQLiteBackend, MemoryBackend}
}

func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
