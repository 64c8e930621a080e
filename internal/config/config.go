package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port               string
	RateLimitPerMinute int

	// Host data backend
	DataBackend   string
	FixturesPath  string
	SQLiteDBPath  string
	GroupCacheTTL time.Duration

	// AMQP
	AMQPURL            string
	AMQPExchange       string
	ReportRequestQueue string
	ReportResultQueue  string

	// Report export: "google" writes to Google Sheets once a spreadsheet is
	// set, "memory" keeps exports in process.
	ExportBackend            string
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Observability
	LogLevel       string
	LogFormat      string
	TracingEnabled bool
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8081"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		DataBackend:   getEnv("DATA_BACKEND", "memory"),
		FixturesPath:  getEnv("FIXTURES_PATH", "./data/fixtures.yaml"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/creditreport.db"),
		GroupCacheTTL: getEnvDuration("GROUP_CACHE_TTL", time.Minute),

		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "creditreport"),
		ReportRequestQueue: getEnv("REPORT_REQUEST_QUEUE", "credit_facility_requests"),
		ReportResultQueue:  getEnv("REPORT_RESULT_QUEUE", "credit_facility_results"),

		ExportBackend:            getEnv("EXPORT_BACKEND", "google"),
		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Credit Facility"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
	}
}

// ExportEnabled reports whether report export is configured.
func (c *Config) ExportEnabled() bool {
	return c.ExportBackend == "memory" || c.googleExport()
}

func (c *Config) googleExport() bool {
	return c.ExportBackend != "memory" && c.GoogleSpreadsheetID != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 per minute", c.RateLimitPerMinute))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.GroupCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid group cache TTL %v: must not be negative", c.GroupCacheTTL))
	} else if c.GroupCacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid group cache TTL %v: must be at most 24 hours", c.GroupCacheTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.ReportRequestQueue == "" {
			errors = append(errors, "report request queue cannot be empty when AMQP URL is provided")
		}
		if c.ReportResultQueue == "" {
			errors = append(errors, "report result queue cannot be empty when AMQP URL is provided")
		}
		if c.ReportRequestQueue != "" && c.ReportRequestQueue == c.ReportResultQueue {
			errors = append(errors, "report request and result queues must differ")
		}
	}

	switch c.ExportBackend {
	case "", "google", "memory":
	default:
		errors = append(errors, fmt.Sprintf("invalid export backend '%s': must be 'google' or 'memory'", c.ExportBackend))
	}

	if c.googleExport() {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when export is enabled")
		}
		hasFile := c.GoogleServiceAccountFile != ""
		hasJSON := c.GoogleServiceAccountJSON != ""
		if !hasFile && !hasJSON {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for export")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
