// Package constants provides shared constants for the mortgage-calculator application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// CurrencySymbol is the only currency the calculator displays.
	CurrencySymbol = "£"

	// GroupingSeparator separates thousands in displayed amounts.
	GroupingSeparator = ","
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides for scenario files (e.g. MORTGAGE_OUTPUT_FORMAT).
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultSessionTTL is how long an idle session keeps its calculation history
	DefaultSessionTTL = 30 * time.Minute

	// DefaultHistoryLimit is the number of calculations retained per session
	DefaultHistoryLimit = 50

	// SessionCookieName names the cookie carrying the session identifier
	SessionCookieName = "mortgage_session"
)
