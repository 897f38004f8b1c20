// Package validation checks presentation options supplied on the command line
// or in configuration files.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// NormalizeOutputFormat lower-cases and trims format, defaulting an empty value
// to the pretty format, and rejects anything unsupported.
func NormalizeOutputFormat(format string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		return constants.OutputFormatPretty, nil
	}
	if normalized != constants.OutputFormatPretty && normalized != constants.OutputFormatCSV {
		return "", fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return normalized, nil
}

// FirstNonEmpty returns the first value that is not blank, so a CLI flag can
// take precedence over a configured value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
