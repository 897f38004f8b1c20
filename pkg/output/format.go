// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ScenarioResult is the outcome of evaluating one named input. Errors is
// non-empty when the input failed validation and Err is set when valid input
// could not be calculated; in either case Result is unset.
type ScenarioResult struct {
	Name   string
	Input  mortgage.Input
	Result mortgage.Result
	Errors mortgage.ValidationErrors
	Err    error
}

// Failed reports whether the scenario produced no result.
func (s ScenarioResult) Failed() bool {
	return len(s.Errors) > 0 || s.Err != nil
}

// PrettyFormat writes a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, results []ScenarioResult) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if _, err := fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name); err != nil {
			return err
		}
		if result.Err != nil {
			if _, err := fmt.Fprintf(w, "%-24s %v\n", "error:", result.Err); err != nil {
				return err
			}
		} else if result.Failed() {
			for _, field := range mortgage.Fields {
				if kind, ok := result.Errors[field]; ok {
					if _, err := fmt.Fprintf(w, "%-24s %s\n", string(field)+":", kind.Message()); err != nil {
						return err
					}
				}
			}
		} else {
			lines := []struct {
				label  string
				amount float64
			}{
				{"Your monthly repayments", result.Result.MonthlyPayment},
				{"Total you'll repay", result.Result.TotalPayment},
			}
			for _, line := range lines {
				if _, err := p.Fprintf(w, "%-24s %s%.2f\n", line.label+":", constants.CurrencySymbol, line.amount); err != nil {
					return err
				}
			}
		}
		if len(results) > 1 && i < len(results)-1 {
			if _, err := fmt.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// CsvFormat writes one comma-separated row per scenario.
func CsvFormat(w io.Writer, results []ScenarioResult) error {
	writer := csv.NewWriter(w)
	header := []string{"scenario", "amount", "term", "interestRate", "type", "monthlyPayment", "totalPayment", "errors"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		row := []string{
			result.Name,
			result.Input.Amount,
			result.Input.Term,
			result.Input.InterestRate,
			string(result.Input.Type),
			"",
			"",
			"",
		}
		if result.Err != nil {
			row[7] = result.Err.Error()
		} else if result.Failed() {
			row[7] = joinErrors(result.Errors)
		} else {
			row[5] = fmt.Sprintf("%.2f", result.Result.MonthlyPayment)
			row[6] = fmt.Sprintf("%.2f", result.Result.TotalPayment)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func joinErrors(errs mortgage.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, field := range mortgage.Fields {
		if kind, ok := errs[field]; ok {
			parts = append(parts, string(field)+"="+kind.String())
		}
	}
	return strings.Join(parts, ";")
}
