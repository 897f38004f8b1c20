// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/output"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindScenario(results []output.ScenarioResult, name string) *output.ScenarioResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// RequireScenario is FindScenario that stops the test when name is missing.
func RequireScenario(tb testing.TB, results []output.ScenarioResult, name string) *output.ScenarioResult {
	tb.Helper()
	found := FindScenario(results, name)
	if found == nil {
		names := make([]string, 0, len(results))
		for _, r := range results {
			names = append(names, r.Name)
		}
		tb.Fatalf("scenario %q not found in %q", name, names)
	}
	return found
}
