package mortgage

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/format"
)

// Validate checks each field of in independently and returns the failures.
// The result is empty, never nil, when every field is acceptable.
func Validate(in Input) ValidationErrors {
	errs := make(ValidationErrors)

	if in.Amount == "" {
		errs[FieldAmount] = Required
	} else if !positive(format.StripGrouping(in.Amount)) {
		errs[FieldAmount] = InvalidAmount
	}

	// Fractional years pass; Installments scales them unrounded.
	if in.Term == "" {
		errs[FieldTerm] = Required
	} else if !positive(in.Term) {
		errs[FieldTerm] = InvalidTerm
	}

	if in.InterestRate == "" {
		errs[FieldInterestRate] = Required
	} else if !positive(in.InterestRate) {
		errs[FieldInterestRate] = InvalidRate
	}

	if !in.Type.Valid() {
		errs[FieldType] = Required
	}

	return errs
}

func positive(value string) bool {
	n, ok := parseNumber(value)
	return ok && n > 0
}

// parseNumber accepts plain decimal literals with an optional sign, fraction
// and exponent. Hex, underscores, Inf and NaN are rejected.
func parseNumber(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	for _, r := range trimmed {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
