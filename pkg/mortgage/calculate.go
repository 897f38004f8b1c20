package mortgage

import (
	"errors"
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// ErrOutOfRange is returned by Evaluate when valid input produces a payment
// too large to represent.
var ErrOutOfRange = errors.New("mortgage: result is too large to represent")

// Calculate computes the monthly and total payment for in. The caller must
// have checked in with Validate; Calculate does not re-validate and returns a
// meaningless result for invalid input (a zero Result for an unset type).
// Extreme but valid input may overflow to a non-finite Result; Evaluate
// rejects those.
func Calculate(in Input) Result {
	principal, _ := parseNumber(format.StripGrouping(in.Amount))
	annualRate, _ := parseNumber(in.InterestRate)
	years, _ := parseNumber(in.Term)

	r := Rate(annualRate)
	n := Installments(years)

	var monthly float64
	switch ParseRepaymentType(string(in.Type)) {
	case Repayment:
		monthly = AmortizedPayment(principal, r, n)
	case InterestOnly:
		monthly = InterestOnlyPayment(principal, r)
	default:
		return Result{}
	}

	return Result{
		MonthlyPayment: mathutil.Round(monthly),
		TotalPayment:   mathutil.Round(monthly * n),
	}
}

// Evaluate validates in and only then calculates it. Validation failures are
// returned as a ValidationErrors error.
func Evaluate(in Input) (Result, error) {
	if errs := Validate(in); len(errs) > 0 {
		return Result{}, errs
	}
	result := Calculate(in)
	if !result.Finite() {
		return Result{}, ErrOutOfRange
	}
	return result, nil
}

// Finite reports whether both amounts are ordinary numbers.
func (r Result) Finite() bool {
	for _, v := range []float64{r.MonthlyPayment, r.TotalPayment} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Rate converts an annual percentage rate into a monthly fraction.
func Rate(annualPercent float64) float64 {
	return annualPercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// Installments converts a term in years into a number of monthly payments.
func Installments(years float64) float64 {
	return years * constants.MonthsPerYear
}

// AmortizedPayment returns the unrounded level payment that clears principal
// over n installments at monthly rate r. It evaluates P*r/(1-(1+r)^-n), which
// equals P*r*(1+r)^n/((1+r)^n-1) but stays finite when 1+r rounds to 1 or
// (1+r)^n overflows.
func AmortizedPayment(principal, r, n float64) float64 {
	denom := -math.Expm1(-n * math.Log1p(r))
	if denom == 0 {
		// Zero, or too small to register over n installments.
		return principal / n
	}
	return principal * r / denom
}

// InterestOnlyPayment returns one month's interest on the full principal.
func InterestOnlyPayment(principal, r float64) float64 {
	return principal * r
}
