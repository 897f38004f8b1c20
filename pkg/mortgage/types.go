// Package mortgage validates raw mortgage form input and computes the monthly
// and total repayment for it.
//
// The package is pure: nothing here logs, blocks or keeps state, so every
// function is safe for concurrent use.
package mortgage

import (
	"sort"
	"strings"
)

// RepaymentType selects the payment formula. The zero value is unset.
type RepaymentType string

const (
	// Repayment amortizes principal and interest over the term.
	Repayment RepaymentType = "repayment"
	// InterestOnly pays only the monthly interest on the full principal.
	InterestOnly RepaymentType = "interest-only"
)

// ParseRepaymentType maps user input onto a RepaymentType. Unknown values
// yield the unset type.
func ParseRepaymentType(value string) RepaymentType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(Repayment):
		return Repayment
	case string(InterestOnly), "interestonly", "interest_only":
		return InterestOnly
	default:
		return ""
	}
}

// Valid reports whether t names one of the payment formulas.
func (t RepaymentType) Valid() bool {
	return ParseRepaymentType(string(t)) != ""
}

// Input holds one form submission exactly as the user typed it.
type Input struct {
	Amount       string        `json:"amount" yaml:"amount" mapstructure:"amount"`
	Term         string        `json:"term" yaml:"term" mapstructure:"term"`
	InterestRate string        `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	Type         RepaymentType `json:"type" yaml:"type" mapstructure:"type"`
}

// Result holds the payments for a valid Input, rounded to whole pence.
type Result struct {
	MonthlyPayment float64 `json:"monthlyPayment" yaml:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment" yaml:"totalPayment"`
}

// Field names an Input field in validation output.
type Field string

const (
	FieldAmount       Field = "amount"
	FieldTerm         Field = "term"
	FieldInterestRate Field = "interestRate"
	FieldType         Field = "type"
)

// Fields lists every Input field in form order.
var Fields = []Field{FieldAmount, FieldTerm, FieldInterestRate, FieldType}

// ErrorKind classifies why a field failed validation.
type ErrorKind int

const (
	Required ErrorKind = iota + 1
	InvalidAmount
	InvalidTerm
	InvalidRate
)

var errorMessages = map[ErrorKind]string{
	Required:      "This field is required",
	InvalidAmount: "Please enter a valid mortgage amount greater than zero",
	InvalidTerm:   "Please enter a valid mortgage term greater than zero",
	InvalidRate:   "Please enter a valid interest rate greater than zero",
}

// Message returns the text shown next to the offending field.
func (k ErrorKind) Message() string {
	if msg, ok := errorMessages[k]; ok {
		return msg
	}
	return "invalid value"
}

func (k ErrorKind) String() string {
	switch k {
	case Required:
		return "Required"
	case InvalidAmount:
		return "InvalidAmount"
	case InvalidTerm:
		return "InvalidTerm"
	case InvalidRate:
		return "InvalidRate"
	default:
		return "Unknown"
	}
}

// ValidationErrors maps each failing field to its error. A field that is
// absent passed validation.
type ValidationErrors map[Field]ErrorKind

// Error lists the failing fields in form order.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, field := range v.sortedFields() {
		parts = append(parts, string(field)+": "+v[field].Message())
	}
	return "invalid mortgage input: " + strings.Join(parts, "; ")
}

// Messages converts the errors into field name to display message pairs.
func (v ValidationErrors) Messages() map[string]string {
	messages := make(map[string]string, len(v))
	for field, kind := range v {
		messages[string(field)] = kind.Message()
	}
	return messages
}

func (v ValidationErrors) sortedFields() []Field {
	order := make(map[Field]int, len(Fields))
	for i, field := range Fields {
		order[field] = i
	}
	fields := make([]Field, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return order[fields[i]] < order[fields[j]]
	})
	return fields
}
