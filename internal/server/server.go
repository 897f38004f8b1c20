// Package server exposes the mortgage calculator as an HTML form and a JSON API.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/history"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

const outOfRangeMessage = "These values produce a repayment too large to calculate"

//go:embed templates/*
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

// Options tunes the handler. Zero values fall back to the defaults.
type Options struct {
	MaxBodySize int64
	SessionTTL  time.Duration
	Version     string
}

type handler struct {
	logger      *zap.Logger
	store       history.Store
	maxBodySize int64
	sessionTTL  time.Duration
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the form and the calculation API.
func NewHandler(logger *zap.Logger, store history.Store, opts Options) http.Handler {
	return newHandler(logger, store, opts).routes()
}

func newHandler(logger *zap.Logger, store history.Store, opts Options) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = constants.DefaultSessionTTL
	}
	if store == nil {
		store = history.NewMemoryStore(constants.DefaultHistoryLimit, opts.SessionTTL)
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	return &handler{
		logger:      logger,
		store:       store,
		maxBodySize: opts.MaxBodySize,
		sessionTTL:  opts.SessionTTL,
		version:     trimmedVersion,
		now:         time.Now,
	}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()

	// Server-rendered form
	mux.HandleFunc("/", h.handleForm)

	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/calculate", h.handleCalculate)
	mux.HandleFunc("/api/history", h.handleHistory)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// inputPayload accepts the numeric fields as JSON strings or numbers.
type inputPayload struct {
	Amount       flexString `json:"amount"`
	Term         flexString `json:"term"`
	InterestRate flexString `json:"interestRate"`
	Type         string     `json:"type"`
}

func (p inputPayload) input() mortgage.Input {
	return mortgage.Input{
		Amount:       string(p.Amount),
		Term:         string(p.Term),
		InterestRate: string(p.InterestRate),
		Type:         mortgage.ParseRepaymentType(p.Type),
	}
}

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", trimmed)
	}
	*f = flexString(n.String())
	return nil
}

type validateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

type calculateResponse struct {
	MonthlyPayment        float64 `json:"monthlyPayment"`
	TotalPayment          float64 `json:"totalPayment"`
	MonthlyPaymentDisplay string  `json:"monthlyPaymentDisplay"`
	TotalPaymentDisplay   string  `json:"totalPaymentDisplay"`
}

type errorsResponse struct {
	Errors map[string]string `json:"errors"`
}

type historyResponse struct {
	Entries []history.Entry `json:"entries"`
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	in, ok := h.decodeInput(w, r, "server.handleValidate")
	if !ok {
		return
	}

	errs := mortgage.Validate(in)
	h.writeJSON(w, http.StatusOK, validateResponse{
		Valid:  len(errs) == 0,
		Errors: errs.Messages(),
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleCalculate"
	sessionID := h.session(w, r)

	in, ok := h.decodeInput(w, r, op)
	if !ok {
		return
	}

	result, errs, err := h.evaluate(r, sessionID, in, op)
	if len(errs) > 0 {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: errs.Messages()})
		return
	}
	if err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": outOfRangeMessage})
		return
	}

	h.writeJSON(w, http.StatusOK, calculateResponse{
		MonthlyPayment:        result.MonthlyPayment,
		TotalPayment:          result.TotalPayment,
		MonthlyPaymentDisplay: format.Currency(result.MonthlyPayment),
		TotalPaymentDisplay:   format.Currency(result.TotalPayment),
	})
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleHistory"

	switch r.Method {
	case http.MethodGet:
		entries, err := h.store.List(r.Context(), h.session(w, r))
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read history: %v", err), op)
			return
		}
		h.writeJSON(w, http.StatusOK, historyResponse{Entries: entries})
	case http.MethodDelete:
		if err := h.store.Clear(r.Context(), h.session(w, r)); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to clear history: %v", err), op)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// evaluate guards Calculate with Validate and records successful calculations
// in the session history. It returns the field errors when in is invalid and
// mortgage.ErrOutOfRange when the result cannot be represented.
func (h *handler) evaluate(r *http.Request, sessionID string, in mortgage.Input, op string) (mortgage.Result, mortgage.ValidationErrors, error) {
	result, err := mortgage.Evaluate(in)
	var errs mortgage.ValidationErrors
	switch {
	case errors.As(err, &errs):
		h.logger.Debug("input failed validation",
			zap.String("op", op),
			zap.Error(err),
		)
		return mortgage.Result{}, errs, nil
	case err != nil:
		h.logger.Info("calculation out of range",
			zap.String("op", op),
			zap.String("amount", in.Amount),
			zap.String("term", in.Term),
			zap.String("interestRate", in.InterestRate),
		)
		return mortgage.Result{}, nil, err
	}

	entry := history.Entry{Input: in, Result: result, CalculatedAt: h.now().UTC()}
	if err := h.store.Append(r.Context(), sessionID, entry); err != nil {
		// History is a convenience; the calculation still stands.
		h.logger.Warn("failed to record calculation",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	h.logger.Info("mortgage calculated",
		zap.String("op", op),
		zap.String("type", string(in.Type)),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
		zap.Float64("totalPayment", result.TotalPayment),
	)
	return result, nil, nil
}

func (h *handler) decodeInput(w http.ResponseWriter, r *http.Request, op string) (mortgage.Input, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload inputPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return mortgage.Input{}, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode input: %v", err), op)
		return mortgage.Input{}, false
	}
	return payload.input(), true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing status, so an encoding failure
// still reaches the client as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write JSON response", zap.Error(err))
	}
}
