package server

import (
	"bytes"
	"net/http"

	"github.com/iwvelando/mortgage-calculator/internal/history"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

type formView struct {
	Input   mortgage.Input
	Type    string
	Errors  map[string]string
	Error   string
	Result  *resultView
	History []historyView
}

type resultView struct {
	Monthly string
	Total   string
}

type historyView struct {
	Amount       string
	Term         string
	InterestRate string
	Type         string
	Monthly      string
}

// handleForm renders the calculator page. A POST submits the form; anything
// else, including the clear link, renders it empty.
func (h *handler) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleForm"
	sessionID := h.session(w, r)
	view := formView{}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		in := mortgage.Input{
			Amount:       r.PostForm.Get("amount"),
			Term:         r.PostForm.Get("term"),
			InterestRate: r.PostForm.Get("interestRate"),
			Type:         mortgage.ParseRepaymentType(r.PostForm.Get("type")),
		}
		view.Input = in
		view.Input.Amount = echoAmount(in.Amount)
		view.Type = string(in.Type)

		result, errs, err := h.evaluate(r, sessionID, in, op)
		switch {
		case len(errs) > 0:
			view.Errors = errs.Messages()
		case err != nil:
			view.Error = outOfRangeMessage
		default:
			view.Result = &resultView{
				Monthly: format.Currency(result.MonthlyPayment),
				Total:   format.Currency(result.TotalPayment),
			}
		}
	}

	if entries, err := h.store.List(r.Context(), sessionID); err != nil {
		h.logger.Warn("failed to read history",
			zap.String("op", op),
			zap.Error(err),
		)
	} else {
		view.History = historyViews(entries)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("failed to render form",
			zap.String("op", op),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if view.Errors != nil || view.Error != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write form", zap.String("op", op), zap.Error(err))
	}
}

// echoAmount regroups a plain whole-number amount the way the field formats
// it while typing. Anything else is echoed as entered so the field still
// holds the value that was calculated or rejected.
func echoAmount(amount string) string {
	digits := format.StripGrouping(amount)
	if digits == "" {
		return amount
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return amount
		}
	}
	return format.GroupDigits(digits)
}

func historyViews(entries []history.Entry) []historyView {
	views := make([]historyView, 0, len(entries))
	// Most recent first.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		views = append(views, historyView{
			Amount:       e.Input.Amount,
			Term:         e.Input.Term,
			InterestRate: e.Input.InterestRate,
			Type:         string(e.Input.Type),
			Monthly:      format.Currency(e.Result.MonthlyPayment),
		})
	}
	return views
}
