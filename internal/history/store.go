// Package history keeps the calculations made during a browser session. Entries
// expire with the session; nothing here is meant to outlive it.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

// ErrEmptySession is returned when a call is made without a session identifier.
var ErrEmptySession = errors.New("history: empty session id")

// Entry is one successful calculation.
type Entry struct {
	Input        mortgage.Input  `json:"input"`
	Result       mortgage.Result `json:"result"`
	CalculatedAt time.Time       `json:"calculatedAt"`
}

// Store records calculations per session.
type Store interface {
	Append(ctx context.Context, sessionID string, entry Entry) error
	List(ctx context.Context, sessionID string) ([]Entry, error)
	Clear(ctx context.Context, sessionID string) error
}

func checkSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrEmptySession
	}
	return nil
}
