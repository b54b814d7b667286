// Package report announces the result of a battle.
package report

//go:generate go tool mockgen -destination=./mocks/reporter_mock.go -package=mocks . Reporter

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/squadwar/internal/game/combat"
)

// Reporter announces a battle outcome.
type Reporter interface {
	Report(outcome combat.Outcome) error
}

// Message returns the one-line announcement for outcome.
func Message(outcome combat.Outcome) string {
	switch outcome {
	case combat.FirstWins:
		return "The first squad wins."
	case combat.SecondWins:
		return "The second squad wins."
	case combat.MutualDestruction:
		return "Both squads have fallen."
	default:
		return "The battle was called off."
	}
}

// Console writes the announcement as a single line.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
//
// Precondition: w must be non-nil.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Report writes Message(outcome) followed by a newline.
func (c *Console) Report(outcome combat.Outcome) error {
	if _, err := fmt.Fprintln(c.w, Message(outcome)); err != nil {
		return fmt.Errorf("writing battle report: %w", err)
	}
	return nil
}

// Logging records the outcome as a structured log entry.
type Logging struct {
	logger *zap.Logger
}

// NewLogging creates a Logging reporter. A nil logger discards reports.
func NewLogging(logger *zap.Logger) *Logging {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logging{logger: logger}
}

// Report logs terminal outcomes at info and an unresolved battle at warn.
func (l *Logging) Report(outcome combat.Outcome) error {
	level := zap.InfoLevel
	if !outcome.Terminal() {
		level = zap.WarnLevel
	}
	l.logger.Log(level, "battle reported",
		zap.Stringer("outcome", outcome),
		zap.String("message", Message(outcome)),
	)
	return nil
}

// Multi fans a report out to every reporter in order.
type Multi []Reporter

// Report calls every reporter even if an earlier one fails.
//
// Postcondition: Returns nil, or the joined errors of every failing reporter.
func (m Multi) Report(outcome combat.Outcome) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(outcome); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
