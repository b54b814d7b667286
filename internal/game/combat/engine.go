package combat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/squadwar/internal/game/dice"
)

// RoundReport summarises one resolved round.
type RoundReport struct {
	// Number is the 1-based round index.
	Number int
	// Events are the first roster's effects followed by the second roster's.
	Events       []Event
	FirstLosses  int
	SecondLosses int
	Outcome      Outcome
}

// Judge returns the outcome implied by the two rosters' current state.
//
// Postcondition: MutualDestruction when neither is alive, the surviving side
// when exactly one is alive, Ongoing otherwise.
func Judge(first, second *Roster) Outcome {
	a, b := first.IsAlive(), second.IsAlive()
	switch {
	case !a && !b:
		return MutualDestruction
	case !b:
		return FirstWins
	case !a:
		return SecondWins
	default:
		return Ongoing
	}
}

// Battle drives the round loop between two rosters.
//
// The battle has no round limit. It terminates as long as damage keeps
// outpacing healing; a pair of rosters that can only heal would loop forever,
// which is why RunContext exists.
type Battle struct {
	first  *Roster
	second *Roster
	src    dice.Source
	logger *zap.Logger
	rounds int
}

// NewBattle creates a Battle between first and second.
//
// Precondition: first, second and src must be non-nil. A nil logger disables logging.
func NewBattle(first, second *Roster, src dice.Source, logger *zap.Logger) *Battle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Battle{first: first, second: second, src: src, logger: logger}
}

// First returns the roster that attacks first each round.
func (b *Battle) First() *Roster { return b.first }

// Second returns the roster that attacks second each round.
func (b *Battle) Second() *Roster { return b.second }

// Rounds returns the number of rounds resolved so far.
func (b *Battle) Rounds() int { return b.rounds }

// Outcome returns the current battle state.
func (b *Battle) Outcome() Outcome { return Judge(b.first, b.second) }

// Round resolves one round: the first roster attacks the second, the second
// attacks the first against the same live membership, then both remove their
// casualties.
//
// Postcondition: Rounds() is incremented by one.
func (b *Battle) Round() RoundReport {
	b.rounds++
	events := b.first.Attack(b.second, b.src)
	events = append(events, b.second.Attack(b.first, b.src)...)

	rep := RoundReport{
		Number:       b.rounds,
		Events:       events,
		FirstLosses:  b.first.RemoveCasualties(),
		SecondLosses: b.second.RemoveCasualties(),
	}
	rep.Outcome = b.Outcome()

	b.logger.Debug("round resolved",
		zap.Int("round", rep.Number),
		zap.Int("events", len(rep.Events)),
		zap.Int("first_losses", rep.FirstLosses),
		zap.Int("second_losses", rep.SecondLosses),
		zap.Int("first_remaining", b.first.Len()),
		zap.Int("second_remaining", b.second.Len()),
	)
	return rep
}

// Run resolves rounds until the battle is over and returns the final outcome.
// Rosters with no living members end the battle before any attack; members
// that are already dead when the battle starts are removed without acting.
//
// Run has no round limit; see RunContext.
//
// Postcondition: Returns a terminal Outcome.
func (b *Battle) Run() Outcome {
	outcome, _ := b.RunContext(context.Background())
	return outcome
}

// RunContext is Run with cancellation checked between rounds.
//
// Postcondition: Returns a terminal Outcome and nil, or Ongoing and a wrapped
// ctx.Err() when ctx ends first.
func (b *Battle) RunContext(ctx context.Context) (Outcome, error) {
	b.logger.Info("battle started",
		zap.String("first", b.first.Name),
		zap.Int("first_size", b.first.Len()),
		zap.String("second", b.second.Name),
		zap.Int("second_size", b.second.Len()),
	)
	outcome := b.Outcome()
	if !outcome.Terminal() {
		b.first.RemoveCasualties()
		b.second.RemoveCasualties()
	}
	for !outcome.Terminal() {
		if err := ctx.Err(); err != nil {
			b.logger.Warn("battle called off",
				zap.Int("rounds", b.rounds),
				zap.Int("first_remaining", b.first.Len()),
				zap.Int("second_remaining", b.second.Len()),
				zap.Error(err),
			)
			return Ongoing, fmt.Errorf("battle called off after %d rounds: %w", b.rounds, err)
		}
		outcome = b.Round().Outcome
	}
	b.logger.Info("battle concluded",
		zap.Stringer("outcome", outcome),
		zap.Int("rounds", b.rounds),
	)
	return outcome, nil
}
