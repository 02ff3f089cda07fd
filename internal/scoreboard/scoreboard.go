// Package scoreboard tracks the set of games currently in progress and
// produces ranked summaries of them on demand. A Scoreboard is safe for
// concurrent use; all operations are synchronous and guarded by a single
// mutex scoped to the whole board.
package scoreboard

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/stelmah/live-scoreboard/internal/domain/games"
	"github.com/stelmah/live-scoreboard/internal/domain/teams"
	"github.com/stelmah/live-scoreboard/internal/logging"
	"github.com/stelmah/live-scoreboard/internal/metrics"
)

// Operation names used for logging and metrics attribution.
const (
	opStart   = "start_game"
	opFinish  = "finish_game"
	opUpdate  = "update_game"
	opSummary = "summary"
)

// Scoreboard owns the collection of in-progress games. At most one game is
// active per ordered (home, away) pair. The board is the sole owner of its
// games: no live *games.Game ever leaves it, only Summary copies.
type Scoreboard struct {
	mu        sync.Mutex
	active    map[games.Pair]*games.Game
	nextOrder uint64

	rank    Ranking
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Option configures a Scoreboard.
type Option func(*Scoreboard)

// WithLogger attaches a structured logger for state-transition logs.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Scoreboard) { b.logger = logger }
}

// WithMetrics attaches a metrics recorder for operation telemetry.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(b *Scoreboard) { b.metrics = rec }
}

// WithRanking overrides the summary ordering. A nil ranking keeps the default.
func WithRanking(rank Ranking) Option {
	return func(b *Scoreboard) {
		if rank != nil {
			b.rank = rank
		}
	}
}

// WithClock overrides the time source used to stamp game starts.
func WithClock(now func() time.Time) Option {
	return func(b *Scoreboard) {
		if now != nil {
			b.now = now
		}
	}
}

// New constructs an empty Scoreboard. Each caller holds its own instance;
// there is no package-level board.
func New(opts ...Option) *Scoreboard {
	b := &Scoreboard{
		active: make(map[games.Pair]*games.Game),
		rank:   ByTotalScore,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// StartGame begins tracking a game between home and away with a (0, 0)
// score. It fails with ErrGameAlreadyStarted if the exact (home, away) pair
// is already in progress; the duplicate check and the insert are one critical
// section, so of any number of concurrent starts for a pair exactly one wins.
func (b *Scoreboard) StartGame(home, away teams.Team) error {
	return b.observe(opStart, func() error {
		if err := validateTeams(home, away); err != nil {
			return err
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		pair := games.PairOf(home, away)
		if _, exists := b.active[pair]; exists {
			return alreadyStartedError(home, away)
		}

		b.nextOrder++
		b.active[pair] = games.New(home, away, b.nextOrder, b.now())

		b.metrics.RecordActiveGames(1)
		logging.Info(b.logger, "game started",
			slog.String("home", home.Name), slog.String("away", away.Name))
		return nil
	})
}

// FinishGame removes the game for the exact (home, away) pair. The game is
// discarded; no history is kept. Fails with ErrGameNotFound if absent.
func (b *Scoreboard) FinishGame(home, away teams.Team) error {
	return b.observe(opFinish, func() error {
		if err := validateTeams(home, away); err != nil {
			return err
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		pair := games.PairOf(home, away)
		game, exists := b.active[pair]
		if !exists {
			return notFoundError(home, away)
		}
		delete(b.active, pair)

		b.metrics.RecordActiveGames(-1)
		logging.Info(b.logger, "game finished",
			slog.String("home", home.Name), slog.String("away", away.Name),
			slog.Int("home_score", game.Score().Home), slog.Int("away_score", game.Score().Away))
		return nil
	})
}

// UpdateGame sets the absolute score of the game for the exact (home, away)
// pair. Scores must be non-negative; lower-than-current values are accepted
// since corrections happen. Lookup and mutation share one critical section,
// so a concurrent FinishGame can never strand an update against a removed
// game.
func (b *Scoreboard) UpdateGame(home, away teams.Team, homeScore, awayScore int) error {
	return b.observe(opUpdate, func() error {
		if err := validateTeams(home, away); err != nil {
			return err
		}
		if homeScore < 0 {
			return invalidScoreError("home", homeScore)
		}
		if awayScore < 0 {
			return invalidScoreError("away", awayScore)
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		game, exists := b.active[games.PairOf(home, away)]
		if !exists {
			return notFoundError(home, away)
		}
		game.SetScore(homeScore, awayScore)

		logging.Info(b.logger, "score updated",
			slog.String("home", home.Name), slog.String("away", away.Name),
			slog.Int("home_score", homeScore), slog.Int("away_score", awayScore))
		return nil
	})
}

// Summary returns a ranked snapshot of all in-progress games: one immutable
// entry per game, ordered by the board's ranking. The projection happens
// under the lock so no entry ever shows a torn score; sorting happens on the
// copies afterwards.
func (b *Scoreboard) Summary() []games.Summary {
	var result []games.Summary
	_ = b.observe(opSummary, func() error {
		b.mu.Lock()
		result = make([]games.Summary, 0, len(b.active))
		for _, game := range b.active {
			result = append(result, games.NewSummary(game))
		}
		b.mu.Unlock()

		sort.SliceStable(result, func(i, j int) bool {
			return b.rank(result[i], result[j])
		})
		return nil
	})
	return result
}

// ActiveGames returns the number of games currently in progress.
func (b *Scoreboard) ActiveGames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.active)
}

// observe wraps an operation with duration and outcome telemetry.
func (b *Scoreboard) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	b.metrics.RecordOperation(op, time.Since(start), err)
	return err
}

func validateTeams(home, away teams.Team) error {
	if !home.Valid() {
		return invalidTeamError("home", home)
	}
	if !away.Valid() {
		return invalidTeamError("away", away)
	}
	return nil
}
