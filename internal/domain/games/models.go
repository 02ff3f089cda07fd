package games

import (
	"time"

	"github.com/stelmah/live-scoreboard/internal/domain/teams"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Total returns the combined points of both sides.
func (s Score) Total() int {
	return s.Home + s.Away
}

// Pair is the ordered (home, away) key identifying an in-progress game.
// (A, B) and (B, A) are distinct pairs.
type Pair struct {
	Home string
	Away string
}

// PairOf derives the lookup key for a home/away matchup. Identity is by name.
func PairOf(home, away teams.Team) Pair {
	return Pair{Home: home.Name, Away: away.Name}
}

// Game is one in-progress match. The home and away teams are fixed at
// construction; only the score changes over its lifetime.
type Game struct {
	home       teams.Team
	away       teams.Team
	score      Score
	startOrder uint64
	startedAt  time.Time
}

// New constructs a game between two teams with a zero initial score.
// The start order is assigned by the owning scoreboard and increases
// monotonically with each started game.
func New(home, away teams.Team, order uint64, at time.Time) *Game {
	return &Game{
		home:       home,
		away:       away,
		startOrder: order,
		startedAt:  at,
	}
}

// HomeTeam returns the home side.
func (g *Game) HomeTeam() teams.Team { return g.home }

// AwayTeam returns the away side.
func (g *Game) AwayTeam() teams.Team { return g.away }

// Score returns the current score.
func (g *Game) Score() Score { return g.score }

// StartOrder returns the position of this game in the start sequence.
func (g *Game) StartOrder() uint64 { return g.startOrder }

// StartedAt returns when the game was started.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// Pair returns the ordered (home, away) key for this game.
func (g *Game) Pair() Pair { return PairOf(g.home, g.away) }

// SetScore replaces both sides' points. Callers validate non-negativity;
// scores are absolute values, not increments, so a lower value than the
// current one is accepted.
func (g *Game) SetScore(home, away int) {
	g.score = Score{Home: home, Away: away}
}

// Summary is an immutable point-in-time projection of a game for ranked
// display. It copies everything it needs, so later score updates do not
// change a previously returned summary.
type Summary struct {
	HomeTeam   teams.Team `json:"homeTeam"`
	AwayTeam   teams.Team `json:"awayTeam"`
	Score      Score      `json:"score"`
	StartOrder uint64     `json:"startOrder"`
	StartedAt  time.Time  `json:"startedAt"`
}

// NewSummary projects a live game into a Summary.
func NewSummary(g *Game) Summary {
	return Summary{
		HomeTeam:   g.home,
		AwayTeam:   g.away,
		Score:      g.score,
		StartOrder: g.startOrder,
		StartedAt:  g.startedAt,
	}
}

// Total returns the combined score of the summary.
func (s Summary) Total() int {
	return s.Score.Total()
}
