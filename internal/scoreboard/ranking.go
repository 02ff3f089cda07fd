package scoreboard

import "github.com/stelmah/live-scoreboard/internal/domain/games"

// Ranking orders summary entries for display. It reports whether a should
// rank before b. The ranking lives with the summary operation rather than as
// an ordering trait on the entry type, so callers can supply their own.
type Ranking func(a, b games.Summary) bool

// ByTotalScore is the default ranking: descending combined score, with the
// most recently started game first when totals are equal.
func ByTotalScore(a, b games.Summary) bool {
	if a.Total() != b.Total() {
		return a.Total() > b.Total()
	}
	return a.StartOrder > b.StartOrder
}
