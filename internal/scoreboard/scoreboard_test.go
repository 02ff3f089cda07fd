package scoreboard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stelmah/live-scoreboard/internal/domain/games"
	"github.com/stelmah/live-scoreboard/internal/domain/teams"
	"github.com/stelmah/live-scoreboard/internal/metrics"
	"github.com/stelmah/live-scoreboard/internal/testutil"
)

var (
	mexico    = teams.Team{Name: "Mexico"}
	canada    = teams.Team{Name: "Canada"}
	spain     = teams.Team{Name: "Spain"}
	brazil    = teams.Team{Name: "Brazil"}
	germany   = teams.Team{Name: "Germany"}
	france    = teams.Team{Name: "France"}
	uruguay   = teams.Team{Name: "Uruguay"}
	italy     = teams.Team{Name: "Italy"}
	argentina = teams.Team{Name: "Argentina"}
	australia = teams.Team{Name: "Australia"}
)

func TestStartGameAddsZeroScoreEntry(t *testing.T) {
	board := New()

	if err := board.StartGame(mexico, canada); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := board.Summary()
	if len(summary) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(summary))
	}
	entry := summary[0]
	if entry.HomeTeam.Name != "Mexico" || entry.AwayTeam.Name != "Canada" {
		t.Fatalf("unexpected pair %s vs %s", entry.HomeTeam.Name, entry.AwayTeam.Name)
	}
	if entry.Score != (games.Score{}) {
		t.Fatalf("expected 0-0, got %+v", entry.Score)
	}
}

func TestStartGameRejectsInvalidTeams(t *testing.T) {
	board := New()

	if err := board.StartGame(teams.Team{}, canada); !errors.Is(err, ErrInvalidTeam) {
		t.Fatalf("expected ErrInvalidTeam for home, got %v", err)
	}
	if err := board.StartGame(mexico, teams.Team{}); !errors.Is(err, ErrInvalidTeam) {
		t.Fatalf("expected ErrInvalidTeam for away, got %v", err)
	}
	if got := board.ActiveGames(); got != 0 {
		t.Fatalf("expected no games after rejected starts, got %d", got)
	}
}

func TestStartGameRejectsDuplicatePair(t *testing.T) {
	board := New()

	if err := board.StartGame(mexico, canada); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := board.StartGame(mexico, canada); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Fatalf("expected ErrGameAlreadyStarted, got %v", err)
	}
	if got := board.ActiveGames(); got != 1 {
		t.Fatalf("expected exactly 1 game, got %d", got)
	}
}

func TestReversedPairIsIndependent(t *testing.T) {
	board := New()

	if err := board.StartGame(mexico, canada); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := board.StartGame(canada, mexico); err != nil {
		t.Fatalf("expected reversed pair to start, got %v", err)
	}
	if got := board.ActiveGames(); got != 2 {
		t.Fatalf("expected 2 games, got %d", got)
	}
}

func TestUpdateGameSetsScore(t *testing.T) {
	board := New()
	mustStart(t, board, mexico, canada)

	if err := board.UpdateGame(mexico, canada, 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := board.Summary()[0]
	if entry.Score.Home != 0 || entry.Score.Away != 5 {
		t.Fatalf("expected 0-5, got %+v", entry.Score)
	}
}

func TestUpdateGameMissingPair(t *testing.T) {
	board := New()
	mustStart(t, board, mexico, canada)

	// Same teams swapped is a different pair and is not matched.
	if err := board.UpdateGame(canada, mexico, 1, 0); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}

	entry := board.Summary()[0]
	if entry.Score != (games.Score{}) {
		t.Fatalf("expected registry unchanged, got %+v", entry.Score)
	}
}

func TestUpdateGameRejectsNegativeScores(t *testing.T) {
	board := New()
	mustStart(t, board, mexico, canada)
	if err := board.UpdateGame(mexico, canada, 2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := board.UpdateGame(mexico, canada, -1, 3); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore for home, got %v", err)
	}
	if err := board.UpdateGame(mexico, canada, 3, -1); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore for away, got %v", err)
	}

	entry := board.Summary()[0]
	if entry.Score.Home != 2 || entry.Score.Away != 1 {
		t.Fatalf("expected score to remain 2-1, got %+v", entry.Score)
	}
}

func TestFinishGameRemovesExactlyTheMatch(t *testing.T) {
	board := New()
	mustStart(t, board, mexico, canada)
	mustStart(t, board, spain, brazil)

	if err := board.FinishGame(mexico, canada); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := board.Summary()
	if len(summary) != 1 {
		t.Fatalf("expected 1 remaining game, got %d", len(summary))
	}
	if summary[0].HomeTeam.Name != "Spain" {
		t.Fatalf("expected Spain game to remain, got %s", summary[0].HomeTeam.Name)
	}

	if err := board.FinishGame(mexico, canada); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound on second finish, got %v", err)
	}
}

func TestFinishGameValidatesTeams(t *testing.T) {
	board := New()
	if err := board.FinishGame(teams.Team{}, canada); !errors.Is(err, ErrInvalidTeam) {
		t.Fatalf("expected ErrInvalidTeam, got %v", err)
	}
}

func TestSummaryRanksByTotalThenMostRecent(t *testing.T) {
	board := New(WithClock(testutil.NowAt(testutil.MustParseRFC3339("2024-06-01T19:00:00Z"))))

	fixtures := []struct {
		home, away           teams.Team
		homeScore, awayScore int
	}{
		{mexico, canada, 0, 5},
		{spain, brazil, 10, 2},
		{germany, france, 2, 2},
		{uruguay, italy, 6, 6},
		{argentina, australia, 3, 1},
	}
	for _, f := range fixtures {
		mustStart(t, board, f.home, f.away)
		if err := board.UpdateGame(f.home, f.away, f.homeScore, f.awayScore); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []string{"Uruguay", "Spain", "Mexico", "Argentina", "Germany"}
	summary := board.Summary()
	if len(summary) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(summary))
	}
	for i, home := range want {
		if summary[i].HomeTeam.Name != home {
			t.Fatalf("rank %d: expected %s, got %s", i+1, home, summary[i].HomeTeam.Name)
		}
	}
}

func TestSummaryOrdersByDescendingTotal(t *testing.T) {
	board := New()
	mustStart(t, board, mexico, canada)
	mustStart(t, board, spain, brazil)
	if err := board.UpdateGame(mexico, canada, 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := board.UpdateGame(spain, brazil, 10, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := board.Summary()
	if summary[0].HomeTeam.Name != "Spain" || summary[1].HomeTeam.Name != "Mexico" {
		t.Fatalf("expected Spain (12) ahead of Mexico (5), got %s then %s",
			summary[0].HomeTeam.Name, summary[1].HomeTeam.Name)
	}
}

func TestSummaryIsIdempotentWithoutMutation(t *testing.T) {
	board := New()
	mustStart(t, board, mexico, canada)
	mustStart(t, board, spain, brazil)
	if err := board.UpdateGame(spain, brazil, 3, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := board.Summary()
	second := board.Summary()
	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSummaryEntriesSurviveLaterUpdates(t *testing.T) {
	board := New()
	mustStart(t, board, mexico, canada)
	if err := board.UpdateGame(mexico, canada, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := board.Summary()
	if err := board.UpdateGame(mexico, canada, 4, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if before[0].Score.Home != 1 || before[0].Score.Away != 1 {
		t.Fatalf("expected earlier summary to keep 1-1, got %+v", before[0].Score)
	}
}

func TestCustomRanking(t *testing.T) {
	board := New(WithRanking(func(a, b games.Summary) bool {
		return a.HomeTeam.Name < b.HomeTeam.Name
	}))
	mustStart(t, board, spain, brazil)
	mustStart(t, board, mexico, canada)

	summary := board.Summary()
	if summary[0].HomeTeam.Name != "Mexico" {
		t.Fatalf("expected alphabetical ranking, got %s first", summary[0].HomeTeam.Name)
	}
}

func TestConcurrentStartsOfSamePair(t *testing.T) {
	const workers = 32

	board := New()
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- board.StartGame(mexico, canada)
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrGameAlreadyStarted):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("expected exactly 1 successful start, got %d", successes)
	}
	if duplicates != workers-1 {
		t.Fatalf("expected %d duplicate failures, got %d", workers-1, duplicates)
	}
	if got := board.ActiveGames(); got != 1 {
		t.Fatalf("expected 1 active game, got %d", got)
	}
}

func TestConcurrentUpdateAndFinish(t *testing.T) {
	const rounds = 100

	board := New()
	for i := 0; i < rounds; i++ {
		mustStart(t, board, mexico, canada)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			err := board.UpdateGame(mexico, canada, 1, 0)
			if err != nil && !errors.Is(err, ErrGameNotFound) {
				t.Errorf("unexpected update error: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := board.FinishGame(mexico, canada); err != nil {
				t.Errorf("unexpected finish error: %v", err)
			}
		}()
		wg.Wait()

		// A finished game must never be resurrected by a racing update.
		if got := board.ActiveGames(); got != 0 {
			t.Fatalf("round %d: expected empty board, got %d games", i, got)
		}
	}
}

func TestOperationsAreRecorded(t *testing.T) {
	rec := metrics.NewRecorder()
	board := New(WithMetrics(rec))

	mustStart(t, board, mexico, canada)
	if err := board.StartGame(mexico, canada); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := board.UpdateGame(mexico, canada, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	board.Summary()
	if err := board.FinishGame(mexico, canada); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.OperationCalls("start_game"); got != 2 {
		t.Fatalf("expected 2 start calls, got %d", got)
	}
	if got := rec.OperationErrors("start_game"); got != 1 {
		t.Fatalf("expected 1 start error, got %d", got)
	}
	if got := rec.OperationCalls("summary"); got != 1 {
		t.Fatalf("expected 1 summary call, got %d", got)
	}
	if got := rec.OperationErrors("finish_game"); got != 0 {
		t.Fatalf("expected no finish errors, got %d", got)
	}
}

func TestClockStampsGameStart(t *testing.T) {
	at := testutil.MustParseRFC3339("2024-06-01T19:30:00Z")
	board := New(WithClock(testutil.NowAt(at)))
	mustStart(t, board, mexico, canada)

	entry := board.Summary()[0]
	if !entry.StartedAt.Equal(at) {
		t.Fatalf("expected start time %s, got %s", at, entry.StartedAt)
	}
}

func mustStart(t *testing.T, board *Scoreboard, home, away teams.Team) {
	t.Helper()
	if err := board.StartGame(home, away); err != nil {
		t.Fatalf("start %s vs %s: %v", home.Name, away.Name, err)
	}
}

// Guards against the observe wrapper swallowing latency accounting.
func TestObserveRecordsLatency(t *testing.T) {
	rec := metrics.NewRecorder()
	board := New(WithMetrics(rec))
	mustStart(t, board, mexico, canada)

	if got := rec.LastLatency("start_game"); got < 0 || got > time.Second {
		t.Fatalf("implausible recorded latency %s", got)
	}
}
