package scoreboard

import (
	"errors"
	"fmt"

	"github.com/stelmah/live-scoreboard/internal/domain/teams"
)

// Sentinel errors returned by scoreboard operations. All are expected,
// recoverable outcomes for the caller; none is fatal to the board.
var (
	// ErrInvalidTeam indicates a missing team or a team without a name.
	ErrInvalidTeam = errors.New("invalid team")

	// ErrInvalidScore indicates a negative score value.
	ErrInvalidScore = errors.New("score cannot be negative")

	// ErrGameAlreadyStarted indicates the exact (home, away) pair is already
	// in progress.
	ErrGameAlreadyStarted = errors.New("game already started")

	// ErrGameNotFound indicates no in-progress game matches the pair.
	ErrGameNotFound = errors.New("game not found")
)

func invalidTeamError(side string, team teams.Team) error {
	if team.Name == "" {
		return fmt.Errorf("%w: %s team has no name", ErrInvalidTeam, side)
	}
	return fmt.Errorf("%w: %s team %q", ErrInvalidTeam, side, team.Name)
}

func invalidScoreError(side string, score int) error {
	return fmt.Errorf("%w: %s score %d", ErrInvalidScore, side, score)
}

func alreadyStartedError(home, away teams.Team) error {
	return fmt.Errorf("%w: %s vs %s", ErrGameAlreadyStarted, home.Name, away.Name)
}

func notFoundError(home, away teams.Team) error {
	return fmt.Errorf("%w: %s vs %s", ErrGameNotFound, home.Name, away.Name)
}
