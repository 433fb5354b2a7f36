package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/scorekeep/scorekeep/internal/model"
	"github.com/scorekeep/scorekeep/internal/services/registry"
	"github.com/scorekeep/scorekeep/internal/services/standings"
)

// ErrInputClosed reports that the input stream ended or failed.
// It is the only condition that aborts a session.
var ErrInputClosed = errors.New("input stream closed")

const (
	// MaxLineLength is the longest input line accepted, in codepoints
	MaxLineLength = 50
	// MaxWinnerID is the largest winner id token accepted from input
	MaxWinnerID = 1000
	// Sentinel ends the registration phase, matched case-insensitively
	Sentinel = "done"
)

// Session drives the interactive scoreboard loop over a pair of
// streams. All user-facing text lives here; the registry only returns
// errors.
type Session struct {
	registry  *registry.Service
	standings *standings.Service
	in        *bufio.Reader
	out       io.Writer
	logger    *slog.Logger
}

// New creates a new console Session
func New(reg *registry.Service, st *standings.Service, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	return &Session{
		registry:  reg,
		standings: st,
		in:        bufio.NewReader(in),
		out:       out,
		logger:    logger,
	}
}

// Run executes the full session: the registration phase, then the menu
// loop. It returns ErrInputClosed if the input stream ends or fails.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Welcome to the game scoreboard!")

	count, err := s.registry.Count(ctx)
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(s.out, "First, enter the names of everyone playing.")
		if err := s.runRegistration(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Registration complete!")
	} else {
		// A persisted board already has players; pick up where it left off
		fmt.Fprintln(s.out, "Resuming an existing scoreboard.")
	}

	if err := s.printRoster(ctx); err != nil {
		return err
	}
	if err := s.printScoreboard(ctx); err != nil {
		return err
	}

	return s.runMenu(ctx)
}

// readLine prompts until it has a valid trimmed line. The only other
// way out is a dead input stream, reported as ErrInputClosed.
func (s *Session) readLine(prompt string) (string, error) {
	for {
		fmt.Fprint(s.out, prompt)

		line, err := s.in.ReadString('\n')
		if err != nil {
			// A final unterminated line is still usable; anything else is fatal
			if !errors.Is(err, io.EOF) || line == "" {
				s.logger.Warn("input stream failed", slog.String("error", err.Error()))
				return "", fmt.Errorf("%w: %v", ErrInputClosed, err)
			}
		}

		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) > MaxLineLength {
			fmt.Fprintf(s.out, "Input is too long, please keep it under %d characters.\n", MaxLineLength)
			continue
		}

		return trimmed, nil
	}
}

// runRegistration collects player names until the sentinel is given.
// The sentinel is refused while the board is empty.
func (s *Session) runRegistration(ctx context.Context) error {
	for {
		name, err := s.readLine(fmt.Sprintf("Enter a player name (or '%s' to finish): ", Sentinel))
		if err != nil {
			return err
		}

		if strings.EqualFold(name, Sentinel) {
			count, err := s.registry.Count(ctx)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Fprintln(s.out, "At least one player is required!")
				continue
			}
			return nil
		}

		id, err := s.registry.Register(ctx, name)
		if err != nil {
			fmt.Fprintf(s.out, "Could not add player: %s\n", registrationMessage(err))
			continue
		}
		fmt.Fprintf(s.out, "Player '%s' added with id %d\n", name, id)
	}
}

// registrationMessage maps registration errors to friendly prompts
func registrationMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyName):
		return "the name cannot be empty"
	case errors.Is(err, model.ErrNameTooLong):
		return fmt.Sprintf("the name must be at most %d characters", registry.MaxNameLength)
	case errors.Is(err, model.ErrInvalidCharacters):
		return "the name cannot contain control characters"
	case errors.Is(err, model.ErrDuplicateName):
		return "that name is already taken, pick another"
	default:
		return err.Error()
	}
}

// runMenu dispatches menu choices until the user quits
func (s *Session) runMenu(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, "Choose an action:")
		fmt.Fprintln(s.out, "1. Record a game result (enter the winner's id)")
		fmt.Fprintln(s.out, "2. Show the scoreboard")
		fmt.Fprintln(s.out, "3. List players")
		fmt.Fprintln(s.out, "4. Quit")

		choice, err := s.readLine("Enter a choice (1-4): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := s.recordResult(ctx); err != nil {
				return err
			}
		case "2":
			if err := s.printScoreboard(ctx); err != nil {
				return err
			}
		case "3":
			if err := s.printRoster(ctx); err != nil {
				return err
			}
		case "4":
			return s.finish(ctx)
		default:
			fmt.Fprintln(s.out, "Invalid choice, enter a number from 1 to 4.")
		}
	}
}

// recordResult prompts for a winner id and applies the scoring rule.
// Rejected tokens and unknown ids return to the menu.
func (s *Session) recordResult(ctx context.Context) error {
	if err := s.printRoster(ctx); err != nil {
		return err
	}

	token, err := s.readLine("Enter the winning player's id: ")
	if err != nil {
		return err
	}

	winnerID, msg := parseWinnerID(token)
	if msg != "" {
		fmt.Fprintln(s.out, msg)
		return nil
	}

	if err := s.registry.RecordResult(ctx, winnerID); err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			fmt.Fprintf(s.out, "No player has id %d.\n", winnerID)
			return nil
		}
		return err
	}

	fmt.Fprintln(s.out, "Scores updated!")
	return s.printScoreboard(ctx)
}

// parseWinnerID validates a winner id token: ASCII digits only, greater
// than zero, at most MaxWinnerID. It returns a user-facing message when
// the token is rejected.
func parseWinnerID(token string) (model.PlayerID, string) {
	if token == "" {
		return 0, "The id cannot be empty!"
	}

	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, "Enter a valid positive number!"
		}
	}

	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, "Enter a valid positive number!"
	}
	if n == 0 {
		return 0, "The id must be greater than zero!"
	}
	if n > MaxWinnerID {
		return 0, fmt.Sprintf("The id must be at most %d!", MaxWinnerID)
	}

	return model.PlayerID(n), ""
}

func (s *Session) printScoreboard(ctx context.Context) error {
	entries, err := s.registry.Standings(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "=== Scoreboard ===")
	fmt.Fprintf(s.out, "%-4s %-20s %-6s\n", "ID", "Name", "Score")
	fmt.Fprintln(s.out, strings.Repeat("-", 32))
	for _, e := range entries {
		fmt.Fprintf(s.out, "%-4d %-20s %-6d\n", e.ID, e.Name, e.Score)
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Session) printRoster(ctx context.Context) error {
	roster, err := s.registry.Roster(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "=== Players ===")
	for _, e := range roster {
		fmt.Fprintf(s.out, "%d: %s\n", e.ID, e.Name)
	}
	fmt.Fprintln(s.out)
	return nil
}

// finish prints the final ranked standings and says goodbye
func (s *Session) finish(ctx context.Context) error {
	entries, err := s.registry.Standings(ctx)
	if err != nil {
		return err
	}

	ranked := s.standings.Ranked(entries)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "=== Final Standings ===")
	for i, e := range ranked {
		fmt.Fprintf(s.out, "%d. %s (%d points)\n", i+1, e.Name, e.Score)
	}
	if leader, ok := s.standings.Leader(entries); ok {
		fmt.Fprintf(s.out, "Leader: %s\n", leader.Name)
	}
	fmt.Fprintln(s.out, "Thanks for playing, goodbye!")
	return nil
}
