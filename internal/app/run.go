package app

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/specialistvlad/gridwords/internal/ctxlog"
	"github.com/specialistvlad/gridwords/internal/dictionary"
	"github.com/specialistvlad/gridwords/internal/publish"
	"github.com/specialistvlad/gridwords/internal/puzzle"
	"github.com/specialistvlad/gridwords/internal/report"
	"github.com/specialistvlad/gridwords/internal/solver"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	p, err := a.loadPuzzle(ctx)
	if err != nil {
		return err
	}

	size := a.config.Size
	if size == 0 {
		size = p.Size
	}
	if size == 0 {
		size = board.DefaultSize
	}

	if len(p.Boards) == 0 && a.config.ServePort == 0 {
		boards, err := a.readBoards(size)
		if err != nil {
			return err
		}
		p.Boards = boards
	}

	// Shape errors are reported before the dictionary is loaded.
	if err := p.Validate(size); err != nil {
		return err
	}

	dictPath := a.config.DictPath
	if dictPath == "" {
		dictPath = p.Dictionary
	}
	if dictPath == "" {
		return fmt.Errorf("no dictionary configured: pass one on the command line or set dictionary in %s", a.config.PuzzlePath)
	}

	tree, stats, err := dictionary.Load(ctx, dictPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	a.logger.Info("Dictionary loaded.", "source", dictPath, "words", stats.Words, "nodes", stats.Nodes, "skipped", stats.Skipped)

	a.solver = solver.New(tree,
		solver.WithSize(size),
		solver.WithWorkers(a.config.WorkerCount),
		solver.WithMinLength(a.config.MinLength),
	)

	if len(p.Boards) > 0 {
		results, err := a.solveBoards(ctx, p.Boards)
		if err != nil {
			return err
		}
		if err := report.Write(a.outW, a.config.OutputFormat, results); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if a.config.PublishURL != "" {
			if err := a.publish(ctx, results); err != nil {
				return err
			}
		}
	}

	if a.config.ServePort > 0 {
		if err := a.serve(ctx); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// loadPuzzle returns the boards given on the command line or in puzzle
// files. It returns an empty puzzle when neither is set.
func (a *App) loadPuzzle(ctx context.Context) (*puzzle.Puzzle, error) {
	switch {
	case a.config.PuzzlePath != "":
		p, err := puzzle.LoadFiles(ctx, a.config.PuzzlePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load puzzle: %w", err)
		}
		a.logger.Info("Puzzle loaded.", "path", a.config.PuzzlePath, "boards", len(p.Boards))
		return p, nil
	case len(a.config.Rows) > 0:
		return &puzzle.Puzzle{
			Boards: []puzzle.Board{puzzle.FromRows("", dictionary.NormalizeGrid(a.config.Rows))},
		}, nil
	default:
		return &puzzle.Puzzle{}, nil
	}
}

// readBoards reads one board of size rows from the input. Blank lines are
// ignored; a row of the wrong width is left for validation to report.
func (a *App) readBoards(size int) ([]puzzle.Board, error) {
	a.logger.Debug("Reading board rows from input.", "rows", size)
	var rows []string
	scanner := bufio.NewScanner(a.in)
	for len(rows) < size && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("row %d is not valid UTF-8", len(rows))
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read board rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no board given: pass rows as arguments, a puzzle file, or %d rows on stdin", size)
	}
	return []puzzle.Board{puzzle.FromRows("", dictionary.NormalizeGrid(rows))}, nil
}

func (a *App) solveBoards(ctx context.Context, boards []puzzle.Board) ([]report.Result, error) {
	results := make([]report.Result, 0, len(boards))
	for _, b := range boards {
		logger := a.logger.With("board", b.Name)
		matches, err := a.solver.Matches(ctxlog.WithLogger(ctx, logger), b.Grid)
		if err != nil {
			return nil, fmt.Errorf("failed to solve board %q: %w", b.Name, err)
		}
		result := report.NewResult(b.Name, b.Grid, matches)
		logger.Info("Board solved.", "words", len(matches))
		if b.Expected != nil {
			checkExpected(logger, b.Expected, result.Words())
		}
		results = append(results, result)
	}
	return results, nil
}

// checkExpected warns when a board's recorded words differ from what was
// just found, e.g. after the dictionary changed.
func checkExpected(logger *slog.Logger, expected, got []string) {
	var missing, unexpected []string
	for _, w := range expected {
		if !slices.Contains(got, w) {
			missing = append(missing, w)
		}
	}
	for _, w := range got {
		if !slices.Contains(expected, w) {
			unexpected = append(unexpected, w)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		logger.Warn("Found words differ from the recorded ones.", "missing", missing, "unexpected", unexpected)
	}
}

func (a *App) publish(ctx context.Context, results []report.Result) error {
	pub, err := publish.New(publish.Options{
		URL:      a.config.PublishURL,
		AckEvent: publish.DefaultAckEvent,
		Timeout:  a.config.PublishTimeout,
	})
	if err != nil {
		return fmt.Errorf("invalid publish configuration: %w", err)
	}
	ack, err := pub.Publish(ctx, results)
	if err != nil {
		return fmt.Errorf("failed to publish results: %w", err)
	}
	a.logger.Info("Results published.", "url", a.config.PublishURL, "ack", ack)
	return nil
}
