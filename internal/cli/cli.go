package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/specialistvlad/gridwords/internal/app"
	"github.com/specialistvlad/gridwords/internal/publish"
	"github.com/specialistvlad/gridwords/internal/solver"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridwords", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridwords - Find every dictionary word traceable on a letter grid.

Usage:
  gridwords [options] -dict WORDS [ROW...]
  gridwords [options] -puzzle PUZZLE_PATH

Arguments:
  ROW
    One board row per argument, e.g. "cats btaa xxxx xxxx". Without rows
    or a puzzle file, rows are read from standard input.

Options:
`)
		flagSet.PrintDefaults()
	}

	dictFlag := flagSet.String("dict", "", "Word list file, directory of word lists, or http(s) URL.")
	dFlag := flagSet.String("d", "", "Word list source (shorthand).")
	puzzleFlag := flagSet.String("puzzle", "", "Path to a puzzle .hcl file or a directory containing .hcl files.")
	sizeFlag := flagSet.Int("size", 0, "Board dimension. 0 uses the puzzle file's size, or 4.")
	workersFlag := flagSet.Int("workers", runtime.NumCPU(), "Number of concurrent search workers.")
	minLengthFlag := flagSet.Int("min-length", solver.DefaultMinLength, "Shortest word length reported. Values below 3 are rejected.")
	formatFlag := flagSet.String("format", "text", "Report format. Options: 'text', 'json' or 'hcl'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	servePortFlag := flagSet.Int("serve-port", 0, "Port for the HTTP solve service. 0 is disabled.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io endpoint to publish results to.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", publish.DefaultTimeout, "How long to wait for the publish acknowledgement.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	dict := *dictFlag
	if dict == "" {
		dict = *dFlag
	}

	var rows []string
	for _, arg := range flagSet.Args() {
		rows = append(rows, strings.Fields(arg)...)
	}
	slog.Debug("Inputs determined.", "dict", dict, "puzzle", *puzzleFlag, "rows", len(rows))

	if dict == "" && *puzzleFlag == "" {
		slog.Debug("No dictionary or puzzle provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DictPath:       dict,
		PuzzlePath:     *puzzleFlag,
		Rows:           rows,
		Size:           *sizeFlag,
		WorkerCount:    *workersFlag,
		MinLength:      *minLengthFlag,
		OutputFormat:   *formatFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		ServePort:      *servePortFlag,
		PublishURL:     *publishURLFlag,
		PublishTimeout: *publishTimeoutFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
