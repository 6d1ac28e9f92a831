package app

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/specialistvlad/gridwords/internal/solver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	in     io.Reader
	logger *slog.Logger
	config *Config

	// solver is set once the dictionary has been loaded and is shared by
	// every board and every HTTP request afterwards.
	solver     *solver.Solver
	httpServer *http.Server
	addr       string
	ready      chan struct{}
}

// Option customizes an App.
type Option func(*App)

// WithLogWriter sends log output to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) {
		a.logger = newLogger(a.config.LogLevel, a.config.LogFormat, w)
	}
}

// WithInput makes the App read board rows from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(a *App) {
		a.in = r
	}
}

// NewApp is the constructor for the main application. Reports go to outW;
// logs go to stderr unless WithLogWriter says otherwise.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	a := &App{
		outW:   outW,
		in:     os.Stdin,
		config: cfg,
		ready:  make(chan struct{}),
	}
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("Logger configured successfully.")
	return a
}

// Ready is closed once the HTTP service accepts connections.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Addr is the address the HTTP service listens on. It is only meaningful
// after Ready is closed.
func (a *App) Addr() string {
	return a.addr
}
