package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/specialistvlad/gridwords/internal/ctxlog"
	"github.com/specialistvlad/gridwords/internal/dictionary"
	"github.com/specialistvlad/gridwords/internal/puzzle"
	"github.com/specialistvlad/gridwords/internal/report"
)

const (
	maxRequestBody  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// solveRequest is the JSON body accepted by POST /solve.
type solveRequest struct {
	Name string   `json:"name"`
	Rows []string `json:"rows"`
}

type solveResponse struct {
	Results []report.Result `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("POST /solve", a.solveHandler)
	return mux
}

// healthHandler logs the request and reports OK.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// solveHandler solves the boards in the request body. A JSON body holds a
// single board; an HCL body may hold several board blocks.
func (a *App) solveHandler(w http.ResponseWriter, r *http.Request) {
	logger := a.logger.With("remote_addr", r.RemoteAddr)
	ctx := ctxlog.WithLogger(r.Context(), logger)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		return
	}

	boards, err := decodeBoards(r.Header.Get("Content-Type"), body)
	if err != nil {
		logger.Debug("Rejected solve request.", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results, err := a.solveBoards(ctx, boards)
	if err != nil {
		status := http.StatusInternalServerError
		var shapeErr *board.ShapeError
		switch {
		case errors.As(err, &shapeErr):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, context.Canceled):
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{Results: results})
}

func decodeBoards(contentType string, body []byte) ([]puzzle.Board, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/hcl", "text/hcl", "application/x-hcl":
		p, err := puzzle.Parse(body, "request.hcl")
		if err != nil {
			return nil, err
		}
		if len(p.Boards) == 0 {
			return nil, errors.New("request declares no board blocks")
		}
		return p.Boards, nil
	default:
		var req solveRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		if len(req.Rows) == 0 {
			return nil, errors.New("rows is required")
		}
		return []puzzle.Board{puzzle.FromRows(req.Name, dictionary.NormalizeGrid(req.Rows))}, nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// serve runs the HTTP service until ctx is done, then shuts it down.
func (a *App) serve(ctx context.Context) error {
	a.logger.Debug("Configuring solve server.")
	addr := fmt.Sprintf(":%d", a.config.ServePort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	a.httpServer = &http.Server{
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	a.addr = ln.Addr().String()
	close(a.ready)

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("Solve server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// Serve returns http.ErrServerClosed on graceful shutdown.
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		return a.closeServer(ctx)
	case err, ok := <-serveErr:
		if ok {
			a.logger.Error("Solve server failed unexpectedly", "error", err)
			return fmt.Errorf("solve server failed: %w", err)
		}
		return nil
	}
}

func (a *App) closeServer(ctx context.Context) error {
	a.logger.Debug("Closing solve server...")

	if a.httpServer == nil {
		a.logger.Debug("Solve server was not running.")
		return nil
	}

	// ctx is already done here, so the shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down solve server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Solve server shutdown failed", "error", err)
		return err
	}

	a.logger.Debug("Solve server shut down gracefully.")
	return nil
}
