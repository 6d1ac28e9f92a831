package cli

import (
	"bytes"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"-dict", "words.txt"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "words.txt", cfg.DictPath)
	assert.Empty(t, cfg.Rows)
	assert.Zero(t, cfg.Size)
	assert.Equal(t, runtime.NumCPU(), cfg.WorkerCount)
	assert.Equal(t, 3, cfg.MinLength)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.PublishTimeout)
}

func TestParse_AllFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-d", "words/",
		"-size", "5",
		"-workers", "2",
		"-min-length", "4",
		"-format", "json",
		"-log-format", "JSON",
		"-log-level", "Debug",
		"-serve-port", "8080",
		"-publish-url", "http://localhost:3000/socket.io/",
		"-publish-timeout", "3s",
		"cats btaa", "xxxx", "xxxx",
	}
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "words/", cfg.DictPath)
	assert.Equal(t, []string{"cats", "btaa", "xxxx", "xxxx"}, cfg.Rows)
	assert.Equal(t, 5, cfg.Size)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 4, cfg.MinLength)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServePort)
	assert.Equal(t, "http://localhost:3000/socket.io/", cfg.PublishURL)
	assert.Equal(t, 3*time.Second, cfg.PublishTimeout)
}

func TestParse_DictTakesPrecedenceOverShorthand(t *testing.T) {
	t.Parallel()

	cfg, _, err := Parse([]string{"-dict", "long.txt", "-d", "short.txt"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "long.txt", cfg.DictPath)
}

func TestParse_PuzzleOnly(t *testing.T) {
	t.Parallel()

	cfg, _, err := Parse([]string{"-puzzle", "boards/"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "boards/", cfg.PuzzlePath)
	assert.Empty(t, cfg.DictPath)
}

func TestParse_UsageWhenNothingGiven(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "-publish-url")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "flag provided but not defined: -nope"},
		{name: "bad log format", args: []string{"-dict", "w", "-log-format", "xml"}, wantErr: "invalid log-format"},
		{name: "bad log level", args: []string{"-dict", "w", "-log-level", "trace"}, wantErr: "invalid log-level"},
		{name: "bad report format", args: []string{"-dict", "w", "-format", "csv"}, wantErr: `unknown output format "csv"`},
		{name: "two letter words", args: []string{"-dict", "w", "-min-length", "2"}, wantErr: "minimum word length must be at least 3"},
		{name: "no workers", args: []string{"-dict", "w", "-workers", "0"}, wantErr: "worker count must be at least 1"},
		{name: "rows with puzzle", args: []string{"-puzzle", "p.hcl", "abcd"}, wantErr: "cannot be used together"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
