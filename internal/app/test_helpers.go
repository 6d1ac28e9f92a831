package app

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App whose report and log output are captured.
// Board rows are read from input when the config names no other source.
func SetupAppTest(t *testing.T, cfg Config, input string) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	if cfg.MinLength == 0 {
		cfg.MinLength = 3
	}
	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	var in io.Reader = strings.NewReader(input)
	testApp := NewApp(out, config, WithLogWriter(logs), WithInput(in))

	t.Cleanup(func() {
		if os.Getenv("GRIDWORDS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
