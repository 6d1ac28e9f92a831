// Package publish pushes solved boards to a socket.io endpoint, for example
// a live scoreboard, and waits for the server to acknowledge them.
package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/gridwords/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	DefaultEvent    = "solution"
	DefaultAckEvent = "solution_ack"
	DefaultTimeout  = 10 * time.Second
)

// Options configures a Publisher.
type Options struct {
	URL       string
	Namespace string
	// Event is the event the payload is emitted under.
	Event string
	// AckEvent is the event the server answers with. Empty makes Publish
	// fire-and-forget: it returns once the payload is queued, and the
	// connection is closed right away, so delivery is best effort.
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Publisher emits payloads to one socket.io endpoint.
type Publisher struct {
	opts    Options
	baseURL string
	path    string
}

// New validates opts and fills in defaults.
func New(opts Options) (*Publisher, error) {
	if opts.URL == "" {
		return nil, errors.New("publish URL is required")
	}
	parsed, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse publish URL: %w", err)
	}
	switch parsed.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported publish URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("publish URL %q has no host", opts.URL)
	}

	if opts.Namespace == "" {
		opts.Namespace = "/"
	}
	if opts.Event == "" {
		opts.Event = DefaultEvent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Publisher{
		opts:    opts,
		baseURL: fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host),
		path:    parsed.Path,
	}, nil
}

type outcome struct {
	ack any
	err error
}

// Publish connects, emits payload and, when an ack event is configured,
// returns the first argument the server sent with it.
func (p *Publisher) Publish(ctx context.Context, payload any) (any, error) {
	logger := ctxlog.FromContext(ctx).With("url", p.opts.URL, "event", p.opts.Event)
	logger.Debug("Publish started.")
	defer logger.Debug("Publish finished.")

	data, err := plain(payload)
	if err != nil {
		return nil, err
	}

	var connected atomic.Bool
	done := make(chan outcome, 1)
	finish := func(o outcome) {
		select {
		case done <- o:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	if p.path != "" && p.path != "/" {
		opts.SetPath(p.path)
	}
	if p.opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(p.baseURL, opts)
	io := manager.Socket(p.opts.Namespace, opts)
	defer io.Disconnect()

	io.On(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Debug("Connected.", "sid", io.Id())
		io.Emit(p.opts.Event, data)
		if p.opts.AckEvent == "" {
			finish(outcome{})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("connection failed: %w", e)
			}
		}
		finish(outcome{err: err})
	})

	if p.opts.AckEvent != "" {
		io.On(types.EventName(p.opts.AckEvent), func(data ...any) {
			var ack any
			if len(data) > 0 {
				ack = data[0]
			}
			finish(outcome{ack: ack})
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if connected.Load() {
			return nil, fmt.Errorf("timed out waiting for %q after connecting: %w", p.opts.AckEvent, opCtx.Err())
		}
		return nil, fmt.Errorf("timed out waiting for connection: %w", opCtx.Err())
	case res := <-done:
		return res.ack, res.err
	}
}

// plain converts payload to maps, slices and scalars so the socket.io
// encoder sees the same shape the JSON report has.
func plain(payload any) (any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}
