package supervisor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/glasspane/glasspane/internal/frame"
)

const (
	// maxFrameBytes bounds a single inbound line. Frames with hundreds of
	// windows fit comfortably; anything larger indicates a broken peer.
	maxFrameBytes = 4 << 20

	reconnectBase = 250 * time.Millisecond
	reconnectMax  = 5 * time.Second
)

// Client maintains a connection to the supervisor socket. Inbound frames are
// published into a latest-value cell; outbound commands are written as JSON
// lines and never awaited.
type Client struct {
	socketPath string
	cell       *frame.Cell
	logger     *slog.Logger

	mu   sync.Mutex
	conn net.Conn
}

// NewClient creates a client for the given socket. Run must be called before
// frames arrive; commands sent while disconnected are dropped with a log line.
func NewClient(socketPath string, cell *frame.Cell, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{socketPath: socketPath, cell: cell, logger: logger}
}

// Run connects to the supervisor and pumps frames until ctx is cancelled.
// Lost connections are retried with backoff; the shell keeps compositing its
// last frame in the meantime.
func (c *Client) Run(ctx context.Context) error {
	delay := reconnectBase
	for {
		conn, err := net.Dial("unix", c.socketPath)
		if err != nil {
			c.logger.Warn("supervisor connect failed", "path", c.socketPath, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = min(delay*2, reconnectMax)
			continue
		}
		delay = reconnectBase

		c.setConn(conn)
		c.logger.Info("connected to supervisor", "path", c.socketPath)
		err = c.readLoop(ctx, conn)
		c.setConn(nil)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("supervisor connection lost", "error", err)
	}
}

func (c *Client) setConn(conn net.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

func (c *Client) readLoop(ctx context.Context, conn net.Conn) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), maxFrameBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		env, err := ParseEnvelope(line)
		if err != nil {
			c.logger.Warn("dropping malformed supervisor message", "error", err)
			continue
		}
		if env.Type != EnvelopeFrame || env.Frame == nil {
			continue
		}
		c.cell.Publish(env.Frame)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("supervisor closed connection")
}

// Send writes one command line. Returns an error when disconnected or the
// write fails; callers that are fire-and-forget may ignore it.
func (c *Client) Send(cmd *Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}
	data = append(data, '\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected to supervisor")
	}
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}

func (c *Client) send(kind CommandKind, payload interface{}) error {
	cmd, err := NewCommand(kind, payload)
	if err != nil {
		return err
	}
	return c.Send(cmd)
}

// LaunchApp asks the supervisor to start a new instance of an application.
func (c *Client) LaunchApp(appID string) error {
	return c.send(KindLaunchApp, LaunchPayload{AppID: appID})
}

// LaunchOrFocusApp raises an existing instance or starts one.
func (c *Client) LaunchOrFocusApp(appID string) error {
	return c.send(KindLaunchOrFocus, LaunchPayload{AppID: appID})
}

// FocusWindow asks the supervisor to focus and raise a window.
func (c *Client) FocusWindow(id uint64) error {
	return c.send(KindFocusWindow, FocusPayload{WindowID: id})
}

// SendInput forwards out-of-band text input to the supervisor.
func (c *Client) SendInput(text string) error {
	return c.send(KindSendInput, InputPayload{Text: text})
}

// SwitchWorkspace asks the supervisor to activate a workspace by index.
func (c *Client) SwitchWorkspace(index int) error {
	return c.send(KindSwitchWorkspace, SwitchPayload{Index: index})
}

// SelectWindows reports a finalized box selection. Failures are logged and
// dropped; selection is advisory state the supervisor may ignore.
func (c *Client) SelectWindows(ids []uint64) {
	if len(ids) == 0 {
		return
	}
	if err := c.send(KindSelectWindows, SelectPayload{WindowIDs: ids}); err != nil {
		c.logger.Warn("failed to report selection", "error", err)
	}
}
