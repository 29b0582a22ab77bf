// Package grbl drives a Grbl-based XY stage over a line-oriented
// transport: wake-up, homing, rapid moves, and idle polling.
package grbl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrTimeout is returned by WaitUntilIdle when the configured idle
// timeout expires before the machine reports Idle.
var ErrTimeout = errors.New("grbl: timed out waiting for idle")

// A ConnectionError wraps a transport failure. Transport failures abort
// the current run; they are never silently retried.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string { return "grbl: " + e.Op + ": " + e.Err.Error() }
func (e *ConnectionError) Unwrap() error { return e.Err }

// softReset is the Grbl realtime soft-reset byte (Ctrl-X).
const softReset = 0x18

// Config tunes controller timing. Zero values take the defaults noted
// per field.
type Config struct {
	// WakeDelay is the settle time after the wake sequence (2s).
	WakeDelay time.Duration

	// PollInterval paces the idle-wait status loop (100ms).
	PollInterval time.Duration

	// ResetDelay is the pause after a soft reset before flushing (500ms).
	ResetDelay time.Duration

	// IdleTimeout bounds a single WaitUntilIdle call. Zero waits
	// forever; set a bound to avoid blocking on a wedged device.
	IdleTimeout time.Duration

	// OnStatus, if set, observes every parsed status snapshot during
	// idle polling.
	OnStatus func(Status)
}

func (c Config) withDefaults() Config {
	if c.WakeDelay == 0 {
		c.WakeDelay = 2 * time.Second
	}
	if c.PollInterval == 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	if c.ResetDelay == 0 {
		c.ResetDelay = 500 * time.Millisecond
	}
	return c
}

// Controller owns a transport to a Grbl machine for its lifetime. All
// operations are sequential and blocking; never share a controller
// across goroutines.
type Controller struct {
	t      Transport
	cfg    Config
	closed bool
}

// New wakes the machine on the given transport and returns a controller
// that owns it. The wake sequence nudges Grbl out of sleep, waits for
// its banner, then discards the stale input.
func New(t Transport, cfg Config) (*Controller, error) {
	c := &Controller{t: t, cfg: cfg.withDefaults()}
	if _, err := t.Write([]byte("\r\n\r\n")); err != nil {
		return nil, &ConnectionError{Op: "wake", Err: err}
	}
	time.Sleep(c.cfg.WakeDelay)
	if err := t.Flush(); err != nil {
		return nil, &ConnectionError{Op: "flush", Err: err}
	}
	return c, nil
}

// Open is a convenience that opens a local serial port and wakes the
// machine on it.
func Open(portName string, baud int, readTimeout time.Duration, cfg Config) (*Controller, error) {
	t, err := OpenSerial(portName, baud, readTimeout)
	if err != nil {
		return nil, err
	}
	c, err := New(t, cfg)
	if err != nil {
		t.Close()
		return nil, err
	}
	return c, nil
}

// Send writes a single protocol line, appending a newline if absent. It
// does not wait for the command to execute.
func (c *Controller) Send(command string) error {
	if !strings.HasSuffix(command, "\n") {
		command += "\n"
	}
	if _, err := c.t.Write([]byte(command)); err != nil {
		return &ConnectionError{Op: "send " + strings.TrimSpace(command), Err: err}
	}
	return nil
}

// WaitUntilIdle polls machine status until it reports Idle. Malformed
// or empty responses are treated as "not yet idle" and retried. This is
// the only blocking wait in the controller.
func (c *Controller) WaitUntilIdle() error {
	var deadline time.Time
	if c.cfg.IdleTimeout > 0 {
		deadline = time.Now().Add(c.cfg.IdleTimeout)
	}

	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(c.cfg.PollInterval)

		if err := c.t.Flush(); err != nil {
			return &ConnectionError{Op: "flush", Err: err}
		}
		if err := c.Send("?"); err != nil {
			return err
		}
		line, err := c.t.ReadLine()
		if err != nil {
			return &ConnectionError{Op: "read status", Err: err}
		}

		st, ok := ParseStatus(line)
		if !ok {
			continue
		}
		if c.cfg.OnStatus != nil {
			c.cfg.OnStatus(st)
		}
		if st.Idle() {
			return nil
		}
	}
}

// Home runs the homing cycle and zeroes the work coordinate system.
// Any transport failure aborts the sequence.
func (c *Controller) Home() error {
	steps := []func() error{
		func() error { return c.Send("G54") },
		func() error { return c.Send("?") },
		c.WaitUntilIdle,
		func() error { return c.Send("$H") },
		c.WaitUntilIdle,
		func() error { return c.Send("G10 P0 L20 X0 Y0 Z0") },
		c.WaitUntilIdle,
		func() error { return c.Send("G54") },
		func() error { return c.Send("?") },
		c.WaitUntilIdle,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// MoveTo issues a rapid move. When waitIdle is set it blocks until the
// machine reports Idle, giving a strict move-confirm-move ordering;
// otherwise further moves may be queued while this one executes.
func (c *Controller) MoveTo(x, y, feedRate float64, waitIdle bool) error {
	cmd := fmt.Sprintf("G0 X%.3f Y%.3f F%s", x, y, formatFeed(feedRate))
	if err := c.Send(cmd); err != nil {
		return err
	}
	if waitIdle {
		return c.WaitUntilIdle()
	}
	return nil
}

// MoveToOrigin returns the stage to the work origin.
func (c *Controller) MoveToOrigin(feedRate float64, waitIdle bool) error {
	return c.MoveTo(0, 0, feedRate, waitIdle)
}

// Reset sends a soft reset to halt any buffered motion, then discards
// whatever the controller prints. It is the interrupt-recovery path and
// swallows transport errors.
func (c *Controller) Reset() {
	if _, err := c.t.Write([]byte{softReset}); err != nil {
		return
	}
	time.Sleep(c.cfg.ResetDelay)
	c.t.Flush()
}

// Close releases the transport. It is safe to call more than once.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.t.Close()
}

func formatFeed(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
