// Package machine feeds pattern point sequences into a motion
// controller, one blocking move at a time.
package machine

import (
	"context"
	"io"
	"time"

	"github.com/mastercactapus/xyplot/coord"
	"github.com/mastercactapus/xyplot/pattern"
)

// Mover is the controller surface a Runner drives. *grbl.Controller
// satisfies it.
type Mover interface {
	MoveTo(x, y, feedRate float64, waitIdle bool) error
	MoveToOrigin(feedRate float64, waitIdle bool) error
	WaitUntilIdle() error
	Reset()
	Close() error
}

// Rendezvous blocks the start of a run until a remote peer releases it.
type Rendezvous interface {
	Wait(ctx context.Context) (runID, token string, err error)
}

// Runner executes a pattern over a work area. It is strictly
// sequential: each move is issued, optionally confirmed idle, then
// optionally paced with a dwell before the next.
type Runner struct {
	Mover Mover
	Area  coord.Area

	// FeedRate is passed through on every move, in mm/min.
	FeedRate float64

	// Dwell pauses between moves for pacing. Zero disables it.
	Dwell time.Duration

	// WaitIdle makes every move block until the machine confirms it
	// finished. Unset lets the controller queue moves.
	WaitIdle bool

	// Rendezvous, if set, gates the run start on a remote peer.
	Rendezvous Rendezvous
}

// NewRunner returns a runner with the stock feed rate and synchronous
// move confirmation.
func NewRunner(m Mover, area coord.Area) *Runner {
	return &Runner{
		Mover:    m,
		Area:     area,
		FeedRate: 20,
		WaitIdle: true,
	}
}

// RunPattern builds a fresh sequence from the variant over the runner's
// work area and executes it.
func (r *Runner) RunPattern(ctx context.Context, v pattern.Variant) error {
	seq, err := v.Sequence(r.Area)
	if err != nil {
		return err
	}
	return r.Run(ctx, seq)
}

// Run feeds the sequence into the controller until it is exhausted or
// ctx is canceled. The connection is released on every exit path; a
// cancellation additionally triggers the recovery sequence (soft reset,
// settle, return to origin) before closing.
func (r *Runner) Run(ctx context.Context, seq pattern.Sequence) (err error) {
	defer func() {
		if ctx.Err() != nil {
			r.recover()
			if err == nil {
				err = ctx.Err()
			}
			return
		}
		if cerr := r.Mover.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if r.Rendezvous != nil {
		if _, _, err = r.Rendezvous.Wait(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p, rerr := seq.Read()
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}

		p = r.Area.Clamp(p.X, p.Y)
		if err = r.Mover.MoveTo(p.X, p.Y, r.FeedRate, r.WaitIdle); err != nil {
			return err
		}
		if r.Dwell > 0 {
			time.Sleep(r.Dwell)
		}
	}
}

// recover is the best-effort interrupt path: stop motion, let the
// machine settle, head back to the origin, release the connection. Each
// step is guarded so one failure does not block the next.
func (r *Runner) recover() {
	r.Mover.Reset()
	r.Mover.WaitUntilIdle()
	r.Mover.MoveToOrigin(r.FeedRate, true)
	r.Mover.Close()
}
