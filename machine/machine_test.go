package machine

import (
	"context"
	"errors"
	"testing"

	"github.com/mastercactapus/xyplot/coord"
	"github.com/mastercactapus/xyplot/pattern"
	"github.com/stretchr/testify/assert"
)

type fakeMover struct {
	calls   []string
	moves   []coord.Point
	moveErr error

	// cancel, if set, is invoked after this many moves
	cancelAfter int
	cancel      context.CancelFunc
}

func (f *fakeMover) MoveTo(x, y, feed float64, waitIdle bool) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.calls = append(f.calls, "move")
	f.moves = append(f.moves, coord.Point{X: x, Y: y})
	if f.cancel != nil && len(f.moves) == f.cancelAfter {
		f.cancel()
	}
	return nil
}

func (f *fakeMover) MoveToOrigin(feed float64, waitIdle bool) error {
	f.calls = append(f.calls, "origin")
	return errors.New("origin failed")
}

func (f *fakeMover) WaitUntilIdle() error {
	f.calls = append(f.calls, "wait")
	return errors.New("wait failed")
}

func (f *fakeMover) Reset() { f.calls = append(f.calls, "reset") }

func (f *fakeMover) Close() error {
	f.calls = append(f.calls, "close")
	return nil
}

func testRunner(t *testing.T, m Mover) *Runner {
	t.Helper()
	area, err := coord.NewArea(1250, 1250, 10)
	assert.NoError(t, err)
	return NewRunner(m, area)
}

func TestRunner_RunPattern(t *testing.T) {
	m := &fakeMover{}
	r := testRunner(t, m)

	v, err := pattern.Resolve("serpentine_100")
	assert.NoError(t, err)
	assert.NoError(t, r.RunPattern(context.Background(), v))

	assert.NotEmpty(t, m.moves)
	assert.Equal(t, coord.Point{X: 10, Y: 10}, m.moves[0])
	// connection released on the normal exit path too
	assert.Equal(t, "close", m.calls[len(m.calls)-1])

	for _, p := range m.moves {
		assert.True(t, p.X >= 10 && p.X <= 1240)
		assert.True(t, p.Y >= 10 && p.Y <= 1240)
	}
}

func TestRunner_MoveErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	m := &fakeMover{moveErr: boom}
	r := testRunner(t, m)

	err := r.RunPattern(context.Background(), pattern.Default())
	assert.Equal(t, boom, err)
	assert.Equal(t, []string{"close"}, m.calls)
}

// Cancellation runs the full recovery chain even when individual steps
// fail: reset, wait for idle, return to origin, close.
func TestRunner_CancelRecovery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := &fakeMover{cancelAfter: 3, cancel: cancel}
	r := testRunner(t, m)

	err := r.RunPattern(ctx, pattern.Default())
	assert.Equal(t, context.Canceled, err)

	assert.Equal(t, []string{"move", "move", "move", "reset", "wait", "origin", "close"}, m.calls)
}

type fakeRendezvous struct {
	called bool
	err    error
}

func (f *fakeRendezvous) Wait(ctx context.Context) (string, string, error) {
	f.called = true
	return "meas-1", "abc123", f.err
}

func TestRunner_Rendezvous(t *testing.T) {
	m := &fakeMover{}
	r := testRunner(t, m)
	rv := &fakeRendezvous{}
	r.Rendezvous = rv

	assert.NoError(t, r.RunPattern(context.Background(), pattern.Default()))
	assert.True(t, rv.called)

	// a failed rendezvous aborts before any motion
	m = &fakeMover{}
	r = testRunner(t, m)
	r.Rendezvous = &fakeRendezvous{err: errors.New("no start token")}

	err := r.RunPattern(context.Background(), pattern.Default())
	assert.Error(t, err)
	assert.Empty(t, m.moves)
}
