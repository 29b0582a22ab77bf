package rendezvous

import (
	"context"
	"testing"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/stretchr/testify/assert"
)

func TestClient(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rep := zmq4.NewRep(ctx)
	assert.NoError(t, rep.Listen("tcp://127.0.0.1:0"))
	defer rep.Close()

	pub := zmq4.NewPub(ctx)
	assert.NoError(t, pub.Listen("tcp://127.0.0.1:0"))
	defer pub.Close()

	c := &Client{
		SyncAddr:  "tcp://" + pub.Addr().String(),
		AliveAddr: "tcp://" + rep.Addr().String(),
	}
	assert.NoError(t, c.Connect(ctx))
	defer c.Close()

	type result struct {
		runID, token string
		err          error
	}
	done := make(chan result, 1)
	go func() {
		runID, token, err := c.Wait(ctx)
		done <- result{runID, token, err}
	}()

	// the announcement arrives before the start token is released
	msg, err := rep.Recv()
	assert.NoError(t, err)
	assert.Equal(t, DefaultIdentity, string(msg.Bytes()))

	// allow the subscription to settle before publishing
	time.Sleep(300 * time.Millisecond)
	assert.NoError(t, pub.Send(zmq4.NewMsgString("meas-7 f3a9")))

	res := <-done
	assert.NoError(t, res.err)
	assert.Equal(t, "meas-7", res.runID)
	assert.Equal(t, "f3a9", res.token)
}

func TestClient_NotConnected(t *testing.T) {
	var c Client
	_, _, err := c.Wait(context.Background())
	assert.Error(t, err)
}

func TestClient_CanceledWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	rep := zmq4.NewRep(ctx)
	assert.NoError(t, rep.Listen("tcp://127.0.0.1:0"))
	defer rep.Close()

	pub := zmq4.NewPub(ctx)
	assert.NoError(t, pub.Listen("tcp://127.0.0.1:0"))
	defer pub.Close()

	c := &Client{
		SyncAddr:  "tcp://" + pub.Addr().String(),
		AliveAddr: "tcp://" + rep.Addr().String(),
		Identity:  "BENCH",
	}
	assert.NoError(t, c.Connect(ctx))
	defer c.Close()

	done := make(chan error, 1)
	go func() {
		_, _, err := c.Wait(ctx)
		done <- err
	}()

	msg, err := rep.Recv()
	assert.NoError(t, err)
	assert.Equal(t, "BENCH", string(msg.Bytes()))

	cancel()
	assert.Equal(t, context.Canceled, <-done)
}
