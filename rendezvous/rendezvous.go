// Package rendezvous synchronizes run start with a remote coordination
// server over ZeroMQ: announce identity on a REQ socket, then block for
// the published start token.
package rendezvous

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-zeromq/zmq4"
)

// DefaultIdentity is the name announced to the server.
const DefaultIdentity = "ROVER"

// Client is an explicit rendezvous session. Construct, Connect, Wait,
// Close; there is no shared global socket state.
type Client struct {
	// SyncAddr is the server's start-token publisher, e.g.
	// "tcp://192.108.0.1:5557".
	SyncAddr string

	// AliveAddr is the server's identity endpoint, e.g.
	// "tcp://192.108.0.1:5558".
	AliveAddr string

	// Identity is announced on AliveAddr; empty uses DefaultIdentity.
	Identity string

	sub zmq4.Socket
	req zmq4.Socket
}

// Connect dials both server endpoints. The context bounds the whole
// session including any later Wait.
func (c *Client) Connect(ctx context.Context) error {
	sub := zmq4.NewSub(ctx)
	if err := sub.Dial(c.SyncAddr); err != nil {
		return fmt.Errorf("rendezvous: dial sync %s: %w", c.SyncAddr, err)
	}
	if err := sub.SetOption(zmq4.OptionSubscribe, ""); err != nil {
		sub.Close()
		return fmt.Errorf("rendezvous: subscribe: %w", err)
	}

	req := zmq4.NewReq(ctx)
	if err := req.Dial(c.AliveAddr); err != nil {
		sub.Close()
		return fmt.Errorf("rendezvous: dial alive %s: %w", c.AliveAddr, err)
	}

	c.sub, c.req = sub, req
	return nil
}

// Wait announces this client and blocks until the server publishes the
// start message, a "<run_id> <token>" pair.
func (c *Client) Wait(ctx context.Context) (runID, token string, err error) {
	if c.sub == nil || c.req == nil {
		return "", "", errors.New("rendezvous: not connected")
	}

	identity := c.Identity
	if identity == "" {
		identity = DefaultIdentity
	}
	if err = c.req.Send(zmq4.NewMsgString(identity)); err != nil {
		return "", "", fmt.Errorf("rendezvous: announce: %w", err)
	}

	type result struct {
		msg zmq4.Msg
		err error
	}
	ch := make(chan result, 1)
	go func() {
		msg, rerr := c.sub.Recv()
		ch <- result{msg: msg, err: rerr}
	}()

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return "", "", fmt.Errorf("rendezvous: receive start: %w", res.err)
		}
		parts := strings.SplitN(string(res.msg.Bytes()), " ", 2)
		if len(parts) != 2 {
			return "", "", fmt.Errorf("rendezvous: malformed start message %q", res.msg.Bytes())
		}
		return parts[0], parts[1], nil
	}
}

// Close releases both sockets. Safe to call after a failed Connect.
func (c *Client) Close() error {
	var err error
	if c.req != nil {
		err = c.req.Close()
		c.req = nil
	}
	if c.sub != nil {
		if serr := c.sub.Close(); err == nil {
			err = serr
		}
		c.sub = nil
	}
	return err
}
