// Package spjs exposes one port of a Serial Port JSON Server as a
// grbl.Transport, for machines reachable through a network serial
// bridge instead of a local port.
package spjs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

var lastID int64

func nextID() string {
	id := atomic.AddInt64(&lastID, 1)
	return "cmd_" + strconv.FormatInt(id, 36)
}

// DataFrame is an inbound chunk of serial data from one port.
type DataFrame struct {
	Port string `json:"P"`
	Data string `json:"D"`
}

type sendJSON struct {
	Port string `json:"P"`
	Data []sendData
}
type sendData struct {
	Data string `json:"D"`
	ID   string `json:"Id"`
}

// Transport is a grbl transport over an SPJS websocket. A background
// pump decodes inbound frames; all commands still flow strictly in the
// caller's order.
type Transport struct {
	ws   *websocket.Conn
	port string

	readTimeout time.Duration

	lines  chan string
	errs   chan error
	closed chan struct{}

	partial string
}

// Dial connects to an SPJS server and opens the named serial port with
// the grbl buffer algorithm.
func Dial(url, port string, baud int, readTimeout time.Duration) (*Transport, error) {
	if readTimeout == 0 {
		readTimeout = time.Second
	}
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	t := &Transport{
		ws:          ws,
		port:        port,
		readTimeout: readTimeout,
		lines:       make(chan string, 256),
		errs:        make(chan error, 1),
		closed:      make(chan struct{}),
	}
	err = ws.WriteMessage(websocket.TextMessage,
		[]byte(fmt.Sprintf("open %s %d grbl", port, baud)))
	if err != nil {
		ws.Close()
		return nil, err
	}

	go t.readLoop()
	return t, nil
}

func (t *Transport) readLoop() {
	for {
		_, data, err := t.ws.ReadMessage()
		if err != nil {
			select {
			case t.errs <- err:
			default:
			}
			return
		}
		if len(data) == 0 || data[0] != '{' {
			// ignore echo messages
			continue
		}
		var frame DataFrame
		if err = json.Unmarshal(data, &frame); err != nil || frame.Port != t.port {
			continue
		}

		t.partial += frame.Data
		for {
			i := strings.IndexByte(t.partial, '\n')
			if i < 0 {
				break
			}
			line := strings.TrimRight(t.partial[:i], "\r")
			t.partial = t.partial[i+1:]
			select {
			case t.lines <- line:
			case <-t.closed:
				return
			}
		}
	}
}

// Write queues a command for the port via sendjson.
func (t *Transport) Write(p []byte) (int, error) {
	msg := sendJSON{
		Port: t.port,
		Data: []sendData{{Data: string(p), ID: nextID()}},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}
	err = t.ws.WriteMessage(websocket.TextMessage, append([]byte("sendjson "), data...))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadLine returns the next data line from the port, or an empty string
// once the read timeout passes with nothing buffered.
func (t *Transport) ReadLine() (string, error) {
	select {
	case line := <-t.lines:
		return line, nil
	case err := <-t.errs:
		return "", err
	case <-time.After(t.readTimeout):
		return "", nil
	}
}

// Flush discards any buffered inbound lines.
func (t *Transport) Flush() error {
	for {
		select {
		case <-t.lines:
		default:
			return nil
		}
	}
}

// Close closes the port on the server and the websocket.
func (t *Transport) Close() error {
	select {
	case <-t.closed:
		return nil
	default:
	}
	close(t.closed)
	t.ws.WriteMessage(websocket.TextMessage, []byte("close "+t.port))
	return t.ws.Close()
}
