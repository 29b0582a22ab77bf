package grbl

import (
	"io"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// A Transport carries protocol lines to and from a Grbl controller.
//
// A transport is owned by exactly one Controller; none of its methods
// may be called concurrently.
type Transport interface {
	io.Writer

	// ReadLine reads one response line, stripped of line endings. A
	// read timeout with no data yields an empty string and no error.
	ReadLine() (string, error)

	// Flush discards any buffered input.
	Flush() error

	Close() error
}

// serialTransport drives a local serial port.
type serialTransport struct {
	port *serial.Port
}

// OpenSerial opens a serial port transport. A zero readTimeout defaults
// to one second; without one the status poll loop would block forever on
// a silent device.
func OpenSerial(name string, baud int, readTimeout time.Duration) (Transport, error) {
	if baud == 0 {
		baud = 115200
	}
	if readTimeout == 0 {
		readTimeout = time.Second
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, &ConnectionError{Op: "open " + name, Err: err}
	}
	return &serialTransport{port: port}, nil
}

func (t *serialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

func (t *serialTransport) ReadLine() (string, error) {
	var buf []byte
	b := make([]byte, 1)
	for {
		n, err := t.port.Read(b)
		if n > 0 {
			if b[0] == '\n' {
				break
			}
			buf = append(buf, b[0])
			continue
		}
		if err != nil && err != io.EOF {
			return "", err
		}
		// timeout with nothing more to read
		break
	}
	return strings.TrimRight(string(buf), "\r"), nil
}

func (t *serialTransport) Flush() error {
	return t.port.Flush()
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}
