package listener

import (
	"bytes"
	"io"
)

// crlfReadWriter converts between the network's CRLF line endings and the
// bare \n used everywhere inside the server.
type crlfReadWriter struct {
	rw     io.ReadWriter
	lastCR bool // the previous write ended in \r
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfReadWriter{rw: rw}
}

func (c *crlfReadWriter) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		// Telnet sends \r\n or \r\0, SSH without a PTY may send a lone \r.
		// NULs carry nothing and may arrive split from their \r.
		data := bytes.ReplaceAll(p[:n], []byte{0}, nil)
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
	}
	return n, err
}

func (c *crlfReadWriter) Write(p []byte) (int, error) {
	converted := make([]byte, 0, len(p)+bytes.Count(p, []byte("\n")))
	prevCR := c.lastCR
	for _, b := range p {
		if b == '\n' && !prevCR {
			converted = append(converted, '\r')
		}
		converted = append(converted, b)
		prevCR = b == '\r'
	}
	c.lastCR = prevCR

	_, err := c.rw.Write(converted)
	// Return the original length so callers aren't confused by the size change
	return len(p), err
}
