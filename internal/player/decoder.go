package player

import (
	"bytes"
	"strings"
)

// MaxLineLength is the longest line accepted from a client. Longer input is
// dropped up to the next newline.
const MaxLineLength = 1024

// LineDecoder splits a byte stream into trimmed, non-empty lines.
type LineDecoder struct {
	buf        []byte
	discarding bool
}

// Feed consumes p and returns every complete line it finished.
func (d *LineDecoder) Feed(p []byte) []string {
	var lines []string

	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			d.append(p)
			break
		}

		d.append(p[:i])
		if !d.discarding {
			if line := strings.TrimSpace(string(d.buf)); line != "" {
				lines = append(lines, line)
			}
		}
		d.buf = d.buf[:0]
		d.discarding = false
		p = p[i+1:]
	}

	return lines
}

func (d *LineDecoder) append(p []byte) {
	if d.discarding {
		return
	}
	if len(d.buf)+len(p) > MaxLineLength {
		d.buf = d.buf[:0]
		d.discarding = true
		return
	}
	d.buf = append(d.buf, p...)
}
