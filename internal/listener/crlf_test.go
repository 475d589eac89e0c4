package listener

import (
	"bytes"
	"io"
	"testing"

	"github.com/pixil98/go-testutil"
)

type bufferRW struct {
	in  *bytes.Buffer
	out bytes.Buffer
}

func (b *bufferRW) Read(p []byte) (int, error)  { return b.in.Read(p) }
func (b *bufferRW) Write(p []byte) (int, error) { return b.out.Write(p) }

func TestCRLFReadWriter_Write(t *testing.T) {
	tests := map[string]struct {
		writes []string
		exp    string
	}{
		"bare newline":      {writes: []string{"hello\n"}, exp: "hello\r\n"},
		"already crlf":      {writes: []string{"hello\r\n"}, exp: "hello\r\n"},
		"mixed":             {writes: []string{"a\nb\r\nc\n"}, exp: "a\r\nb\r\nc\r\n"},
		"cr split from lf":  {writes: []string{"a\r", "\nb\n"}, exp: "a\r\nb\r\n"},
		"no newline":        {writes: []string{"> "}, exp: "> "},
		"escape codes kept": {writes: []string{"\x1b[2J\x1b[Hhp\x1b[K\n"}, exp: "\x1b[2J\x1b[Hhp\x1b[K\r\n"},
		"blank lines":       {writes: []string{"\n\n"}, exp: "\r\n\r\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rw := &bufferRW{in: &bytes.Buffer{}}
			c := newCRLFReadWriter(rw)

			for _, w := range tt.writes {
				n, err := c.Write([]byte(w))
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				testutil.AssertEqual(t, "written", n, len(w))
			}
			testutil.AssertEqual(t, "output", rw.out.String(), tt.exp)
		})
	}
}

func TestCRLFReadWriter_Read(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"crlf":      {in: "look\r\n", exp: "look\n"},
		"lone cr":   {in: "look\rsay hi\r", exp: "look\nsay hi\n"},
		"lf":        {in: "look\n", exp: "look\n"},
		"cr nul":    {in: "look\r\x00say hi\r\x00", exp: "look\nsay hi\n"},
		"stray nul": {in: "\x00look\n", exp: "look\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newCRLFReadWriter(&bufferRW{in: bytes.NewBufferString(tt.in)})

			got, err := io.ReadAll(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read", string(got), tt.exp)
		})
	}
}
