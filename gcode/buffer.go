package gcode

import (
	"bytes"
	"io"
)

// Buffer adapts a StatementReader into an io.Reader producing
// newline-terminated program text.
type Buffer struct {
	sr  StatementReader
	buf bytes.Buffer
	err error
}

var _ io.Reader = &Buffer{}

func NewBuffer(sr StatementReader) *Buffer {
	return &Buffer{sr: sr}
}

func (b *Buffer) Buffered() []byte { return b.buf.Bytes() }

func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.err == io.EOF {
		return b.buf.Read(p)
	}
	if b.err != nil {
		return 0, b.err
	}

	var st Statement
	for b.buf.Len() < len(p) {
		st, b.err = b.sr.Read()
		if b.err == io.EOF {
			return b.buf.Read(p)
		}
		if b.err != nil {
			return 0, b.err
		}
		b.buf.WriteString(st.String() + "\n")
	}

	return b.buf.Read(p)
}
