package gcode

import "io"

type StatementReader interface {
	Read() (Statement, error)
}

type ProgramReader struct {
	Program Program
	n       int
}

func (p *ProgramReader) Read() (Statement, error) {
	if p.n == len(p.Program) {
		return nil, io.EOF
	}

	p.n++
	return p.Program[p.n-1], nil
}
