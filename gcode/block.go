package gcode

import (
	"errors"
	"strings"
)

type Block []Word

func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

func (b Block) SetArg(w byte, val float64) {
	for i, g := range b {
		if g.W == w {
			b[i].Arg = val
			b[i].Expr = ""
			return
		}
	}
}

func (b Block) Clone() Block {
	c := make(Block, len(b))
	copy(c, b)
	return c
}

func (b Block) Has(w Word) bool {
	for _, g := range b {
		if g == w {
			return true
		}
	}
	return false
}

func (b Block) String() string {
	parts := make([]string, len(b))
	for i, g := range b {
		parts[i] = g.String()
	}
	return strings.Join(parts, " ")
}

func (b Block) isStatement() {}

func (b Block) Validate() error {
	var checkWord [256]bool

	for _, g := range b {
		if !g.IsValid() {
			return errors.New("invalid word in block")
		}
		if g.W != 'G' && checkWord[g.W] {
			return errors.New("word was repeated in a block")
		}
		checkWord[g.W] = true
	}

	return nil
}
