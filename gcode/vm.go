package gcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/probegen/probegen/coord"
)

// Surface stands in for a workpiece during simulation. It is given a
// probe move from one point toward another and returns the contact
// point, or ok=false when the move finishes without touching anything.
type Surface func(from, to coord.Point) (contact coord.Point, ok bool)

// VM executes a generated program, tracking position, parameters and
// spindle state. Probe moves are resolved against Surface and their
// contact coordinates stored in #5061..#5063, the same parameters a
// controller would fill in.
type VM struct {
	Surface Surface

	pos       coord.Point
	relative  bool
	feed      float64
	spindleOn bool
	params    map[string]float64
	messages  []string
}

func NewVM() *VM {
	return &VM{params: make(map[string]float64)}
}

func (vm *VM) Pos() coord.Point   { return vm.pos }
func (vm *VM) Feed() float64      { return vm.feed }
func (vm *VM) SpindleOn() bool    { return vm.spindleOn }
func (vm *VM) Messages() []string { return vm.messages }

// Param returns a parameter by canonical key ("5061", "1001", "angle").
func (vm *VM) Param(key string) (float64, bool) {
	v, ok := vm.params[canonicalKey(key)]
	return v, ok
}

func (vm *VM) SetParam(key string, v float64) {
	vm.params[canonicalKey(key)] = v
}

func canonicalKey(p string) string {
	return strings.ToLower(strings.Trim(p, "<>"))
}

func (vm *VM) lookup(key string) (float64, bool) {
	v, ok := vm.params[key]
	return v, ok
}

func (vm *VM) RunAll(p Program) error {
	for i, st := range p {
		if err := vm.Run(st); err != nil {
			return fmt.Errorf("statement %d (%s): %w", i+1, st, err)
		}
	}
	return nil
}

func (vm *VM) Run(st Statement) error {
	switch t := st.(type) {
	case Comment:
		vm.comment(t)
		return nil
	case Assign:
		v, err := EvalExpr(t.Expr, vm.lookup)
		if err != nil {
			return err
		}
		vm.params[canonicalKey(t.Param)] = v
		return nil
	case Block:
		return vm.runBlock(t)
	}
	return fmt.Errorf("unknown statement type %T", st)
}

func (vm *VM) wordValue(w Word) (float64, error) {
	if w.Expr == "" {
		return w.Arg, nil
	}
	s := w.Expr
	if s[0] == '#' {
		i := 1
		key, err := scanParamKey(s, &i)
		if err != nil {
			return 0, err
		}
		v, ok := vm.params[key]
		if !ok {
			return 0, fmt.Errorf("undefined parameter #%s", key)
		}
		return v, nil
	}
	return EvalExpr(s, vm.lookup)
}

func (vm *VM) runBlock(b Block) error {
	if err := b.Validate(); err != nil {
		return err
	}

	var hasMotion, hasAxis bool
	var motion float64
	for _, w := range b {
		switch w.W {
		case 'G':
			switch w.Arg {
			case 0, 1, 38.2:
				hasMotion, motion = true, w.Arg
			case 21, 54, 55, 56, 57, 58, 59:
				// metric and work-offset selects; the simulation runs
				// in a single metric frame
			case 90:
				vm.relative = false
			case 91:
				vm.relative = true
			default:
				return errors.New("unsupported code " + w.String())
			}
		case 'M':
			switch w.Arg {
			case 3, 4:
				vm.spindleOn = true
			case 5:
				vm.spindleOn = false
			default:
				return errors.New("unsupported code " + w.String())
			}
		case 'F':
			v, err := vm.wordValue(w)
			if err != nil {
				return err
			}
			vm.feed = v
		case 'X', 'Y', 'Z':
			hasAxis = true
		default:
			return errors.New("unsupported word " + w.String())
		}
	}

	if !hasAxis {
		return nil
	}
	if !hasMotion {
		return errors.New("axis words without a motion mode")
	}

	target := vm.pos
	for _, w := range b {
		if !w.IsAxis() {
			continue
		}
		v, err := vm.wordValue(w)
		if err != nil {
			return err
		}
		switch w.W {
		case 'X':
			if vm.relative {
				target.X += v
			} else {
				target.X = v
			}
		case 'Y':
			if vm.relative {
				target.Y += v
			} else {
				target.Y = v
			}
		case 'Z':
			if vm.relative {
				target.Z += v
			} else {
				target.Z = v
			}
		}
	}

	switch motion {
	case 0, 1:
		vm.pos = target
	case 38.2:
		if vm.relative {
			return errors.New("relative probe moves are not supported")
		}
		if vm.Surface == nil {
			return errors.New("no surface configured for probe move")
		}
		contact, ok := vm.Surface(vm.pos, target)
		if !ok {
			return fmt.Errorf("probe move to X%s Y%s finished without contact",
				formatFloat(target.X, 4), formatFloat(target.Y, 4))
		}
		vm.pos = contact
		vm.params["5061"] = contact.X
		vm.params["5062"] = contact.Y
		vm.params["5063"] = contact.Z
		vm.params["5070"] = 1
	}

	return nil
}

// comment records (DEBUG, ...) messages with parameters substituted.
func (vm *VM) comment(c Comment) {
	text := strings.TrimSpace(string(c))
	if !strings.HasPrefix(strings.ToUpper(text), "DEBUG,") {
		return
	}
	vm.messages = append(vm.messages, vm.substitute(strings.TrimSpace(text[len("DEBUG,"):])))
}

func (vm *VM) substitute(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); {
		if text[i] != '#' {
			sb.WriteByte(text[i])
			i++
			continue
		}
		j := i + 1
		key, err := scanParamKey(text, &j)
		if err != nil {
			sb.WriteByte(text[i])
			i++
			continue
		}
		if v, ok := vm.params[key]; ok {
			sb.WriteString(formatFloat(v, 4))
		} else {
			sb.WriteString(text[i:j])
		}
		i = j
	}
	return sb.String()
}
