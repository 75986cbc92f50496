package svgpath

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// This file implements the path data grammar: a scanner
// splitting the input on command letters, followed by numbers.

// MalformedPathError is returned when the path data does not follow
// the grammar, in particular when the number of arguments of a command
// is not a multiple of its arity.
type MalformedPathError struct {
	Offset int    // byte offset of the faulty segment or character
	Letter byte   // command letter, or 0 when no command applies
	Count  int    // number of arguments found for Letter
	Reason string // human readable description
}

func (e *MalformedPathError) Error() string {
	if e.Letter == 0 {
		return fmt.Sprintf("malformed path data at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("malformed path data at offset %d (%c, %d arguments): %s",
		e.Offset, e.Letter, e.Count, e.Reason)
}

// arity is the fixed number of arguments per command, indexed by
// the upper case letter. -1 marks bytes which are not commands.
var arity = func() (out [256]int) {
	for i := range out {
		out[i] = -1
	}
	out['Z'], out['H'], out['V'] = 0, 1, 1
	out['M'], out['L'], out['T'] = 2, 2, 2
	out['Q'], out['S'] = 4, 4
	out['C'] = 6
	out['A'] = 7
	return out
}()

func toUpper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// isCommand returns true for the ten command letters, in both cases
func isCommand(b byte) bool { return arity[toUpper(b)] >= 0 }

type axis uint8

const (
	axisNone axis = iota
	axisX
	axisY
)

// coordinate axes of the arguments, used to resolve relative commands
var relativeAxes = map[byte][]axis{
	'M': {axisX, axisY},
	'L': {axisX, axisY},
	'T': {axisX, axisY},
	'H': {axisX},
	'V': {axisY},
	'C': {axisX, axisY, axisX, axisY, axisX, axisY},
	'S': {axisX, axisY, axisX, axisY},
	'Q': {axisX, axisY, axisX, axisY},
	'A': {axisNone, axisNone, axisNone, axisNone, axisNone, axisX, axisY},
}

// lastPointIndex returns the index of the arguments giving the new
// current point, or -1 if the command does not change that axis.
func lastPointIndex(kind byte) (ix, iy int) {
	switch kind {
	case 'M', 'L', 'T':
		return 0, 1
	case 'H':
		return 0, -1
	case 'V':
		return -1, 0
	case 'C':
		return 4, 5
	case 'S', 'Q':
		return 2, 3
	case 'A':
		return 5, 6
	default:
		return -1, -1
	}
}

// pathScanner holds the state of the parsing
type pathScanner struct {
	data []byte
	pos  int

	current, start [2]float64 // current point and subpath start, in absolute coordinates
	out            Path
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func (p *pathScanner) skipSeparators() {
	for p.pos < len(p.data) && (isSpace(p.data[p.pos]) || p.data[p.pos] == ',') {
		p.pos++
	}
}

// numbers reads the arguments following a command letter,
// stopping at the next command or at the end of the input.
func (p *pathScanner) numbers() ([]float64, error) {
	var out []float64
	for {
		p.skipSeparators()
		if p.pos >= len(p.data) || isCommand(p.data[p.pos]) {
			return out, nil
		}
		f, n := strconv.ParseFloat(p.data[p.pos:])
		if n == 0 {
			return nil, &MalformedPathError{
				Offset: p.pos,
				Reason: fmt.Sprintf("unexpected character %q", p.data[p.pos]),
			}
		}
		out = append(out, f)
		p.pos += n
	}
}

// push resolves the absolute arguments of the command and
// updates the current point.
func (p *pathScanner) push(letter byte, args []float64) {
	cmd := Command{Letter: letter, Args: args}
	kind := cmd.Kind()
	if kind == 'Z' {
		p.current = p.start
		p.out = append(p.out, cmd)
		return
	}
	abs := append([]float64(nil), args...)
	if cmd.IsRelative() {
		for i, ax := range relativeAxes[kind] {
			switch ax {
			case axisX:
				abs[i] += p.current[0]
			case axisY:
				abs[i] += p.current[1]
			}
		}
	}
	cmd.Abs = abs
	p.current = cmd.End(p.current)
	if kind == 'M' {
		p.start = p.current
	}
	p.out = append(p.out, cmd)
}

// segment emits the commands for one letter and its arguments,
// splitting the arguments in chunks of the command arity.
func (p *pathScanner) segment(offset int, letter byte, nums []float64) error {
	kind := toUpper(letter)
	size := arity[kind]
	if size == 0 {
		if len(nums) != 0 {
			return &MalformedPathError{Offset: offset, Letter: letter, Count: len(nums), Reason: "closepath takes no arguments"}
		}
		p.push(letter, nil)
		return nil
	}
	if len(nums) == 0 || len(nums)%size != 0 {
		return &MalformedPathError{
			Offset: offset, Letter: letter, Count: len(nums),
			Reason: fmt.Sprintf("expected a multiple of %d arguments", size),
		}
	}
	// overloaded moveTo: the next pairs are implicit lineTo
	if kind == 'M' && len(nums) > size {
		p.push(letter, nums[:size:size])
		nums = nums[size:]
		if letter == 'm' {
			letter = 'l'
		} else {
			letter = 'L'
		}
	}
	for len(nums) > 0 {
		p.push(letter, nums[:size:size])
		nums = nums[size:]
	}
	return nil
}

// Parse reads the path data `text` into a sequence of commands,
// with their arguments resolved to absolute coordinates.
// An error of type *MalformedPathError is returned for invalid input.
func Parse(text string) (Path, error) {
	p := pathScanner{data: []byte(text)}
	for {
		p.skipSeparators()
		if p.pos >= len(p.data) {
			break
		}
		offset, letter := p.pos, p.data[p.pos]
		if !isCommand(letter) {
			return nil, &MalformedPathError{
				Offset: offset,
				Reason: fmt.Sprintf("expected a command letter, got %q", letter),
			}
		}
		p.pos++
		nums, err := p.numbers()
		if err != nil {
			return nil, err
		}
		if err = p.segment(offset, letter, nums); err != nil {
			return nil, err
		}
	}
	return p.out, nil
}

// MustParse is like Parse but panics on invalid input.
// It is meant for static path data.
func MustParse(text string) Path {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}
