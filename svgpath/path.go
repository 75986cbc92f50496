// Implements an abstract representation of
// svg path data, which can then be measured and
// sampled by the tessellator.
package svgpath

import (
	"strconv"
	"strings"
)

// Command is one drawing command of a path data string.
// The letter case encodes relative (lower) or absolute (upper) coordinates.
type Command struct {
	Letter byte
	Args   []float64 // raw arguments, as written
	Abs    []float64 // arguments resolved to absolute coordinates
}

// IsRelative returns true for lower case commands.
func (c Command) IsRelative() bool { return 'a' <= c.Letter && c.Letter <= 'z' }

// Kind returns the upper case letter of the command.
func (c Command) Kind() byte {
	if c.IsRelative() {
		return c.Letter - 'a' + 'A'
	}
	return c.Letter
}

// End returns the absolute point reached after the command.
// The `current` point is needed by H and V, which only carry one axis.
// Z is not handled here: it depends on the subpath start.
func (c Command) End(current [2]float64) [2]float64 {
	ix, iy := lastPointIndex(c.Kind())
	if ix >= 0 {
		current[0] = c.Abs[ix]
	}
	if iy >= 0 {
		current[1] = c.Abs[iy]
	}
	return current
}

func writeArgs(b *strings.Builder, letter byte, args []float64) {
	b.WriteByte(letter)
	for i, v := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

// String returns the command in its original form.
func (c Command) String() string {
	var b strings.Builder
	writeArgs(&b, c.Letter, c.Args)
	return b.String()
}

// AbsoluteString returns the command with an upper case letter
// and resolved arguments.
func (c Command) AbsoluteString() string {
	var b strings.Builder
	writeArgs(&b, c.Kind(), c.Abs)
	return b.String()
}

// absolute returns the command rewritten in absolute form.
func (c Command) absolute() Command {
	return Command{Letter: c.Kind(), Args: c.Abs, Abs: c.Abs}
}

// Path is a flat sequence of commands, as returned by `Parse`.
type Path []Command

// String returns the path data, keeping the original relative commands.
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, c := range p {
		chunks[i] = c.String()
	}
	return strings.Join(chunks, " ")
}

// AbsoluteString returns the path data using only absolute commands.
func (p Path) AbsoluteString() string {
	chunks := make([]string, len(p))
	for i, c := range p {
		chunks[i] = c.AbsoluteString()
	}
	return strings.Join(chunks, " ")
}

// Subpath is a run of commands starting with an absolute M,
// which may be replayed without reference to other subpaths.
type Subpath []Command

// String returns the path data of the subpath.
func (s Subpath) String() string { return Path(s).String() }

// Closed returns true if the last command is Z or z.
func (s Subpath) Closed() bool {
	return len(s) > 0 && s[len(s)-1].Kind() == 'Z'
}

// SplitSubpaths splits `cmds` at every moveTo. The moveTo opening a subpath
// is rewritten in absolute form; the following commands are kept as they are.
// A path not starting with a moveTo gets an implicit M0 0.
func SplitSubpaths(cmds []Command) []Subpath {
	var (
		out     []Subpath
		current Subpath
	)
	for i, c := range cmds {
		if c.Kind() == 'M' {
			if current != nil {
				out = append(out, current)
			}
			current = Subpath{c.absolute()}
			continue
		}
		if i == 0 {
			current = Subpath{{Letter: 'M', Args: []float64{0, 0}, Abs: []float64{0, 0}}}
		}
		current = append(current, c)
	}
	if current != nil {
		out = append(out, current)
	}
	return out
}
