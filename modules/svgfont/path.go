package svgfont

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// arity is the number of arguments each path command consumes per repetition.
var arity = map[byte]int{
	'M': 2, 'L': 2, 'T': 2,
	'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4,
	'A': 7,
	'Z': 0,
}

var numberPattern = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// segment is one path command together with all of its argument groups.
type segment struct {
	cmd  byte
	args []float64
}

func (s segment) relative() bool { return s.cmd >= 'a' && s.cmd <= 'z' }

func (s segment) upper() byte { return s.cmd &^ 0x20 }

// parsePath splits SVG path data into segments. A leading relative moveto is
// made absolute as its first pair always is.
func parsePath(d string) ([]segment, error) {
	var segs []segment
	var cur *segment
	argIndex := 0

	for i := 0; i < len(d); {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		case (c|0x20) >= 'a' && (c|0x20) <= 'z' && c != 'e' && c != 'E':
			if _, ok := arity[c&^0x20]; !ok {
				return nil, fmt.Errorf("unsupported path command '%c'", c)
			}
			segs = append(segs, segment{cmd: c})
			cur = &segs[len(segs)-1]
			argIndex = 0
			i++
			continue
		}

		if cur == nil {
			return nil, fmt.Errorf("path data must start with a command, got %q", d[i:])
		}
		n := arity[cur.upper()]
		if n == 0 {
			return nil, fmt.Errorf("unexpected argument after '%c' at offset %d", cur.cmd, i)
		}

		// Arc flags may be written without separators, e.g. "a1 1 0 011 1".
		pos := argIndex % n
		if cur.upper() == 'A' && (pos == 3 || pos == 4) {
			if c != '0' && c != '1' {
				return nil, fmt.Errorf("invalid arc flag %q at offset %d", c, i)
			}
			cur.args = append(cur.args, float64(c-'0'))
			argIndex++
			i++
			continue
		}

		m := numberPattern.FindString(d[i:])
		if m == "" {
			return nil, fmt.Errorf("invalid path data %q at offset %d", d[i:], i)
		}
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", m, err)
		}
		cur.args = append(cur.args, v)
		argIndex++
		i += len(m)
	}

	for _, s := range segs {
		if n := arity[s.upper()]; (n == 0 && len(s.args) > 0) || (n > 0 && (len(s.args) == 0 || len(s.args)%n != 0)) {
			return nil, fmt.Errorf("command '%c' has %d arguments, expected a multiple of %d", s.cmd, len(s.args), n)
		}
	}

	if len(segs) > 0 && segs[0].cmd == 'm' {
		first := segment{cmd: 'M', args: segs[0].args[:2]}
		rest := segs[0].args[2:]
		if len(rest) > 0 {
			segs[0] = segment{cmd: 'l', args: rest}
			segs = append([]segment{first}, segs...)
		} else {
			segs[0] = first
		}
	}
	return segs, nil
}

// transform maps icon coordinates into glyph space. The y axis is flipped
// so that the glyph's top edge lands on the font ascent.
type transform struct {
	minX, minY float64
	scale      float64
	ascent     float64
	round      float64
}

func (t transform) x(v float64) float64  { return t.rnd((v - t.minX) * t.scale) }
func (t transform) y(v float64) float64  { return t.rnd(t.ascent - (v-t.minY)*t.scale) }
func (t transform) dx(v float64) float64 { return t.rnd(v * t.scale) }
func (t transform) dy(v float64) float64 { return t.rnd(-v * t.scale) }

func (t transform) rnd(v float64) float64 {
	v = math.Round(v*t.round) / t.round
	if v == 0 {
		return 0
	}
	return v
}

// apply transforms every segment in place.
func (t transform) apply(segs []segment) {
	for si := range segs {
		s := &segs[si]
		rel := s.relative()
		px, py := t.x, t.y
		if rel {
			px, py = t.dx, t.dy
		}

		switch s.upper() {
		case 'H':
			for i := range s.args {
				s.args[i] = px(s.args[i])
			}
		case 'V':
			for i := range s.args {
				s.args[i] = py(s.args[i])
			}
		case 'A':
			for i := 0; i < len(s.args); i += 7 {
				a := s.args[i : i+7]
				a[0] = t.dx(a[0])
				a[1] = t.dx(a[1])
				a[2] = -a[2]
				a[4] = 1 - a[4]
				a[5] = px(a[5])
				a[6] = py(a[6])
			}
		default:
			for i := 0; i+1 < len(s.args); i += 2 {
				s.args[i] = px(s.args[i])
				s.args[i+1] = py(s.args[i+1])
			}
		}
	}
}

// formatPath serializes segments back into compact path data.
func formatPath(segs []segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteByte(s.cmd)
		for i, v := range s.args {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	return sb.String()
}
