package svgfont

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// shape is the outline of one icon in its own coordinate system.
type shape struct {
	minX, minY    float64
	width, height float64
	segments      []segment
	// transformed lists the elements whose transform attribute was not
	// applied to the outline.
	transformed []string
}

// skippedContainers hold content that is not painted directly.
var skippedContainers = map[string]bool{
	"defs": true, "clipPath": true, "mask": true, "symbol": true,
	"title": true, "desc": true, "metadata": true, "style": true,
}

// parseShape reads an SVG document and collects the outlines of its path and
// basic shape elements.
func parseShape(data []byte) (*shape, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	s := &shape{}
	seenRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed svg: %w", err)
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		attrs := attrMap(el.Attr)

		if !seenRoot {
			if el.Name.Local != "svg" {
				return nil, fmt.Errorf("root element is <%s>, expected <svg>", el.Name.Local)
			}
			if err := s.readViewport(attrs); err != nil {
				return nil, err
			}
			seenRoot = true
			continue
		}

		if skippedContainers[el.Name.Local] {
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("malformed svg: %w", err)
			}
			continue
		}

		if _, ok := attrs["transform"]; ok {
			s.transformed = append(s.transformed, el.Name.Local)
		}

		d, err := outline(el.Name.Local, attrs)
		if err != nil {
			return nil, fmt.Errorf("<%s>: %w", el.Name.Local, err)
		}
		if d == "" {
			continue
		}
		segs, err := parsePath(d)
		if err != nil {
			return nil, fmt.Errorf("<%s>: %w", el.Name.Local, err)
		}
		s.segments = append(s.segments, segs...)
	}

	if !seenRoot {
		return nil, errors.New("document has no <svg> element")
	}
	return s, nil
}

func (s *shape) readViewport(attrs map[string]string) error {
	if vb, ok := attrs["viewBox"]; ok {
		nums, err := numbers(vb)
		if err != nil || len(nums) != 4 {
			return fmt.Errorf("invalid viewBox %q", vb)
		}
		s.minX, s.minY, s.width, s.height = nums[0], nums[1], nums[2], nums[3]
	} else {
		w, werr := length(attrs["width"])
		h, herr := length(attrs["height"])
		if werr != nil || herr != nil {
			return errors.New("svg needs a viewBox or numeric width and height")
		}
		s.width, s.height = w, h
	}
	if s.width <= 0 || s.height <= 0 {
		return fmt.Errorf("svg has an empty viewport %gx%g", s.width, s.height)
	}
	return nil
}

// outline converts a drawable element into path data. Elements that draw
// nothing yield an empty string.
func outline(name string, a map[string]string) (string, error) {
	f := func(key string) float64 {
		v, _ := length(a[key])
		return v
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	switch name {
	case "path":
		return a["d"], nil
	case "rect":
		x, y, w, h := f("x"), f("y"), f("width"), f("height")
		if w <= 0 || h <= 0 {
			return "", nil
		}
		return fmt.Sprintf("M%s %sH%sV%sH%sZ", num(x), num(y), num(x+w), num(y+h), num(x)), nil
	case "circle":
		cx, cy, r := f("cx"), f("cy"), f("r")
		if r <= 0 {
			return "", nil
		}
		return ellipsePath(cx, cy, r, r, num), nil
	case "ellipse":
		cx, cy, rx, ry := f("cx"), f("cy"), f("rx"), f("ry")
		if rx <= 0 || ry <= 0 {
			return "", nil
		}
		return ellipsePath(cx, cy, rx, ry, num), nil
	case "line":
		return fmt.Sprintf("M%s %sL%s %s", num(f("x1")), num(f("y1")), num(f("x2")), num(f("y2"))), nil
	case "polyline", "polygon":
		pts, err := numbers(a["points"])
		if err != nil || len(pts) < 4 || len(pts)%2 != 0 {
			return "", fmt.Errorf("invalid points %q", a["points"])
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "M%s %sL", num(pts[0]), num(pts[1]))
		for i, v := range pts[2:] {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(num(v))
		}
		if name == "polygon" {
			sb.WriteByte('Z')
		}
		return sb.String(), nil
	}
	return "", nil
}

func ellipsePath(cx, cy, rx, ry float64, num func(float64) string) string {
	return fmt.Sprintf("M%s %sA%s %s 0 1 0 %s %sA%s %s 0 1 0 %s %sZ",
		num(cx-rx), num(cy),
		num(rx), num(ry), num(cx+rx), num(cy),
		num(rx), num(ry), num(cx-rx), num(cy))
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

func numbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// length parses an SVG length, accepting a trailing "px".
func length(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
}
