package typer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stringify renders any value as display text.
//
// Rules, in order:
//   - strings pass through unchanged
//   - fmt.Stringer opaques use String(), floats use their shortest
//     decimal form
//   - containers render as [k1 => v1, k2 => v2] in insertion order
//   - everything else (ints, bools, null, other opaques) is JSON encoded
//
// A container that contains itself, or an opaque that encoding/json
// rejects, fails with ErrEncoding.
func Stringify(v Value) (string, error) {
	var sb strings.Builder
	if err := stringifyTo(&sb, v, make(map[*Container]struct{})); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// StringifyOrNull is Stringify with null reported as false instead of
// being rendered.
func StringifyOrNull(v Value) (string, bool, error) {
	if v.IsNull() {
		return "", false, nil
	}
	s, err := Stringify(v)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func stringifyTo(sb *strings.Builder, v Value, active map[*Container]struct{}) error {
	switch v.kind {
	case KindString:
		sb.WriteString(v.s)
	case KindFloat:
		sb.WriteString(formatFloat(v.f))
	case KindContainer:
		return stringifyContainer(sb, v.c, active)
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindOpaque:
		if s, ok := v.o.(fmt.Stringer); ok {
			sb.WriteString(s.String())
			return nil
		}
		b, err := json.Marshal(v.o)
		if err != nil {
			return &Error{Kind: ErrEncoding, Reason: fmt.Sprintf("could not encode %T to JSON: %v", v.o, err)}
		}
		sb.Write(b)
	default:
		return &Error{Kind: ErrEncoding, Reason: fmt.Sprintf("unknown value kind %s", v.kind)}
	}
	return nil
}

func stringifyContainer(sb *strings.Builder, c *Container, active map[*Container]struct{}) error {
	if _, cyclic := active[c]; cyclic {
		return &Error{Kind: ErrEncoding, Reason: "could not encode cyclic container"}
	}
	active[c] = struct{}{}
	defer delete(active, c)

	sb.WriteByte('[')
	first := true
	for k, item := range c.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(k.String())
		sb.WriteString(" => ")
		if err := stringifyTo(sb, item, active); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

// formatFloat writes f in the shortest form that round-trips, using an
// exponent only for very small or very large magnitudes.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
