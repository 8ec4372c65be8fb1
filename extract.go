package typer

import (
	"errors"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// Get / GetRequired plumbing
///////////////////////////////////////////////////////////////////////////////

// Get resolves path and applies convert, one of the To* converters or a
// caller supplied one reporting false for null. Absent and null both
// yield false with a nil error.
func Get[T any](root *Container, convert func(Value) (T, bool, error), path ...Key) (T, bool, error) {
	var zero T
	raw, found, err := Resolve(root, path...)
	if err != nil || !found {
		return zero, false, err
	}
	out, ok, err := convert(raw)
	if err != nil {
		return zero, false, annotate(err, root, path)
	}
	return out, ok, nil
}

// GetRequired is Get where absence fails with ErrMissingKey and null
// fails with ErrNull.
func GetRequired[T any](root *Container, convert func(Value) (T, bool, error), path ...Key) (T, error) {
	var zero T
	if _, err := Require(root, path...); err != nil {
		return zero, err
	}
	out, ok, err := Get(root, convert, path...)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &Error{Kind: ErrNull, Path: path, Root: root, Reason: "required value is null"}
	}
	return out, nil
}

///////////////////////////////////////////////////////////////////////////////
// Converters
///////////////////////////////////////////////////////////////////////////////

// ToString converts any non-null value through Stringify.
func ToString(v Value) (string, bool, error) {
	return StringifyOrNull(v)
}

// ToInt accepts integers and canonical decimal integer strings.
func ToInt(v Value) (int64, bool, error) {
	switch v.kind {
	case KindNull:
		return 0, false, nil
	case KindInt:
		return v.i, true, nil
	case KindString:
		n, err := parseCanonicalInt(v.s)
		if err != nil {
			return 0, false, err
		}
		return n, true, nil
	default:
		return 0, false, mismatch("integer", v)
	}
}

// ToNonNegativeInt is ToInt restricted to values >= 0.
func ToNonNegativeInt(v Value) (int64, bool, error) {
	n, ok, err := ToInt(v)
	if err != nil || !ok {
		return 0, ok, err
	}
	if n < 0 {
		return 0, false, newError(ErrNegative, "could not parse non-negative integer value: %d", n)
	}
	return n, true, nil
}

// ToPositiveInt is ToInt restricted to values >= 1.
func ToPositiveInt(v Value) (int64, bool, error) {
	n, ok, err := ToInt(v)
	if err != nil || !ok {
		return 0, ok, err
	}
	if n < 1 {
		return 0, false, newError(ErrNotPositive, "integer should be positive, but is %d", n)
	}
	return n, true, nil
}

// ToFloat accepts floats, integers and strings. Strings are parsed
// leniently: the longest leading decimal number is used and a string
// without one yields 0.
func ToFloat(v Value) (float64, bool, error) {
	switch v.kind {
	case KindNull:
		return 0, false, nil
	case KindFloat:
		return v.f, true, nil
	case KindInt:
		return float64(v.i), true, nil
	case KindString:
		return parseLenientFloat(v.s), true, nil
	default:
		return 0, false, mismatch("float", v)
	}
}

// ToArray accepts any container.
func ToArray(v Value) (*Container, bool, error) {
	switch v.kind {
	case KindNull:
		return nil, false, nil
	case KindContainer:
		return v.c, true, nil
	default:
		return nil, false, mismatch("container", v)
	}
}

// ToMap accepts containers whose keys are all strings.
func ToMap(v Value) (Map, bool, error) {
	c, ok, err := ToArray(v)
	if err != nil || !ok {
		return Map{}, ok, err
	}
	m, err := AsMap(c)
	if err != nil {
		return Map{}, false, err
	}
	return m, true, nil
}

// ToList accepts containers keyed exactly 0..n-1 and returns their
// values in index order.
func ToList(v Value) ([]Value, bool, error) {
	c, ok, err := ToArray(v)
	if err != nil || !ok {
		return nil, ok, err
	}
	list, err := AssertList(c)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

func mismatch(want string, v Value) *Error {
	return newError(ErrTypeMismatch, "could not parse %s value from %s %s", want, TypeName(v), v)
}

// parseCanonicalInt accepts s only if re-formatting its integer value
// reproduces s exactly. That rejects leading zeros, "+", "-0",
// whitespace and trailing garbage, while "0" itself is accepted.
func parseCanonicalInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, newError(ErrOutOfRange, "integer string %q overflows int64", s)
		}
		return 0, newError(ErrTypeMismatch, "could not parse integer value from string %q", s)
	}
	if strconv.FormatInt(n, 10) != s {
		return 0, newError(ErrNonCanonical, "integer string %q is not in canonical form", s)
	}
	return n, nil
}

// parseLenientFloat reads the longest decimal number at the start of s,
// after leading whitespace, and returns 0 when there is none.
// Hexadecimal, "inf" and "nan" spellings are not recognised.
func parseLenientFloat(s string) float64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			end = j
		}
	}
	// ParseFloat returns ±Inf alongside ErrRange, which is the value
	// wanted for an overflowing literal.
	f, _ := strconv.ParseFloat(s[start:end], 64)
	return f
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

///////////////////////////////////////////////////////////////////////////////
// Typed getters
///////////////////////////////////////////////////////////////////////////////

func GetString(root *Container, path ...Key) (string, bool, error) {
	return Get(root, ToString, path...)
}

func GetRequiredString(root *Container, path ...Key) (string, error) {
	return GetRequired(root, ToString, path...)
}

func GetInt(root *Container, path ...Key) (int64, bool, error) {
	return Get(root, ToInt, path...)
}

func GetRequiredInt(root *Container, path ...Key) (int64, error) {
	return GetRequired(root, ToInt, path...)
}

func GetNonNegativeInt(root *Container, path ...Key) (int64, bool, error) {
	return Get(root, ToNonNegativeInt, path...)
}

func GetRequiredNonNegativeInt(root *Container, path ...Key) (int64, error) {
	return GetRequired(root, ToNonNegativeInt, path...)
}

func GetPositiveInt(root *Container, path ...Key) (int64, bool, error) {
	return Get(root, ToPositiveInt, path...)
}

func GetRequiredPositiveInt(root *Container, path ...Key) (int64, error) {
	return GetRequired(root, ToPositiveInt, path...)
}

// GetFloat is lenient with strings, see ToFloat.
func GetFloat(root *Container, path ...Key) (float64, bool, error) {
	return Get(root, ToFloat, path...)
}

func GetRequiredFloat(root *Container, path ...Key) (float64, error) {
	return GetRequired(root, ToFloat, path...)
}

// GetArray returns the container at path without checking its keys.
func GetArray(root *Container, path ...Key) (*Container, bool, error) {
	return Get(root, ToArray, path...)
}

func GetRequiredArray(root *Container, path ...Key) (*Container, error) {
	return GetRequired(root, ToArray, path...)
}

// GetMap returns the container at path as a string-keyed Map.
func GetMap(root *Container, path ...Key) (Map, bool, error) {
	return Get(root, ToMap, path...)
}

func GetRequiredMap(root *Container, path ...Key) (Map, error) {
	return GetRequired(root, ToMap, path...)
}

// GetStringMap is GetMap under the name callers coming from
// map[string]any usually look for.
func GetStringMap(root *Container, path ...Key) (Map, bool, error) {
	return Get(root, ToMap, path...)
}

func GetRequiredStringMap(root *Container, path ...Key) (Map, error) {
	return GetRequired(root, ToMap, path...)
}

// GetList returns the values of the 0..n-1 keyed container at path.
func GetList(root *Container, path ...Key) ([]Value, bool, error) {
	return Get(root, ToList, path...)
}

func GetRequiredList(root *Container, path ...Key) ([]Value, error) {
	return GetRequired(root, ToList, path...)
}
