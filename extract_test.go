package typer

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var k = Name("k")

func TestGetInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantOK  bool
		wantErr error
	}{
		{"int", 12, 12, true, nil},
		{"negative_int", -12, -12, true, nil},
		{"numeric_string", "10", 10, true, nil},
		{"zero_string", "0", 0, true, nil},
		{"negative_string", "-5", -5, true, nil},
		{"leading_zero", "01", 0, false, ErrNonCanonical},
		{"double_zero", "00", 0, false, ErrNonCanonical},
		{"negative_leading_zero", "-01", 0, false, ErrNonCanonical},
		{"negative_zero", "-0", 0, false, ErrNonCanonical},
		{"plus_sign", "+1", 0, false, ErrNonCanonical},
		{"overflow", "9223372036854775808", 0, false, ErrOutOfRange},
		{"non_numeric", "x", 0, false, ErrTypeMismatch},
		{"whitespace", " 1", 0, false, ErrTypeMismatch},
		{"trailing_garbage", "1a", 0, false, ErrTypeMismatch},
		{"decimal_string", "1.5", 0, false, ErrTypeMismatch},
		{"empty_string", "", 0, false, ErrTypeMismatch},
		{"float", 1.0, 0, false, ErrTypeMismatch},
		{"bool", true, 0, false, ErrTypeMismatch},
		{"container", list(1), 0, false, ErrTypeMismatch},
		{"null", nil, 0, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := GetInt(obj("k", tt.value), k)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetIntNonCanonicalIsInvalidValue(t *testing.T) {
	_, _, err := GetInt(obj("k", "01"), k)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestCanonicalIntRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 7, 10, 42, -42, 1000000, -9223372036854775808, 9223372036854775807} {
		s := strconv.FormatInt(n, 10)
		got, ok, err := GetInt(obj("k", s), k)
		require.NoError(t, err, s)
		require.True(t, ok)
		assert.Equal(t, s, strconv.FormatInt(got, 10))
	}
}

func TestLeadingZeroStringsAlwaysRejected(t *testing.T) {
	getters := map[string]func(*Container, ...Key) (int64, bool, error){
		"GetInt":            GetInt,
		"GetNonNegativeInt": GetNonNegativeInt,
		"GetPositiveInt":    GetPositiveInt,
	}
	for name, get := range getters {
		for _, s := range []string{"01", "00", "007", "-01", "-00"} {
			_, ok, err := get(obj("k", s), k)
			assert.Error(t, err, "%s(%q)", name, s)
			assert.False(t, ok)
		}
	}
}

func TestGetNonNegativeInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantOK  bool
		wantErr error
	}{
		{"null", nil, 0, false, nil},
		{"zero_int", 0, 0, true, nil},
		{"positive_int", 3, 3, true, nil},
		{"zero_string", "0", 0, true, nil},
		{"positive_string", "5", 5, true, nil},
		{"leading_zero", "01", 0, false, ErrInvalidValue},
		{"negative_int", -1, 0, false, ErrNegative},
		{"negative_string", "-2", 0, false, ErrNegative},
		{"non_numeric", "x", 0, false, ErrTypeMismatch},
		{"float", 2.0, 0, false, ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := GetNonNegativeInt(obj("k", tt.value), k)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("NegativeIsInvalidValue", func(t *testing.T) {
		_, _, err := GetNonNegativeInt(obj("k", -1), k)
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}

func TestGetPositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantOK  bool
		wantErr error
	}{
		{"null", nil, 0, false, nil},
		{"positive_int", 7, 7, true, nil},
		{"positive_string", "11", 11, true, nil},
		{"zero_int", 0, 0, false, ErrNotPositive},
		{"zero_string", "0", 0, false, ErrNotPositive},
		{"negative_int", -1, 0, false, ErrNotPositive},
		{"negative_string", "-3", 0, false, ErrNotPositive},
		{"non_numeric", "foo", 0, false, ErrTypeMismatch},
		{"bool", false, 0, false, ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := GetPositiveInt(obj("k", tt.value), k)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("ZeroMessage", func(t *testing.T) {
		_, _, err := GetPositiveInt(obj("k", 0), k)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "integer should be positive, but is 0")
	})

	t.Run("Property", func(t *testing.T) {
		for _, n := range []int64{1, 2, 99, 1 << 40} {
			got, err := GetRequiredPositiveInt(obj("k", n), k)
			require.NoError(t, err)
			assert.Equal(t, n, got)

			got, err = GetRequiredPositiveInt(obj("k", strconv.FormatInt(n, 10)), k)
			require.NoError(t, err)
			assert.Equal(t, n, got)
		}
		for _, n := range []int64{0, -1, -99} {
			_, err := GetRequiredPositiveInt(obj("k", n), k)
			assert.ErrorIs(t, err, ErrInvalidValue)

			_, err = GetRequiredPositiveInt(obj("k", strconv.FormatInt(n, 10)), k)
			assert.ErrorIs(t, err, ErrInvalidValue)
		}
	})
}

func TestGetFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    float64
		wantOK  bool
		wantErr error
	}{
		{"null", nil, 0, false, nil},
		{"float", 1.25, 1.25, true, nil},
		{"int", 3, 3.0, true, nil},
		{"numeric_string", "2.5", 2.5, true, nil},
		{"integer_string", "7", 7.0, true, nil},
		{"exponent_string", "1e3", 1000, true, nil},
		{"negative_string", "-0.5", -0.5, true, nil},
		{"leading_dot", ".5", 0.5, true, nil},
		{"leading_whitespace", "  4.5", 4.5, true, nil},
		{"trailing_garbage", "2.5kg", 2.5, true, nil},
		{"dangling_exponent", "3e", 3, true, nil},
		{"hex_is_zero_prefix", "0x1A", 0, true, nil},
		{"empty_string", "", 0, true, nil},
		{"bool", true, 0, false, ErrTypeMismatch},
		{"container", obj("a", 1), 0, false, ErrTypeMismatch},
		{"opaque", point{}, 0, false, ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := GetFloat(obj("k", tt.value), k)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Non-numeric strings read as 0.0 from GetFloat while every integer
// getter rejects them. Changing this is a deliberate decision.
func TestNonNumericStringsAreLenientOnlyForFloat(t *testing.T) {
	for _, s := range []string{"x", "abc", "NaN", "inf", "-", "."} {
		root := obj("k", s)

		f, ok, err := GetFloat(root, k)
		require.NoError(t, err, s)
		assert.True(t, ok)
		assert.Equal(t, 0.0, f, s)

		_, _, err = GetInt(root, k)
		assert.ErrorIs(t, err, ErrTypeMismatch, s)
		_, _, err = GetPositiveInt(root, k)
		assert.ErrorIs(t, err, ErrTypeMismatch, s)
		_, _, err = GetNonNegativeInt(root, k)
		assert.ErrorIs(t, err, ErrTypeMismatch, s)
	}
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   string
		wantOK bool
	}{
		{"string", "a", "a", true},
		{"int", 42, "42", true},
		{"float", 1.5, "1.5", true},
		{"bool", true, "true", true},
		{"container", obj("a", 1), "[a => 1]", true},
		{"null", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := GetString(obj("k", tt.value), k)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Absent", func(t *testing.T) {
		_, ok, err := GetString(obj(), k)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGetRequired(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		got, err := GetRequiredString(obj("k", "a"), k)
		require.NoError(t, err)
		assert.Equal(t, "a", got)
	})

	t.Run("StringAbsent", func(t *testing.T) {
		_, err := GetRequiredString(obj(), k)
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("StringNull", func(t *testing.T) {
		_, err := GetRequiredString(obj("k", nil), k)
		assert.ErrorIs(t, err, ErrNull)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.NotErrorIs(t, err, ErrMissingKey)
	})

	t.Run("Int", func(t *testing.T) {
		got, err := GetRequiredInt(obj("k", 7), k)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got)

		_, err = GetRequiredInt(obj("k", "x"), k)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("NonNegativeInt", func(t *testing.T) {
		got, err := GetRequiredNonNegativeInt(obj("k", 2), k)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got)

		_, err = GetRequiredNonNegativeInt(obj(), k)
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("PositiveInt", func(t *testing.T) {
		got, err := GetRequiredPositiveInt(obj("k", 5), k)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)

		_, err = GetRequiredPositiveInt(obj(), k)
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("Float", func(t *testing.T) {
		got, err := GetRequiredFloat(obj("k", 1), k)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got)

		_, err = GetRequiredFloat(obj(), k)
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("ShapeMismatchPropagates", func(t *testing.T) {
		_, err := GetRequiredInt(obj("a", 1), Name("a"), Name("b"))
		assert.ErrorIs(t, err, ErrShapeMismatch)

		_, _, err = GetInt(obj("a", 1), Name("a"), Name("b"))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestGetArray(t *testing.T) {
	data := obj("a", obj("b", list(1, 2)))

	got, ok, err := GetArray(data, Name("a"), Name("b"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, list(1, 2), got)

	_, _, err = GetArray(obj("a", 1), Name("a"), Name("b"))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, _, err = GetArray(obj("a", 1), Name("a"))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	got, err = GetRequiredArray(obj("k", list(1)), k)
	require.NoError(t, err)
	assert.Equal(t, list(1), got)

	_, ok, err = GetArray(obj("k", nil), k)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversionErrorsCarryContext(t *testing.T) {
	root := obj("outer", obj("inner", "x"))

	_, _, err := GetInt(root, Name("outer"), Name("inner"))
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KeyPath{Name("outer"), Name("inner")}, e.Path)
	assert.Same(t, root, e.Root)
	assert.Contains(t, err.Error(), "at outer.inner")
	assert.Contains(t, err.Error(), "[outer => [inner => x]]")
}

func TestCustomConverter(t *testing.T) {
	upper := func(v Value) (string, bool, error) {
		s, ok := v.AsString()
		if !ok {
			return "", false, newError(ErrTypeMismatch, "not a string")
		}
		return s + "!", true, nil
	}

	got, ok, err := Get(obj("k", "hi"), upper, k)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hi!", got)

	_, err = GetRequired(obj("k", 1), upper, k)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestScenarios(t *testing.T) {
	t.Run("NonCanonicalInt", func(t *testing.T) {
		_, _, err := GetInt(obj("k", "01"), k)
		assert.Error(t, err)
	})

	t.Run("PositiveZero", func(t *testing.T) {
		_, _, err := GetPositiveInt(obj("k", 0), k)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "0")
	})

	t.Run("StringMapWithIntKey", func(t *testing.T) {
		_, _, err := GetStringMap(obj("outer", obj(0, "a")), Name("outer"))
		assert.ErrorIs(t, err, ErrInvalidKeyType)
	})

	t.Run("RequiredListMissing", func(t *testing.T) {
		_, err := GetRequiredList(obj(), Name("path"))
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}
