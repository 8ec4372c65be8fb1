package typer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	data := obj("a", obj("b", obj("c", 1)))

	t.Run("Found", func(t *testing.T) {
		v, found, err := Resolve(data, Name("a"), Name("b"), Name("c"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, Int(1), v)
	})

	t.Run("AbsentFinalKey", func(t *testing.T) {
		_, found, err := Resolve(data, Name("a"), Name("b"), Name("x"))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("AbsentIntermediateKey", func(t *testing.T) {
		_, found, err := Resolve(data, Name("x"), Name("b"), Name("c"))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		_, _, err := Resolve(obj("a", 1), Name("a"), Name("x"), Name("c"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrShapeMismatch)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, KeyPath{Name("a"), Name("x"), Name("c")}, e.Path)
		assert.Contains(t, err.Error(), "key x (of a.x.c) should be a container")
		assert.Contains(t, err.Error(), "[a => 1]")
	})

	t.Run("ShapeMismatchBeatsAbsent", func(t *testing.T) {
		// "b" would be missing one level down, but "a" is not a container.
		_, _, err := Resolve(obj("a", "leaf"), Name("a"), Name("b"))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("ExplicitNullIsFound", func(t *testing.T) {
		v, found, err := Resolve(obj("a", nil), Name("a"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, v.IsNull())
	})

	t.Run("StepIntoNull", func(t *testing.T) {
		_, _, err := Resolve(obj("a", nil), Name("a"), Name("b"))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("EmptyPathIsRoot", func(t *testing.T) {
		v, found, err := Resolve(data)
		require.NoError(t, err)
		assert.True(t, found)
		c, ok := v.AsContainer()
		require.True(t, ok)
		assert.Same(t, data, c)
	})

	t.Run("IndexKeys", func(t *testing.T) {
		root := obj("items", list("a", obj("name", "b")))
		v, found, err := Resolve(root, Name("items"), Index(1), Name("name"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, Str("b"), v)

		_, found, err = Resolve(root, Name("items"), Index(2))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("NilRoot", func(t *testing.T) {
		_, found, err := Resolve(nil, Name("a"))
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestResolveAbsentOnlyWhenFinalKeyMissing(t *testing.T) {
	root := obj("a", obj("b", 1, "c", nil), "d", list(1, 2))

	tests := []struct {
		name   string
		path   KeyPath
		absent bool
	}{
		{"nested_int", KeyPath{Name("a"), Name("b")}, false},
		{"nested_null", KeyPath{Name("a"), Name("c")}, false},
		{"nested_missing", KeyPath{Name("a"), Name("z")}, true},
		{"index_present", KeyPath{Name("d"), Index(1)}, false},
		{"index_missing", KeyPath{Name("d"), Index(2)}, true},
		{"name_on_list", KeyPath{Name("d"), Name("0")}, true},
		{"index_on_map", KeyPath{Name("a"), Index(0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, found, err := Resolve(root, tt.path...)
			require.NoError(t, err)
			assert.Equal(t, tt.absent, !found)

			exists, err := Exists(root, tt.path...)
			require.NoError(t, err)
			assert.Equal(t, found, exists)
		})
	}
}

func TestRequire(t *testing.T) {
	data := obj("a", obj("b", 2))

	v, err := Require(data, Name("a"), Name("b"))
	require.NoError(t, err)
	assert.Equal(t, Int(2), v)

	_, err = Require(data, Name("a"), Name("c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "key c (of a.c) not found")
	assert.Contains(t, err.Error(), "[a => [b => 2]]")

	_, err = Require(obj("a", 1), Name("a"), Name("b"))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestExists(t *testing.T) {
	data := obj("a", obj("b", obj("c", 1)))

	ok, err := Exists(data, Name("a"), Name("b"), Name("c"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(data, Name("a"), Name("b"), Name("x"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Exists(obj("a", 1), Name("a"), Name("b"))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewPath(t *testing.T) {
	path, err := NewPath("a", 0, int64(2), Name("b"), Index(3))
	require.NoError(t, err)
	assert.Equal(t, KeyPath{Name("a"), Index(0), Index(2), Name("b"), Index(3)}, path)
	assert.Equal(t, "a.0.2.b.3", path.String())

	_, err = NewPath("a", -1)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = NewPath(1.5)
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.Panics(t, func() { MustPath(true) })
	assert.Equal(t, KeyPath{Name("x")}, MustPath("x"))
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    KeyPath
		wantErr bool
	}{
		{"root", "$", KeyPath{}, false},
		{"dotted", "$.a.b", KeyPath{Name("a"), Name("b")}, false},
		{"index", "$.items[0].name", KeyPath{Name("items"), Index(0), Name("name")}, false},
		{"bracket_name", "$['display name']", KeyPath{Name("display name")}, false},
		{"numeric_name", "$['0']", KeyPath{Name("0")}, false},
		{"negative_index", "$.items[-1]", nil, true},
		{"wildcard", "$.items[*]", nil, true},
		{"descendant", "$..name", nil, true},
		{"slice", "$.items[0:2]", nil, true},
		{"union", "$['a','b']", nil, true},
		{"syntax", "a.b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.expr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
