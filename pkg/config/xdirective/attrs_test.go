package xdirective

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_String(t *testing.T) {
	attrs := Attributes{"file_path": "/var/log/app.log"}

	v, err := attrs.String("file_path")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/app.log", v)

	_, err = attrs.String("missing")
	require.ErrorIs(t, err, ErrMissingAttribute)
	assert.Contains(t, err.Error(), "missing")

	assert.Equal(t, "def", attrs.StringOr("missing", "def"))
	assert.Equal(t, "/var/log/app.log", attrs.StringOr("file_path", "def"))
}

func TestAttributes_Bool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true}, {"True", true}, {"TRUE", true}, {"t", true}, {"Yes", true}, {"y", true},
		{"0", false}, {"False", false}, {"f", false}, {"NO", false}, {"n", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := Attributes{"b": tt.value}.Bool("b")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributes_BoolInvalid(t *testing.T) {
	_, err := Attributes{"truncate": "maybe"}.Bool("truncate")
	assert.ErrorIs(t, err, ErrInvalidAttribute)

	// 默认值只在缺失时生效
	_, err = Attributes{"truncate": "maybe"}.BoolOr("truncate", true)
	assert.ErrorIs(t, err, ErrInvalidAttribute)

	v, err := Attributes{}.BoolOr("truncate", true)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestAttributes_Int(t *testing.T) {
	v, err := Attributes{"h": "23"}.Int("h")
	require.NoError(t, err)
	assert.Equal(t, 23, v)

	_, err = Attributes{"h": "x"}.Int("h")
	assert.ErrorIs(t, err, ErrInvalidAttribute)

	_, err = Attributes{}.Int("h")
	assert.ErrorIs(t, err, ErrMissingAttribute)

	v, err = Attributes{}.IntOr("h", 24)
	require.NoError(t, err)
	assert.Equal(t, 24, v)
}

func TestAttributes_Size(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"100", 100},
		{"0", 0},
		{"64KB", 64 * 1024},
		{"10MiB", 10 * 1024 * 1024},
		{"1g", 1024 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := Attributes{"max_size": tt.value}.Size("max_size")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributes_SizeInvalid(t *testing.T) {
	for _, v := range []string{"-5", "abc", ""} {
		_, err := Attributes{"max_size": v}.Size("max_size")
		assert.ErrorIs(t, err, ErrInvalidAttribute, "value %q", v)
	}

	v, err := Attributes{}.SizeOr("max_files", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestAttributes_Duration(t *testing.T) {
	d, err := Attributes{"every": "1m30s"}.Duration("every")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = Attributes{"every": "soon"}.Duration("every")
	assert.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestAttributes_Clone(t *testing.T) {
	src := Attributes{"a": "1"}
	dst := src.Clone()
	dst["a"] = "2"
	assert.Equal(t, "1", src["a"])
}
