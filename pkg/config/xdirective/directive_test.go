package xdirective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogger(t *testing.T) {
	l, err := ParseLogger(`TRACE,[sinks=sink_a:sink_b,pattern="%v"]`)
	require.NoError(t, err)

	assert.Equal(t, "TRACE", l.Threshold)
	assert.Equal(t, []string{"sink_a", "sink_b"}, l.Sinks)
	assert.Equal(t, "%v", l.Attributes["pattern"])
}

func TestParseLogger_SinksRequired(t *testing.T) {
	_, err := ParseLogger("INFO")
	require.ErrorIs(t, err, ErrMissingAttribute)
	assert.Contains(t, err.Error(), SinksAttribute)

	_, err = ParseLogger(`INFO,[pattern="%v"]`)
	assert.ErrorIs(t, err, ErrMissingAttribute)
}

func TestParseSink(t *testing.T) {
	s, err := ParseSink(`simple_file_sink_mt,[file_path="C:\library.log",truncate=false]`)
	require.NoError(t, err)

	assert.Equal(t, "simple_file_sink_mt", s.Type)
	assert.Equal(t, `C:\library.log`, s.Attributes["file_path"])
	assert.Equal(t, "false", s.Attributes["truncate"])
}

func TestParseGlobal(t *testing.T) {
	g, err := ParseGlobal("16384,[overflow_policy=block_retry,flush_interval_ms=0]")
	require.NoError(t, err)

	assert.Equal(t, "16384", g.Value)
	assert.Equal(t, Attributes{"overflow_policy": "block_retry", "flush_interval_ms": "0"}, g.Attributes)
}

func TestParseDirective_PropagatesErrors(t *testing.T) {
	_, err := ParseGlobal("")
	assert.ErrorIs(t, err, ErrEmptyLine)

	_, err = ParseSink("x,[bad]")
	assert.ErrorIs(t, err, ErrMalformedAttribute)

	_, err = ParseLogger(`"INFO`)
	assert.ErrorIs(t, err, ErrMalformedCSV)
}

func TestSplitSinkNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitSinkNames("a:b:c"))
	assert.Equal(t, []string{"a", "b"}, SplitSinkNames("a::b:"))
	assert.Empty(t, SplitSinkNames(""))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "global", KindGlobal.String())
	assert.Equal(t, "sink", KindSink.String())
	assert.Equal(t, "logger", KindLogger.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
