package genlog

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"
)

// newTestLogger points the root logger at a JSON buffer for the duration of t.
func newTestLogger(t *testing.T, verbosity slog.Level) (log.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer

	originalLogger := log.Root()
	t.Cleanup(func() {
		log.SetDefault(originalLogger)
	})

	glogger := log.NewGlogHandler(log.JSONHandler(&buf))
	glogger.Verbosity(verbosity)
	log.SetDefault(log.NewLogger(glogger))

	return New(), &buf
}

func TestNewReturnsAdapter(t *testing.T) {
	logger := New()
	adapter, ok := logger.(*slogAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.inner)

	var _ log.Logger = NewWith("component", "genesis")
}

func TestLevelsReachRootHandler(t *testing.T) {
	logger, buf := newTestLogger(t, log.LevelTrace)
	logger = logger.With("component", "test")

	for _, tc := range []struct {
		msg string
		fn  func(string, ...any)
	}{
		{"trace message", logger.Trace},
		{"debug message", logger.Debug},
		{"info message", logger.Info},
		{"warn message", logger.Warn},
		{"error message", logger.Error},
	} {
		buf.Reset()
		tc.fn(tc.msg, "key", "value")
		out := buf.String()
		assert.Contains(t, out, tc.msg)
		assert.Contains(t, out, `"component":"test"`)
		assert.Contains(t, out, `"key":"value"`)
	}
}

func TestVerbosityFilters(t *testing.T) {
	logger, buf := newTestLogger(t, log.LevelInfo)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))

	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestErrorIsLoggedWithMessage(t *testing.T) {
	logger, buf := newTestLogger(t, log.LevelTrace)

	err := stacktrace.Wrap(errors.New("template has no alloc entry"))
	logger.Error("Genesis compile failed", "err", err)

	out := strings.TrimSpace(buf.String())
	assert.Contains(t, out, "Genesis compile failed")
	assert.Contains(t, out, "template has no alloc entry")
}

func TestConvertAttrs(t *testing.T) {
	err := errors.New("boom")

	got := convertAttrs("label", "domain0", "error", err, "dangling")
	require.Len(t, got, 4)
	assert.Equal(t, "label", got[0])
	assert.Equal(t, "domain0", got[1])
	_, isAttr := got[2].(slog.Attr)
	assert.True(t, isAttr)
	assert.Equal(t, "dangling", got[3])

	// Non-error values under an err key pass through.
	got = convertAttrs("errors", 3)
	assert.Equal(t, []any{"errors", 3}, got)

	assert.Empty(t, convertAttrs())

	stake := new(uint256.Int).Mul(uint256.NewInt(3_000_000_000), uint256.NewInt(1_000_000_000))
	got = convertAttrs("totalStake", stake, "missing", (*uint256.Int)(nil))
	assert.Equal(t, "3000000000000000000", got[1])
	assert.Nil(t, got[3])
}

func TestStakeLoggedAsDecimal(t *testing.T) {
	originalLogger := log.Root()
	t.Cleanup(func() {
		log.SetDefault(originalLogger)
	})

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, FormatJSON, 3))
	NewWith("component", "genesis").Info("compiled", "totalStake", uint256.NewInt(0x29a2241af62c0000))
	assert.Contains(t, buf.String(), `"totalStake":"3000000000000000000"`)
	assert.Contains(t, buf.String(), `"component":"genesis"`)
}

func TestSetup(t *testing.T) {
	originalLogger := log.Root()
	t.Cleanup(func() {
		log.SetDefault(originalLogger)
	})

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, FormatJSON, 3))
	New().Info("configured", "n", 1)
	New().Debug("filtered")
	assert.Contains(t, buf.String(), `"msg":"configured"`)
	assert.NotContains(t, buf.String(), "filtered")

	buf.Reset()
	require.NoError(t, Setup(&buf, FormatLogfmt, 4))
	New().Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	assert.Error(t, Setup(&buf, "xml", 3))
}
