package genlog

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	zkrlog "github.com/zircuit-labs/zkr-go-common/log"
)

// slogAdapter wraps a *slog.Logger to implement log.Logger.
type slogAdapter struct {
	inner *slog.Logger
}

// NewAdapter creates a log.Logger adapter around a *slog.Logger
func NewAdapter(sl *slog.Logger) log.Logger {
	return &slogAdapter{inner: sl}
}

// convertAttrs prepares key/value pairs for the handler. Error values stored
// under a key starting with "err" become zkrlog.ErrAttr, which carries the
// stack trace. Stake amounts (*uint256.Int) are written as decimal wei so
// every output format agrees.
func convertAttrs(attrs ...any) []any {
	if len(attrs) == 0 {
		return attrs
	}

	result := make([]any, 0, len(attrs))
	for i := 0; i < len(attrs); i += 2 {
		if i+1 >= len(attrs) {
			result = append(result, attrs[i])
			break
		}
		key, value := attrs[i], attrs[i+1]
		switch v := value.(type) {
		case error:
			if keyStr, ok := key.(string); ok && v != nil && strings.HasPrefix(strings.ToLower(keyStr), "err") {
				result = append(result, zkrlog.ErrAttr(v))
				continue
			}
		case *uint256.Int:
			if v != nil {
				result = append(result, key, v.Dec())
				continue
			}
		}
		result = append(result, key, value)
	}
	return result
}

func (a *slogAdapter) With(ctx ...any) log.Logger {
	return &slogAdapter{inner: a.inner.With(convertAttrs(ctx...)...)}
}

// New is identical to With.
func (a *slogAdapter) New(ctx ...any) log.Logger {
	return a.With(ctx...)
}

func (a *slogAdapter) Log(level slog.Level, msg string, ctx ...any) {
	a.Write(level, msg, ctx...)
}

func (a *slogAdapter) Trace(msg string, ctx ...any) {
	a.Write(log.LevelTrace, msg, ctx...)
}

func (a *slogAdapter) Debug(msg string, ctx ...any) {
	a.inner.Debug(msg, convertAttrs(ctx...)...)
}

func (a *slogAdapter) Info(msg string, ctx ...any) {
	a.inner.Info(msg, convertAttrs(ctx...)...)
}

func (a *slogAdapter) Warn(msg string, ctx ...any) {
	a.inner.Warn(msg, convertAttrs(ctx...)...)
}

func (a *slogAdapter) Error(msg string, ctx ...any) {
	a.inner.Error(msg, convertAttrs(ctx...)...)
}

// Crit logs at log.LevelCrit and exits.
func (a *slogAdapter) Crit(msg string, ctx ...any) {
	a.inner.Log(context.Background(), log.LevelCrit, msg, convertAttrs(ctx...)...)
	os.Exit(1)
}

func (a *slogAdapter) Write(level slog.Level, msg string, attrs ...any) {
	if !a.inner.Enabled(context.Background(), level) {
		return
	}
	a.inner.Log(context.Background(), level, msg, convertAttrs(attrs...)...)
}

func (a *slogAdapter) Enabled(ctx context.Context, level slog.Level) bool {
	return a.inner.Enabled(ctx, level)
}

func (a *slogAdapter) Handler() slog.Handler {
	return a.inner.Handler()
}
