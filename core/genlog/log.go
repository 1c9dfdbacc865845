// Package genlog builds the loggers used across the compiler and its CLI.
package genlog

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
	zkrlog "github.com/zircuit-labs/zkr-go-common/log"
)

// Output formats accepted by Setup.
const (
	FormatTerminal = "terminal"
	FormatJSON     = "json"
	FormatLogfmt   = "logfmt"
)

// Setup installs the root handler: the given format, filtered at the legacy
// geth verbosity (0 crit through 5 trace).
func Setup(w io.Writer, format string, verbosity int) error {
	var handler slog.Handler
	switch format {
	case FormatTerminal, "":
		handler = log.NewTerminalHandler(w, false)
	case FormatJSON:
		handler = log.JSONHandler(w)
	case FormatLogfmt:
		handler = log.LogfmtHandler(w)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(log.FromLegacyLevel(verbosity))
	log.SetDefault(log.NewLogger(glogger))
	return nil
}

// New creates a logger that inherits the root logger's format and verbosity.
//
// Errors logged under an "err..." key are expanded with their stack trace.
func New() log.Logger {
	enrichedHandler := zkrlog.NewLoggableErrorHandler(log.Root().Handler())
	return NewAdapter(slog.New(enrichedHandler))
}

// NewWith creates a logger with additional context attributes.
func NewWith(ctx ...any) log.Logger {
	return New().With(ctx...)
}
