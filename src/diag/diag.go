// Package diag carries non-fatal validation failures to the host.
package diag

import (
	"evilboard/src/logx"
	"fmt"
)

// numeric codes, stable across releases
const (
	CodeInvalidMove        = 2826
	CodeInvalidOrientation = 5482
	CodeInvalidPosition    = 6482
	CodeInvalidStart       = 7263
	CodeInvalidConfig      = 8272
)

type Reporter interface {
	Report(code int, msg string, value any)
}

type ReporterFunc func(code int, msg string, value any)

func (f ReporterFunc) Report(code int, msg string, value any) { f(code, msg, value) }

// Func adapts a host handler.
func Func(fn func(code int, msg string, value any)) Reporter {
	if fn == nil {
		return Silent()
	}
	return ReporterFunc(fn)
}

type console struct {
	logger logx.Logger
}

// Console logs every report as a warning.
func Console(logger logx.Logger) Reporter {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &console{logger: logger}
}

func (c *console) Report(code int, msg string, value any) {
	c.logger.Warnf("%s", Format(code, msg, value))
}

type silent struct{}

func Silent() Reporter { return silent{} }

func (silent) Report(int, string, any) {}

// FromName resolves the show_errors setting.
func FromName(name string, logger logx.Logger) Reporter {
	if name == "silent" {
		return Silent()
	}
	return Console(logger)
}

func Format(code int, msg string, value any) string {
	if value == nil {
		return fmt.Sprintf("Chessboard Error %d: %s", code, msg)
	}
	return fmt.Sprintf("Chessboard Error %d: %s (%v)", code, msg, value)
}
