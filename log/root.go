// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

type rootHolder struct{ Logger }

var root atomic.Value

func init() {
	root.Store(rootHolder{&logger{slog.New(DiscardHandler())}})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(rootHolder{l})
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(rootHolder).Logger
}

// WithContext returns a logger carrying ctx that always writes through the
// current root logger, so package level loggers follow SetDefault.
func WithContext(ctx ...any) Logger {
	return &ctxLogger{ctx}
}

type ctxLogger struct {
	ctx []any
}

func (c *ctxLogger) resolve() Logger {
	return Root().With(c.ctx...)
}

func (c *ctxLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(c.ctx)+len(ctx))
	merged = append(merged, c.ctx...)
	return &ctxLogger{append(merged, ctx...)}
}

func (c *ctxLogger) Log(level slog.Level, msg string, ctx ...any) {
	c.resolve().Log(level, msg, ctx...)
}

func (c *ctxLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}

func (c *ctxLogger) Handler() slog.Handler { return c.resolve().Handler() }

func (c *ctxLogger) Trace(msg string, ctx ...any) { c.resolve().Log(LevelTrace, msg, ctx...) }
func (c *ctxLogger) Debug(msg string, ctx ...any) { c.resolve().Log(LevelDebug, msg, ctx...) }
func (c *ctxLogger) Info(msg string, ctx ...any)  { c.resolve().Log(LevelInfo, msg, ctx...) }
func (c *ctxLogger) Warn(msg string, ctx ...any)  { c.resolve().Log(LevelWarn, msg, ctx...) }
func (c *ctxLogger) Error(msg string, ctx ...any) { c.resolve().Log(LevelError, msg, ctx...) }

func (c *ctxLogger) Crit(msg string, ctx ...any) {
	c.resolve().Log(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) { Root().Log(LevelTrace, msg, ctx...) }

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) { Root().Log(LevelDebug, msg, ctx...) }

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) { Root().Log(LevelInfo, msg, ctx...) }

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) { Root().Log(LevelWarn, msg, ctx...) }

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) { Root().Log(LevelError, msg, ctx...) }

// Crit is a convenient alias for Root().Crit
func Crit(msg string, ctx ...any) {
	Root().Log(LevelCrit, msg, ctx...)
	os.Exit(1)
}
