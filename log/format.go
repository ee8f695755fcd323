// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const (
	timeFormat        = "2006-01-02T15:04:05-0700"
	termTimeFormat    = "01-02|15:04:05.000"
	termMsgJust       = 40
	termCtxMaxPadding = 40
)

func (h *TerminalHandler) format(buf []byte, r slog.Record) []byte {
	msg := escapeMessage(r.Message)
	var color string
	if h.useColor {
		switch r.Level {
		case LevelCrit:
			color = "\x1b[35m"
		case slog.LevelError:
			color = "\x1b[31m"
		case slog.LevelWarn:
			color = "\x1b[33m"
		case slog.LevelInfo:
			color = "\x1b[32m"
		case slog.LevelDebug:
			color = "\x1b[36m"
		case LevelTrace:
			color = "\x1b[34m"
		}
	}
	if color != "" {
		buf = append(buf, color...)
		buf = append(buf, LevelAlignedString(r.Level)...)
		buf = append(buf, "\x1b[0m"...)
	} else {
		buf = append(buf, LevelAlignedString(r.Level)...)
	}
	buf = append(buf, '[')
	buf = r.Time.AppendFormat(buf, termTimeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, msg...)

	n := r.NumAttrs() + len(h.attrs)
	if n > 0 && len(msg) < termMsgJust {
		buf = append(buf, strings.Repeat(" ", termMsgJust-len(msg))...)
	}
	buf = h.appendAttrs(buf, color, r)
	return append(buf, '\n')
}

func (h *TerminalHandler) appendAttrs(buf []byte, color string, r slog.Record) []byte {
	write := func(attr slog.Attr) {
		buf = append(buf, ' ')
		if color != "" {
			buf = append(buf, color...)
			buf = appendEscapeString(buf, attr.Key)
			buf = append(buf, "\x1b[0m="...)
		} else {
			buf = appendEscapeString(buf, attr.Key)
			buf = append(buf, '=')
		}
		val := FormatSlogValue(attr.Value)
		if len(val) > termCtxMaxPadding {
			val = val[:termCtxMaxPadding] + "..."
		}
		buf = appendEscapeString(buf, val)
	}
	for _, attr := range h.attrs {
		write(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		write(attr)
		return true
	})
	return buf
}

// FormatSlogValue renders an attribute value the way the terminal handler prints it.
func FormatSlogValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', 3, 64)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	}
	switch x := v.Any().(type) {
	case nil:
		return "<nil>"
	case error:
		return x.Error()
	case *big.Int:
		if x == nil {
			return "<nil>"
		}
		return x.String()
	case *uint256.Int:
		if x == nil {
			return "<nil>"
		}
		return x.Dec()
	case time.Time:
		return x.Format(timeFormat)
	case fmt.Stringer:
		if isNil(x) {
			return "<nil>"
		}
		return x.String()
	default:
		return fmt.Sprintf("%+v", x)
	}
}

// escapeMessage keeps log lines single-lined.
func escapeMessage(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strconv.Quote(s)
}

func appendEscapeString(buf []byte, s string) []byte {
	needsQuoting := s == ""
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' || r == utf8.RuneError {
			needsQuoting = true
			break
		}
	}
	if needsQuoting {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}
