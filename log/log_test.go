// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))

	l.Info("block mined", "number", 3, "txs", 2)
	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO ["))
	assert.Contains(t, line, "block mined")
	assert.Contains(t, line, "number=3")
	assert.Contains(t, line, "txs=2")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)
	l := NewLogger(NewTerminalHandlerWithLevel(out, &lvl, false))

	l.Info("hidden")
	l.Debug("hidden")
	assert.Empty(t, out.String())

	l.Warn("shown")
	assert.Contains(t, out.String(), "shown")

	out.Reset()
	lvl.Set(LevelTrace)
	l.Trace("trace shown")
	assert.Contains(t, out.String(), "TRACE")
}

func TestTerminalHandlerWith(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false)).With("pkg", "simnet")
	l.Info("hello", "err", errors.New("bad thing"))
	assert.Contains(t, out.String(), "pkg=simnet")
	assert.Contains(t, out.String(), `err="bad thing"`)
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Error("settle", "amount", uint256.NewInt(97000))

	var m map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &m))
	assert.Equal(t, "error", m["lvl"])
	assert.Equal(t, "settle", m["msg"])
	assert.Equal(t, "97000", m["amount"])
	assert.Contains(t, m, "t")
}

func TestLogfmtHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(LogfmtHandler(out))
	l.Debug("x", "k", "v")
	assert.Contains(t, out.String(), "lvl=debug")
	assert.Contains(t, out.String(), "k=v")
}

func TestWithContextFollowsRoot(t *testing.T) {
	pkgLogger := WithContext("pkg", "test")

	out := new(bytes.Buffer)
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandler(out, false)))
	defer SetDefault(prev)

	pkgLogger.Info("after set default")
	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "after set default")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(5))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}

func TestOddAttrs(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("odd", "k")
	assert.Contains(t, out.String(), errorKey)
}
