// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/health"
	"github.com/vechain/tfnet/simnet"
)

func serve(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestPostLogLevel(t *testing.T) {
	var logLevel slog.LevelVar
	logLevel.Set(slog.LevelInfo)
	handler := HTTPHandler(&logLevel, &atomic.Bool{}, nil)

	rr := serve(t, handler, http.MethodPost, "/admin/loglevel", `{"level":"debug"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var response logLevelResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "debug", response.CurrentLevel)
	assert.Equal(t, slog.LevelDebug, logLevel.Level())

	rr = serve(t, handler, http.MethodPost, "/admin/loglevel", `{"level":"invalid_body"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, slog.LevelDebug, logLevel.Level())
}

func TestGetLogLevel(t *testing.T) {
	var logLevel slog.LevelVar
	handler := HTTPHandler(&logLevel, &atomic.Bool{}, nil)

	rr := serve(t, handler, http.MethodGet, "/admin/loglevel", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var response logLevelResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "info", response.CurrentLevel)
}

func TestAPILogs(t *testing.T) {
	var (
		logLevel slog.LevelVar
		enabled  atomic.Bool
	)
	handler := HTTPHandler(&logLevel, &enabled, nil)

	rr := serve(t, handler, http.MethodPost, "/admin/apilogs", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, enabled.Load())

	rr = serve(t, handler, http.MethodGet, "/admin/apilogs", "")
	assert.JSONEq(t, `{"enabled":true}`, rr.Body.String())

	rr = serve(t, handler, http.MethodPost, "/admin/apilogs", `{"enabled":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, enabled.Load())
}

func TestHealth(t *testing.T) {
	sn, err := simnet.NewDefault()
	require.NoError(t, err)
	defer sn.Close()

	var logLevel slog.LevelVar
	handler := HTTPHandler(&logLevel, &atomic.Bool{}, health.New(sn.Repo(), nil, time.Minute))

	rr := serve(t, handler, http.MethodGet, "/admin/health", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var status health.Status
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
	assert.True(t, status.Healthy)
	assert.Equal(t, sn.Genesis().ID(), status.BlockIngestion.BestBlock)

	rr = serve(t, HTTPHandler(&logLevel, &atomic.Bool{}, nil), http.MethodGet, "/admin/health", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartServer(t *testing.T) {
	var logLevel slog.LevelVar
	url, closeFn, err := StartServer("localhost:0", &logLevel, &atomic.Bool{}, nil)
	require.NoError(t, err)
	defer closeFn()

	res, err := http.Get(url + "/loglevel")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
