// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/log"
)

// maxLoggedBody caps the request body echoed into a log record.
const maxLoggedBody = 1024

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

// RequestLoggerMiddleware logs every request while enabled, and requests slower
// than slowQueriesThreshold when it is non-zero.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowQueriesThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled.Load() && slowQueriesThreshold == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var body []byte
			if r.Body != nil {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("unexpected body read error", "err", err)
					http.Error(w, "body: "+err.Error(), http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			start := time.Now()
			sw := &statusWriter{w, http.StatusOK}
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			if !enabled.Load() && duration <= slowQueriesThreshold {
				return
			}
			if len(body) > maxLoggedBody {
				body = append(body[:maxLoggedBody:maxLoggedBody], "..."...)
			}
			logger.Info("API Request",
				"RequestID", RequestID(r),
				"DurationMs", duration.Milliseconds(),
				"Status", sw.status,
				"URI", r.URL.String(),
				"Method", r.Method,
				"Body", string(body),
			)
		})
	}
}
