// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/api/utils"
	"github.com/vechain/tfnet/health"
	"github.com/vechain/tfnet/log"
)

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

type apiLogsRequest struct {
	Enabled bool `json:"enabled"`
}

type apiLogsResponse struct {
	Enabled bool `json:"enabled"`
}

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

func getLogLevelHandler(logLevel *slog.LevelVar) utils.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) error {
		return utils.WriteJSON(w, &logLevelResponse{
			CurrentLevel: log.LevelString(logLevel.Level()),
		})
	}
}

func postLogLevelHandler(logLevel *slog.LevelVar) utils.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req logLevelRequest
		if err := utils.ParseJSON(r.Body, &req); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		level, ok := levels[req.Level]
		if !ok {
			return utils.BadRequest(errors.New("invalid verbosity level"))
		}
		logLevel.Set(level)
		log.Info("verbosity changed", "level", req.Level)

		return utils.WriteJSON(w, &logLevelResponse{
			CurrentLevel: log.LevelString(logLevel.Level()),
		})
	}
}

func getAPILogsHandler(enabled *atomic.Bool) utils.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) error {
		return utils.WriteJSON(w, &apiLogsResponse{Enabled: enabled.Load()})
	}
}

func postAPILogsHandler(enabled *atomic.Bool) utils.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req apiLogsRequest
		if err := utils.ParseJSON(r.Body, &req); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		enabled.Store(req.Enabled)
		return utils.WriteJSON(w, &apiLogsResponse{Enabled: enabled.Load()})
	}
}

func healthHandler(h *health.Health) utils.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) error {
		status := h.Status()
		if !status.Healthy {
			w.Header().Set("Content-Type", utils.JSONContentType)
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		return utils.WriteJSON(w, status)
	}
}
