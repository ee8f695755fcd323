// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/tfnet/api/accounts"
	"github.com/vechain/tfnet/api/blocks"
	"github.com/vechain/tfnet/api/calls"
	"github.com/vechain/tfnet/api/middleware"
	"github.com/vechain/tfnet/api/subscriptions"
	"github.com/vechain/tfnet/api/transactions"
	"github.com/vechain/tfnet/log"
	"github.com/vechain/tfnet/simnet"
	"github.com/vechain/tfnet/txpool"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
}

// New return api router
func New(
	sn *simnet.Simnet,
	txPool *txpool.TxPool,
	miner blocks.Miner,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(sn.Genesis(), sn.Builtins()).
		Mount(router, "/accounts")
	blocks.New(sn.Repo(), miner).
		Mount(router, "/blocks")
	transactions.New(sn.Repo(), txPool).
		Mount(router, "/transactions")
	calls.New(sn).
		Mount(router, "/calls")
	subs := subscriptions.New(sn.Repo(), origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	enableReqLogger := opts.EnableReqLogger
	if enableReqLogger == nil {
		enableReqLogger = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enableReqLogger, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
