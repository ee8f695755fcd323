// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tfnet/admin"
	"github.com/vechain/tfnet/api"
	"github.com/vechain/tfnet/cmd/tfnet/solo"
	"github.com/vechain/tfnet/health"
	"github.com/vechain/tfnet/log"
	"github.com/vechain/tfnet/metrics"
	"github.com/vechain/tfnet/txpool"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "tfnet",
		Usage:     "Trade finance simnet",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			persistFlag,
			genesisFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			onDemandFlag,
			blockIntervalFlag,
			txPoolLimitFlag,
			txPoolLifetimeFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			healthStallTimeoutFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	logLevel := initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	sn, instanceDir, closeSimnet, err := openSimnet(ctx, gene)
	if err != nil {
		return err
	}
	defer closeSimnet()

	txPool := txpool.New(sn.Repo(), sn.Builtins(), txpool.Options{
		Limit:       int(ctx.Uint64(txPoolLimitFlag.Name)),
		MaxLifetime: time.Duration(ctx.Uint64(txPoolLifetimeFlag.Name)) * time.Second,
	})
	defer func() { log.Info("closing tx pool..."); txPool.Close() }()

	miner := solo.New(sn, txPool, solo.Options{
		OnDemand:      ctx.Bool(onDemandFlag.Name),
		BlockInterval: time.Duration(ctx.Uint64(blockIntervalFlag.Name)) * time.Second,
	})

	enableAPILogs := &atomic.Bool{}
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	apiHandler, apiCloser := api.New(sn, txPool, miner, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        metrics.Enabled(),
	})
	defer func() { log.Info("stopping API server..."); apiCloser() }()

	var handler http.Handler = apiHandler
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	handler = requestBodyLimit(handler)

	apiListener, err := listen(ctx.String(apiAddrFlag.Name), "API")
	if err != nil {
		return err
	}
	defer apiListener.Close()
	apiURL := "http://" + apiListener.Addr().String() + "/"

	metricsURL := ""
	var metricsListener net.Listener
	if metrics.Enabled() {
		if metricsListener, err = listen(ctx.String(metricsAddrFlag.Name), "metrics"); err != nil {
			return err
		}
		defer metricsListener.Close()
		metricsURL = "http://" + metricsListener.Addr().String() + "/metrics"
	}

	adminURL := ""
	var nodeHealth *health.Health
	if ctx.Bool(enableAdminFlag.Name) {
		nodeHealth = health.New(sn.Repo(), txPool, time.Duration(ctx.Uint64(healthStallTimeoutFlag.Name))*time.Second)
		url, closeAdmin, err := admin.StartServer(ctx.String(adminAddrFlag.Name), logLevel, enableAPILogs, nodeHealth)
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping admin server..."); closeAdmin() }()
		adminURL = url
	}

	printStartupMessage(gene, sn, instanceDir, apiURL, metricsURL, adminURL)

	group, groupCtx := errgroup.WithContext(exitSignal)
	group.Go(func() error {
		return serve(groupCtx, "API", &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}, apiListener)
	})
	if metricsListener != nil {
		group.Go(func() error {
			return serve(groupCtx, "metrics", newMetricsServer(), metricsListener)
		})
	}
	if nodeHealth != nil {
		group.Go(func() error {
			nodeHealth.Run(groupCtx)
			return nil
		})
	}
	group.Go(func() error {
		return miner.Run(groupCtx)
	})

	return group.Wait()
}
