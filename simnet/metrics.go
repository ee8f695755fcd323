// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package simnet

import (
	"github.com/vechain/tfnet/metrics"
	"github.com/vechain/tfnet/tx"
)

var (
	metricBlocksMined = metrics.LazyLoadCounter("simnet_blocks_mined_count")
	metricBlockTxs    = metrics.LazyLoadHistogram("simnet_block_txs", metrics.BucketBlockTxs)
	metricTxResults   = metrics.LazyLoadCounterVec("simnet_tx_results_count", []string{"result"})
)

func txResult(r *tx.Receipt) string {
	switch {
	case r.Failed():
		return "fault"
	case r.Committed:
		return "ok"
	default:
		return "err"
	}
}
