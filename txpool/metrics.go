// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"github.com/vechain/tfnet/metrics"
)

var (
	metricTxPoolGauge = metrics.LazyLoadGauge("txpool_current_tx_count")
	metricBadTxCount  = metrics.LazyLoadCounterVec("txpool_bad_tx_count", []string{"reason"})
)
