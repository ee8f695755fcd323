// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tfnet

import "time"

// Constants of the simulated ledger.
const (
	// BasisPointsDenominator is the unit of fee and discount rates (1 bps = 1/10000).
	BasisPointsDenominator uint64 = 10000

	// BlockInterval is the default interval between mined blocks of a running node.
	BlockInterval = 10 * time.Second

	// MaxBlockTxs caps the number of transactions packed into one block.
	MaxBlockTxs = 1024

	// MaxContractNameLength limits the name part of a contract principal.
	MaxContractNameLength = 40
)
