// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tfnet/tfnet"
)

// Transactions a slice of transactions.
type Transactions []*Transaction

// RootHash computes merkle root hash of transactions.
func (txs Transactions) RootHash() tfnet.Bytes32 {
	return deriveRoot(derivableTxs(txs))
}

type derivableTxs Transactions

func (txs derivableTxs) Len() int {
	return len(txs)
}

func (txs derivableTxs) EncodeIndex(i int, w *bytes.Buffer) {
	if err := rlp.Encode(w, txs[i]); err != nil {
		panic(err)
	}
}
