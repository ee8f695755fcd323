// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/vechain/tfnet/tfnet"
)

// EmptyRoot is the root hash of an empty list.
var EmptyRoot = tfnet.Bytes32(types.EmptyRootHash)

func deriveRoot(list types.DerivableList) tfnet.Bytes32 {
	if list.Len() == 0 {
		return EmptyRoot
	}
	return tfnet.Bytes32(types.DeriveSha(list, trie.NewStackTrie(nil)))
}
