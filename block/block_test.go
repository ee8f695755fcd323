// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block_test

import (
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

func genesisParent() tfnet.Bytes32 {
	var id tfnet.Bytes32
	id[0], id[1], id[2], id[3] = math.MaxUint8, math.MaxUint8, math.MaxUint8, math.MaxUint8
	return id
}

func TestBlock(t *testing.T) {
	deployer := tfnet.MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	trx := tx.ContractCall("letter-of-credit", "issue-letter-of-credit", []value.Value{value.Uint(1)}, deployer)

	genesis := new(Builder).Timestamp(1000).ParentID(genesisParent()).Build()
	assert.Equal(t, uint32(0), genesis.Header().Number())
	assert.Equal(t, uint32(0), Number(genesis.Header().ID()))
	assert.Equal(t, tx.EmptyRoot, genesis.Header().TxsRoot())

	stateHash := tfnet.Blake2b([]byte("state"))
	blk := new(Builder).
		ParentID(genesis.Header().ID()).
		Timestamp(1010).
		StateHash(stateHash).
		ReceiptsRoot(tx.EmptyRoot).
		Transaction(trx).
		Build()

	h := blk.Header()
	assert.Equal(t, uint32(1), h.Number())
	assert.Equal(t, uint32(1), Number(h.ID()))
	assert.Equal(t, genesis.Header().ID(), h.ParentID())
	assert.Equal(t, uint64(1), h.TxsCount())
	assert.Equal(t, tx.Transactions{trx}.RootHash(), h.TxsRoot())
	assert.Equal(t, stateHash, h.StateHash())

	data, err := rlp.EncodeToBytes(blk)
	require.NoError(t, err)

	var decoded Block
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, h.ID(), decoded.Header().ID())
	require.Len(t, decoded.Transactions(), 1)
	assert.Equal(t, trx.ID(), decoded.Transactions()[0].ID())
}
