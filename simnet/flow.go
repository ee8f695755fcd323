// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package simnet

import (
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/runtime"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
)

var (
	errTxsFull = errors.New("block is full")
	errKnownTx = errors.New("tx already mined")
)

// flow the flow of packing a new block.
type flow struct {
	repo     *chain.Repository
	parent   *block.Header
	runtime  *runtime.Runtime
	txs      tx.Transactions
	receipts tx.Receipts
	known    map[tfnet.Bytes32]struct{}
}

func newFlow(repo *chain.Repository, parent *block.Header, rt *runtime.Runtime) *flow {
	return &flow{
		repo:    repo,
		parent:  parent,
		runtime: rt,
		known:   make(map[tfnet.Bytes32]struct{}),
	}
}

func (f *flow) ParentHeader() *block.Header {
	return f.parent
}

func (f *flow) Number() uint32 {
	return f.runtime.BlockNumber()
}

func (f *flow) When() uint64 {
	return f.runtime.BlockTime()
}

// Adopt executes the transaction and keeps it in the block.
// An invalid transaction is rejected and leaves the flow untouched.
func (f *flow) Adopt(trx *tx.Transaction) error {
	if len(f.txs) >= tfnet.MaxBlockTxs {
		return errTxsFull
	}
	if _, ok := f.known[trx.ID()]; ok {
		return errors.New("tx already adopted")
	}
	if _, err := f.repo.GetTransactionMeta(trx.ID()); err == nil {
		return errKnownTx
	} else if !f.repo.IsNotFound(err) {
		return err
	}

	receipt, err := f.runtime.ExecuteTransaction(trx)
	if err != nil {
		return err
	}
	f.known[trx.ID()] = struct{}{}
	f.txs = append(f.txs, trx)
	f.receipts = append(f.receipts, receipt)
	return nil
}

// Pack builds the block with adopted transactions.
func (f *flow) Pack() (*block.Block, *state.Stage, tx.Receipts) {
	stage := f.runtime.State().Stage()

	builder := new(block.Builder).
		ParentID(f.parent.ID()).
		Timestamp(f.When()).
		StateHash(stage.Hash()).
		ReceiptsRoot(f.receipts.RootHash())
	for _, trx := range f.txs {
		builder.Transaction(trx)
	}
	return builder.Build(), stage, f.receipts
}
