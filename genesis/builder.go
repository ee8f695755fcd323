// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/kv"
	"github.com/vechain/tfnet/lvldb"
	"github.com/vechain/tfnet/runtime"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
)

// Builder helper to build genesis block.
type Builder struct {
	timestamp uint64
	deployer  tfnet.Principal

	stateProcs []func(state *state.State) error
	calls      []*tx.Transaction
	extraData  [28]byte
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// Deployer set the principal the builtin contracts are deployed under.
func (b *Builder) Deployer(p tfnet.Principal) *Builder {
	b.deployer = p
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a contract call, which will be packed into the genesis block.
func (b *Builder) Call(trx *tx.Transaction) *Builder {
	b.calls = append(b.calls, trx)
	return b
}

// ExtraData set extra data, which will be put into last 28 bytes of genesis parent id.
func (b *Builder) ExtraData(data [28]byte) *Builder {
	b.extraData = data
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (tfnet.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return tfnet.Bytes32{}, err
	}
	defer db.Close()

	blk, _, _, err := b.Build(db)
	if err != nil {
		return tfnet.Bytes32{}, err
	}
	return blk.Header().ID(), nil
}

// Build build genesis block according to presets.
// The returned stage holds the genesis storage, which is not yet committed to db.
func (b *Builder) Build(db kv.Getter) (blk *block.Block, receipts tx.Receipts, stage *state.Stage, err error) {
	if b.deployer.IsZero() {
		return nil, nil, nil, errors.New("deployer not set")
	}
	st := state.New(db)

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, nil, nil, errors.Wrap(err, "state process")
		}
	}

	rt := runtime.New(builtin.New(b.deployer), st, 0, b.timestamp)

	builder := new(block.Builder)
	for _, call := range b.calls {
		receipt, err := rt.ExecuteTransaction(call)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "genesis call")
		}
		if !receipt.Committed {
			if receipt.Failed() {
				return nil, nil, nil, errors.Errorf("genesis call %s: %s", receipt.Function, receipt.Error)
			}
			return nil, nil, nil, errors.Errorf("genesis call %s: %v", receipt.Function, receipt.Result)
		}
		receipts = append(receipts, receipt)
		builder.Transaction(call)
	}

	stage = st.Stage()

	parentID := tfnet.Bytes32{0xff, 0xff, 0xff, 0xff} //so, genesis number is 0
	copy(parentID[4:], b.extraData[:])

	return builder.
		ParentID(parentID).
		Timestamp(b.timestamp).
		StateHash(stage.Hash()).
		ReceiptsRoot(receipts.RootHash()).
		Build(), receipts, stage, nil
}
