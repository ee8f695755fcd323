// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/log"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

var logger = log.WithContext("pkg", "runtime")

// Runtime is to support transaction execution.
type Runtime struct {
	builtins *builtin.Builtins
	state    *state.State

	// block env
	blockNumber uint32
	blockTime   uint64
}

// New create a Runtime object.
func New(b *builtin.Builtins, state *state.State, blockNumber uint32, blockTime uint64) *Runtime {
	return &Runtime{
		builtins:    b,
		state:       state,
		blockNumber: blockNumber,
		blockTime:   blockTime,
	}
}

func (rt *Runtime) State() *state.State         { return rt.state }
func (rt *Runtime) Builtins() *builtin.Builtins { return rt.builtins }
func (rt *Runtime) BlockNumber() uint32         { return rt.blockNumber }
func (rt *Runtime) BlockTime() uint64           { return rt.blockTime }

func (rt *Runtime) blockContext() builtin.BlockContext {
	return builtin.BlockContext{Number: rt.blockNumber, Time: rt.blockTime}
}

// ExecuteTransaction executes a transaction.
// If an error returned, the tx is invalid and state is untouched.
// A call answering (err ...) or faulting is reverted, but still gets a receipt.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	resolved, err := ResolveTransaction(trx, rt.builtins)
	if err != nil {
		return nil, err
	}
	return rt.execute(resolved), nil
}

func (rt *Runtime) execute(r *ResolvedTransaction) *tx.Receipt {
	receipt := &tx.Receipt{
		TxID:     r.tx.ID(),
		Contract: r.Contract.Principal,
		Function: r.Method.Name,
	}

	checkpoint := rt.state.NewCheckpoint()
	env := builtin.NewEnv(rt.state, rt.builtins, rt.blockContext(), r.Sender, r.Contract, r.Args)
	ret, err := r.Method.Call(env)
	if err != nil {
		rt.state.RevertTo(checkpoint)
		receipt.Error = err.Error()
		logger.Debug("tx faulted", "id", receipt.TxID, "fn", r.Method.Name, "err", err)
		return receipt
	}

	receipt.Result = ret
	if resp := ret.(value.ResponseValue); !resp.IsOK() {
		rt.state.RevertTo(checkpoint)
		return receipt
	}
	receipt.Committed = true
	receipt.Events = env.Events()
	return receipt
}

// Call executes a read-only function. State changes are always discarded.
func (rt *Runtime) Call(contractName, fn string, args []value.Value, sender tfnet.Principal) (value.Value, error) {
	contract, method, err := resolveMethod(rt.builtins, contractName, fn)
	if err != nil {
		return nil, err
	}
	if !method.ReadOnly {
		return nil, errors.Errorf("%s is not read-only", method.Name)
	}
	if err := method.CheckArgs(args); err != nil {
		return nil, err
	}

	checkpoint := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(checkpoint)

	env := builtin.NewEnv(rt.state, rt.builtins, rt.blockContext(), sender, contract, args)
	return method.Call(env)
}
