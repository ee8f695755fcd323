// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

// ResolvedTransaction a transaction bound to the contract method it calls.
type ResolvedTransaction struct {
	tx       *tx.Transaction
	Sender   tfnet.Principal
	Contract *builtin.Contract
	Method   *builtin.NativeMethod
	Args     []value.Value
}

// ResolveTransaction resolves the called contract and method of tx and checks its arguments.
func ResolveTransaction(trx *tx.Transaction, b *builtin.Builtins) (*ResolvedTransaction, error) {
	if trx == nil {
		return nil, errors.New("nil tx")
	}
	sender := trx.Sender()
	if sender.IsZero() || sender.IsContract() {
		return nil, errors.New("sender must be a standard principal")
	}
	contract, method, err := resolveMethod(b, trx.Contract(), trx.Function())
	if err != nil {
		return nil, err
	}
	if method.ReadOnly {
		return nil, errors.Errorf("%s is read-only", method.Name)
	}
	args := trx.Args()
	if err := method.CheckArgs(args); err != nil {
		return nil, err
	}
	return &ResolvedTransaction{
		tx:       trx,
		Sender:   sender,
		Contract: contract,
		Method:   method,
		Args:     args,
	}, nil
}

func resolveMethod(b *builtin.Builtins, contractName, fn string) (*builtin.Contract, *builtin.NativeMethod, error) {
	contract, err := b.Resolve(contractName)
	if err != nil {
		return nil, nil, err
	}
	method, ok := contract.Method(fn)
	if !ok {
		return nil, nil, errors.Errorf("function %s not found in %s", fn, contract.Name)
	}
	return contract, method, nil
}
