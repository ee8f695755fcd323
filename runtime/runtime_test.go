// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/lvldb"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

var (
	deployer = tfnet.MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	wallet1  = tfnet.MustParsePrincipal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG")
	wallet2  = tfnet.MustParsePrincipal("ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC")
	wallet3  = tfnet.MustParsePrincipal("ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND")
)

func newRuntime(t *testing.T) *Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(builtin.New(deployer), state.New(db), 1, 1000)
}

func verifyManagerTx(sender tfnet.Principal) *tx.Transaction {
	return tx.ContractCall(builtin.ManagerName, "verify-manager", []value.Value{
		value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000),
	}, sender)
}

func createLCTx(fee uint64) *tx.Transaction {
	return tx.ContractCall(builtin.LetterOfCreditName, "create-letter-of-credit", []value.Value{
		value.Principal(wallet1), value.Principal(wallet2), value.Uint(100000), value.ASCII("USD"), value.Uint(fee), value.Principal(wallet3),
	}, deployer)
}

func TestExecuteTransaction(t *testing.T) {
	rt := newRuntime(t)

	receipt, err := rt.ExecuteTransaction(verifyManagerTx(deployer))
	require.NoError(t, err)
	assert.True(t, receipt.Committed)
	assert.Equal(t, "(ok true)", receipt.Result.String())
	assert.Len(t, receipt.Events, 1)

	receipt, err = rt.ExecuteTransaction(createLCTx(1500))
	require.NoError(t, err)
	assert.Equal(t, "(ok u1)", receipt.Result.String())
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.letter-of-credit", receipt.Contract.String())
}

func TestErrResultReverts(t *testing.T) {
	rt := newRuntime(t)

	_, err := rt.ExecuteTransaction(verifyManagerTx(deployer))
	require.NoError(t, err)

	receipt, err := rt.ExecuteTransaction(createLCTx(10001))
	require.NoError(t, err)
	assert.False(t, receipt.Committed)
	assert.False(t, receipt.Failed())
	assert.Equal(t, "(err u203)", receipt.Result.String())
	assert.Empty(t, receipt.Events)

	count, err := rt.Call(builtin.LetterOfCreditName, "get-letter-of-credit-count", nil, deployer)
	require.NoError(t, err)
	assert.Equal(t, "u0", count.String())

	receipt, err = rt.ExecuteTransaction(createLCTx(1500))
	require.NoError(t, err)
	assert.Equal(t, "(ok u1)", receipt.Result.String())
}

func TestInvalidTransactions(t *testing.T) {
	rt := newRuntime(t)

	tests := []struct {
		name string
		tx   *tx.Transaction
	}{
		{"unknown contract", tx.ContractCall("escrow", "open", nil, deployer)},
		{"unknown function", tx.ContractCall(builtin.ManagerName, "promote", nil, deployer)},
		{"read-only function", tx.ContractCall(builtin.ManagerName, "is-verified-manager", []value.Value{value.Principal(wallet3)}, deployer)},
		{"arity", tx.ContractCall(builtin.LetterOfCreditName, "issue-letter-of-credit", nil, deployer)},
		{"arg type", tx.ContractCall(builtin.LetterOfCreditName, "issue-letter-of-credit", []value.Value{value.Bool(true)}, deployer)},
		{"contract sender", verifyManagerTx(rt.Builtins().Manager.Principal)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rt.ExecuteTransaction(tt.tx)
			assert.Error(t, err)
		})
	}
}

func TestCall(t *testing.T) {
	rt := newRuntime(t)

	v, err := rt.Call(builtin.ManagerName, "is-verified-manager", []value.Value{value.Principal(wallet3)}, deployer)
	require.NoError(t, err)
	assert.Equal(t, "false", v.String())

	_, err = rt.Call(builtin.ManagerName, "verify-manager", []value.Value{
		value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000),
	}, deployer)
	assert.Error(t, err)

	v, err = rt.Call(deployer.String()+"."+builtin.InvoiceName, "calculate-financing-amount", []value.Value{value.Uint(100000), value.Uint(300)}, deployer)
	require.NoError(t, err)
	assert.Equal(t, "(ok u97000)", v.String())

	assert.Zero(t, rt.State().Stage().Len())
}
