// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/lvldb"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/value"
)

var (
	deployer = tfnet.MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	wallet1  = tfnet.MustParsePrincipal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG")
	wallet2  = tfnet.MustParsePrincipal("ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC")
	wallet3  = tfnet.MustParsePrincipal("ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND")
)

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db)
}

func call(t *testing.T, b *Builtins, st *state.State, sender tfnet.Principal, contract *Contract, fn string, args ...value.Value) (value.Value, *Env) {
	m, ok := contract.Method(fn)
	require.True(t, ok, fn)
	require.NoError(t, m.CheckArgs(args))
	env := NewEnv(st, b, BlockContext{Number: 1}, sender, contract, args)
	ret, err := m.Call(env)
	require.NoError(t, err)
	return ret, env
}

func TestResolve(t *testing.T) {
	b := New(deployer)

	c, err := b.Resolve(LetterOfCreditName)
	require.NoError(t, err)
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.letter-of-credit", c.Principal.String())

	c2, err := b.Resolve(c.Principal.String())
	require.NoError(t, err)
	assert.Same(t, c, c2)

	_, err = b.Resolve("escrow")
	assert.True(t, IsContractNotFound(err))
	_, err = b.Resolve(wallet1.String() + ".letter-of-credit")
	assert.True(t, IsContractNotFound(err))

	assert.Len(t, b.Contracts(), 3)
}

func TestCheckArgs(t *testing.T) {
	b := New(deployer)
	m, ok := b.Manager.Method("verify-manager")
	require.True(t, ok)

	assert.NoError(t, m.CheckArgs([]value.Value{value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000)}))
	assert.Error(t, m.CheckArgs([]value.Value{value.Principal(wallet3)}))
	assert.Error(t, m.CheckArgs([]value.Value{value.Uint(1), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000)}))

	lc, _ := b.LetterOfCredit.Method("create-letter-of-credit")
	err := lc.CheckArgs([]value.Value{
		value.Principal(wallet1), value.Principal(wallet2), value.Uint(100000), value.ASCII("USDT"), value.Uint(1500), value.Principal(wallet3),
	})
	assert.Error(t, err)

	assert.Equal(t, "(define-public (revoke-manager (manager principal)))", mustMethod(t, b.Manager.Contract, "revoke-manager").Signature())
}

func mustMethod(t *testing.T, c *Contract, name string) *NativeMethod {
	m, ok := c.Method(name)
	require.True(t, ok)
	return m
}

func TestLetterOfCreditFlow(t *testing.T) {
	b := New(deployer)
	st := newState(t)

	ret, env := call(t, b, st, deployer, b.Manager.Contract, "verify-manager",
		value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000))
	assert.Equal(t, "(ok true)", ret.String())
	require.Len(t, env.Events(), 1)
	assert.Equal(t, TopicManagerVerified, env.Events()[0].Topic)

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "create-letter-of-credit",
		value.Principal(wallet1), value.Principal(wallet2), value.Uint(100000), value.ASCII("USD"), value.Uint(1500), value.Principal(wallet3))
	assert.Equal(t, "(ok u1)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "issue-letter-of-credit", value.Uint(1))
	assert.Equal(t, "(ok true)", ret.String())

	ret, _ = call(t, b, st, wallet1, b.LetterOfCredit.Contract, "present-documents", value.Uint(1), value.ASCII("Invoice-001,BOL-002"))
	assert.Equal(t, "(ok true)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "get-letter-of-credit", value.Uint(1))
	opt := ret.(value.OptionalValue)
	require.True(t, opt.IsSome())
	tuple := opt.Inner().(value.TupleValue)
	status, _ := tuple.Get("status")
	assert.Equal(t, `"documents-presented"`, status.String())
	docs, _ := tuple.Get("documents")
	assert.Equal(t, `"Invoice-001,BOL-002"`, docs.String())

	ret, _ = call(t, b, st, wallet3, b.LetterOfCredit.Contract, "accept-documents", value.Uint(1))
	assert.Equal(t, "(ok true)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "settle-letter-of-credit", value.Uint(1))
	assert.Equal(t, "(ok u85000)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "get-letter-of-credit-count")
	assert.Equal(t, "u1", ret.String())
}

func TestErrorCodes(t *testing.T) {
	b := New(deployer)
	st := newState(t)

	ret, _ := call(t, b, st, wallet1, b.Manager.Contract, "verify-manager",
		value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000))
	assert.Equal(t, "(err u100)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "create-letter-of-credit",
		value.Principal(wallet1), value.Principal(wallet2), value.Uint(100000), value.ASCII("USD"), value.Uint(1500), value.Principal(wallet3))
	assert.Equal(t, "(err u201)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "issue-letter-of-credit", value.Uint(42))
	assert.Equal(t, "(err u207)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "calculate-fee", value.Uint(100000), value.Uint(10001))
	assert.Equal(t, "(err u203)", ret.String())

	ret, _ = call(t, b, st, deployer, b.Invoice.Contract, "calculate-financing-amount", value.Uint(100000), value.Uint(300))
	assert.Equal(t, "(ok u97000)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "get-letter-of-credit", value.Uint(7))
	assert.Equal(t, "none", ret.String())
}

func TestInvoiceFlow(t *testing.T) {
	b := New(deployer)
	st := newState(t)

	call(t, b, st, deployer, b.Manager.Contract, "verify-manager",
		value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000))

	ret, _ := call(t, b, st, deployer, b.Invoice.Contract, "create-invoice-financing",
		value.Principal(wallet1), value.Principal(wallet2), value.Uint(100000), value.Uint(300), value.Principal(wallet3))
	assert.Equal(t, "(ok u1)", ret.String())

	ret, _ = call(t, b, st, wallet1, b.Invoice.Contract, "approve-invoice-financing", value.Uint(1))
	assert.Equal(t, "(err u300)", ret.String())

	ret, _ = call(t, b, st, wallet2, b.Invoice.Contract, "approve-invoice-financing", value.Uint(1))
	assert.Equal(t, "(ok u97000)", ret.String())

	ret, _ = call(t, b, st, wallet1, b.Invoice.Contract, "settle-invoice-financing", value.Uint(1))
	assert.Equal(t, "(ok true)", ret.String())

	ret, _ = call(t, b, st, deployer, b.Invoice.Contract, "get-invoice-financing", value.Uint(1))
	tuple := ret.(value.OptionalValue).Inner().(value.TupleValue)
	financed, _ := tuple.Get("financed-amount")
	assert.Equal(t, "u97000", financed.String())
}

func TestRevokedManager(t *testing.T) {
	b := New(deployer)
	st := newState(t)

	ret, _ := call(t, b, st, deployer, b.Manager.Contract, "verify-manager",
		value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000))
	assert.Equal(t, "(ok true)", ret.String())
	ret, _ = call(t, b, st, deployer, b.Manager.Contract, "revoke-manager", value.Principal(wallet3))
	assert.Equal(t, "(ok true)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "create-letter-of-credit",
		value.Principal(wallet1), value.Principal(wallet2), value.Uint(100000), value.ASCII("USD"), value.Uint(1500), value.Principal(wallet3))
	assert.Equal(t, "(err u201)", ret.String())

	ret, _ = call(t, b, st, deployer, b.LetterOfCredit.Contract, "get-letter-of-credit-count")
	assert.Equal(t, "u0", ret.String())
}

func TestPresentEmptyDocuments(t *testing.T) {
	b := New(deployer)
	st := newState(t)

	// unknown id wins over empty docs
	ret, _ := call(t, b, st, wallet1, b.LetterOfCredit.Contract, "present-documents", value.Uint(42), value.ASCII(""))
	assert.Equal(t, "(err u207)", ret.String())

	call(t, b, st, deployer, b.Manager.Contract, "verify-manager",
		value.Principal(wallet3), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000))
	call(t, b, st, deployer, b.LetterOfCredit.Contract, "create-letter-of-credit",
		value.Principal(wallet1), value.Principal(wallet2), value.Uint(100000), value.ASCII("USD"), value.Uint(1500), value.Principal(wallet3))
	call(t, b, st, deployer, b.LetterOfCredit.Contract, "issue-letter-of-credit", value.Uint(1))

	ret, _ = call(t, b, st, wallet2, b.LetterOfCredit.Contract, "present-documents", value.Uint(1), value.ASCII(""))
	assert.Equal(t, "(err u200)", ret.String())
	ret, _ = call(t, b, st, wallet1, b.LetterOfCredit.Contract, "present-documents", value.Uint(1), value.ASCII(""))
	assert.Equal(t, "(err u208)", ret.String())
}
