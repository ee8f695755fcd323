// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vechain/tfnet/api/middleware"
	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/simnet"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/txpool"
)

// poolMiner mines the whole pool into one block.
type poolMiner struct {
	sn   *simnet.Simnet
	pool *txpool.TxPool
}

func (m *poolMiner) MinePending() (*block.Block, tx.Receipts, error) {
	blk, receipts, _, err := m.sn.MineAdoptable(m.pool.Executables())
	if err != nil {
		return nil, nil, err
	}
	for _, trx := range blk.Transactions() {
		m.pool.Remove(trx.ID())
	}
	return blk, receipts, nil
}

func (m *poolMiner) Mine(txs tx.Transactions) (*block.Block, tx.Receipts, error) {
	return m.sn.MineBlock(txs...)
}

type testServer struct {
	*httptest.Server
	sn *simnet.Simnet
}

func newTestServer(t *testing.T) *testServer {
	sn, err := simnet.NewDefault()
	require.NoError(t, err)
	pool := txpool.New(sn.Repo(), sn.Builtins(), txpool.Options{Limit: 100, MaxLifetime: time.Hour})

	handler, closeAPI := New(sn, pool, &poolMiner{sn, pool}, Options{
		AllowedOrigins: "*",
		EnableMetrics:  true,
	})
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		ts.Close()
		closeAPI()
		pool.Close()
		sn.Close()
	})
	return &testServer{ts, sn}
}

func (ts *testServer) do(t *testing.T, method, path, body string) (gjson.Result, int) {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Header.Get(middleware.RequestIDHeader))
	return gjson.ParseBytes(data), res.StatusCode
}

func (ts *testServer) account(t *testing.T, name string) tfnet.Principal {
	p, ok := ts.sn.Account(name)
	require.True(t, ok, name)
	return p
}

func TestGetAccounts(t *testing.T) {
	ts := newTestServer(t)

	res, code := ts.do(t, http.MethodGet, "/accounts", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, ts.sn.Deployer().String(), res.Get("deployer").String())
	assert.Equal(t, int64(4), res.Get("accounts.#").Int())
	assert.Equal(t, "trade-finance-manager", res.Get("contracts.0.name").String())
	assert.Contains(t, res.Get("contracts.1.functions").String(), "define-public (issue-letter-of-credit")
}

func TestLetterOfCreditOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	deployer := ts.sn.Deployer().String()
	manager := ts.account(t, "wallet_3").String()
	beneficiary := ts.account(t, "wallet_1").String()
	applicant := ts.account(t, "wallet_2").String()

	// direct mine with explicit txs
	res, code := ts.do(t, http.MethodPost, "/blocks", `{"transactions":[{
		"sender":"`+deployer+`",
		"contract":"trade-finance-manager",
		"function":"verify-manager",
		"args":["'`+manager+`","\"Manager One\"","\"MGR001\"","u2000"]}]}`)
	require.Equal(t, http.StatusOK, code, res.Raw)
	assert.Equal(t, int64(1), res.Get("number").Int())
	assert.Equal(t, "(ok true)", res.Get("transactions.0.receipt.repr").String())

	// through the pool
	res, code = ts.do(t, http.MethodPost, "/transactions", `{
		"sender":"`+deployer+`",
		"contract":"letter-of-credit",
		"function":"create-letter-of-credit",
		"args":["'`+beneficiary+`","'`+applicant+`","u100000","\"USD\"","u1500","'`+manager+`"]}`)
	require.Equal(t, http.StatusOK, code, res.Raw)
	txID := res.Get("id").String()

	res, code = ts.do(t, http.MethodGet, "/transactions/"+txID+"?pending=true", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "create-letter-of-credit", res.Get("function").String())
	assert.Equal(t, gjson.Null, res.Get("meta").Type)

	res, code = ts.do(t, http.MethodPost, "/blocks", "")
	require.Equal(t, http.StatusOK, code, res.Raw)
	assert.Equal(t, int64(2), res.Get("number").Int())

	res, code = ts.do(t, http.MethodGet, "/transactions/"+txID+"/receipt", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, res.Get("committed").Bool())
	assert.Equal(t, "(ok u1)", res.Get("repr").String())
	assert.Equal(t, int64(2), res.Get("meta.blockNumber").Int())

	res, code = ts.do(t, http.MethodPost, "/calls/letter-of-credit/get-letter-of-credit", `{"args":["u1"]}`)
	require.Equal(t, http.StatusOK, code, res.Raw)
	assert.Equal(t, "100000", res.Get("result.value.value.amount.value").String())
	assert.Equal(t, "2", res.Get("result.value.value.created-at.value").String())
	assert.True(t, strings.HasPrefix(res.Get("repr").String(), "(some "))

	res, code = ts.do(t, http.MethodGet, "/blocks/best?expanded=true", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, txID, res.Get("transactions.0.id").String())
}

func TestResendCallAfterErr(t *testing.T) {
	ts := newTestServer(t)
	deployer := ts.sn.Deployer().String()
	manager := ts.account(t, "wallet_3").String()
	create := `{"transactions":[{
		"sender":"` + deployer + `",
		"contract":"letter-of-credit",
		"function":"create-letter-of-credit",
		"args":["'` + ts.account(t, "wallet_1").String() + `","'` + ts.account(t, "wallet_2").String() + `","u100000","\"USD\"","u1500","'` + manager + `"]}]}`

	res, code := ts.do(t, http.MethodPost, "/blocks", create)
	require.Equal(t, http.StatusOK, code, res.Raw)
	assert.Equal(t, "(err u201)", res.Get("transactions.0.receipt.repr").String())

	res, code = ts.do(t, http.MethodPost, "/blocks", `{"transactions":[{
		"sender":"`+deployer+`",
		"contract":"trade-finance-manager",
		"function":"verify-manager",
		"args":["'`+manager+`","\"Manager One\"","\"MGR001\"","u2000"]}]}`)
	require.Equal(t, http.StatusOK, code, res.Raw)

	res, code = ts.do(t, http.MethodPost, "/blocks", create)
	require.Equal(t, http.StatusOK, code, res.Raw)
	assert.Equal(t, "(ok u1)", res.Get("transactions.0.receipt.repr").String())
	assert.Equal(t, int64(3), res.Get("number").Int())
}

func TestCallErrors(t *testing.T) {
	ts := newTestServer(t)

	res, code := ts.do(t, http.MethodPost, "/calls/invoice-financing/calculate-financing-amount", `{"args":["u100000","u300"]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "(ok u97000)", res.Get("repr").String())

	_, code = ts.do(t, http.MethodPost, "/calls/no-such-contract/f", `{}`)
	assert.Equal(t, http.StatusNotFound, code)

	_, code = ts.do(t, http.MethodPost, "/calls/letter-of-credit/issue-letter-of-credit", `{"args":["u1"]}`)
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = ts.do(t, http.MethodPost, "/calls/letter-of-credit/get-letter-of-credit", `{"args":["bad"]}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSendInvalidTransaction(t *testing.T) {
	ts := newTestServer(t)
	deployer := ts.sn.Deployer().String()

	_, code := ts.do(t, http.MethodPost, "/transactions", `{"sender":"`+deployer+`","contract":"letter-of-credit","function":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = ts.do(t, http.MethodPost, "/transactions", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, code)

	body := `{"sender":"` + deployer + `","contract":"invoice-financing","function":"approve-invoice-financing","args":["u1"],"nonce":7}`
	_, code = ts.do(t, http.MethodPost, "/transactions", body)
	assert.Equal(t, http.StatusOK, code)
	_, code = ts.do(t, http.MethodPost, "/transactions", body)
	assert.Equal(t, http.StatusConflict, code)
}

func TestGetMissingBlock(t *testing.T) {
	ts := newTestServer(t)

	res, code := ts.do(t, http.MethodGet, "/blocks/100", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, gjson.Null, res.Type)

	_, code = ts.do(t, http.MethodGet, "/blocks/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)

	res, code = ts.do(t, http.MethodGet, "/blocks/0", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, ts.sn.Genesis().ID().String(), res.Get("id").String())
}
