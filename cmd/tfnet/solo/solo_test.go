// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/simnet"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/txpool"
	"github.com/vechain/tfnet/value"
)

func newSolo(t *testing.T, opts Options) (*Solo, *simnet.Simnet, *txpool.TxPool) {
	sn, err := simnet.NewDefault()
	require.NoError(t, err)
	pool := txpool.New(sn.Repo(), sn.Builtins(), txpool.Options{Limit: 100, MaxLifetime: time.Hour})
	t.Cleanup(func() {
		pool.Close()
		sn.Close()
	})
	return New(sn, pool, opts), sn, pool
}

func account(t *testing.T, sn *simnet.Simnet, name string) tfnet.Principal {
	p, ok := sn.Account(name)
	require.True(t, ok)
	return p
}

func verifyManager(t *testing.T, sn *simnet.Simnet) *tx.Transaction {
	return tx.ContractCall("trade-finance-manager", "verify-manager", []value.Value{
		value.Principal(account(t, sn, "wallet_3")), value.ASCII("Manager One"), value.ASCII("MGR001"), value.Uint(2000),
	}, sn.Deployer())
}

func TestMinePending(t *testing.T) {
	solo, sn, pool := newSolo(t, Options{})

	trx := verifyManager(t, sn)
	require.NoError(t, pool.Add(trx))

	blk, receipts, err := solo.MinePending()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), blk.Header().Number())
	require.Len(t, receipts, 1)
	assert.True(t, receipts[0].Committed)
	assert.Equal(t, 0, pool.Len())

	// empty pool still mines an empty block
	blk, receipts, err = solo.MinePending()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), blk.Header().Number())
	assert.Empty(t, receipts)
}

func TestMineExact(t *testing.T) {
	solo, sn, pool := newSolo(t, Options{})

	trx := verifyManager(t, sn)
	require.NoError(t, pool.Add(trx))

	_, receipts, err := solo.Mine(tx.Transactions{trx})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Nil(t, pool.Get(trx.ID()))

	// a known tx can not be mined twice
	_, _, err = solo.Mine(tx.Transactions{trx})
	assert.Error(t, err)
	assert.Equal(t, uint32(1), sn.BlockHeight())
}

func TestOnDemand(t *testing.T) {
	solo, sn, pool := newSolo(t, Options{OnDemand: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		solo.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// let the loop subscribe before the tx arrives
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, pool.Add(verifyManager(t, sn)))

	assert.Eventually(t, func() bool {
		return sn.BlockHeight() == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return pool.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestInterval(t *testing.T) {
	solo, sn, _ := newSolo(t, Options{BlockInterval: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		solo.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return sn.BlockHeight() >= 2
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	<-done
}
