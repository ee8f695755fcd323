// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package txpool keeps contract calls waiting to be mined.
package txpool

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/co"
	"github.com/vechain/tfnet/log"
	"github.com/vechain/tfnet/runtime"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
)

const (
	// max size of tx allowed
	MaxTxSize = 64 * 1024
)

var logger = log.WithContext("pkg", "txpool")

// Options options for tx pool.
type Options struct {
	Limit       int
	MaxLifetime time.Duration
}

// TxEvent will be posted when tx is added.
type TxEvent struct {
	Tx *tx.Transaction
}

// Pool defines the interface for the transaction pool
type Pool interface {
	Get(txID tfnet.Bytes32) *tx.Transaction
	Add(newTx *tx.Transaction) error
	Remove(txID tfnet.Bytes32) bool
	Dump() tx.Transactions
	Len() int
	SubscribeTxEvent(chan *TxEvent) event.Subscription
	Executables() tx.Transactions
	Fill(txs tx.Transactions)
	Close()
}

// TxPool maintains unprocessed transactions in arrival order.
type TxPool struct {
	options  Options
	repo     *chain.Repository
	builtins *builtin.Builtins

	mu  sync.Mutex
	all *txObjectMap

	ctx    context.Context
	cancel func()
	txFeed event.Feed
	scope  event.SubscriptionScope
	goes   co.Goes
}

var _ Pool = (*TxPool)(nil)

// New create a new TxPool instance.
// Shutdown is required to be called at end.
func New(repo *chain.Repository, builtins *builtin.Builtins, options Options) *TxPool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &TxPool{
		options:  options,
		repo:     repo,
		builtins: builtins,
		all:      newTxObjectMap(),
		ctx:      ctx,
		cancel:   cancel,
	}

	// registered before returning, so blocks mined right after New are seen
	ticker := repo.NewTicker()
	pool.goes.Go(func() { pool.housekeeping(ticker) })
	return pool
}

func (p *TxPool) housekeeping(ticker co.Waiter) {
	logger.Debug("enter housekeeping")
	defer logger.Debug("leave housekeeping")

	lifetime := time.NewTicker(time.Second)
	defer lifetime.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C():
			if removed := p.wash(time.Now()); removed > 0 {
				logger.Debug("wash done", "removed", removed, "len", p.Len())
			}
		case now := <-lifetime.C:
			if p.options.MaxLifetime > 0 {
				p.wash(now)
			}
		}
	}
}

// Close cleanup inner go routines.
func (p *TxPool) Close() {
	p.cancel()
	p.scope.Close()
	p.goes.Wait()
	logger.Debug("closed")
}

// SubscribeTxEvent receivers will receive a tx
func (p *TxPool) SubscribeTxEvent(ch chan *TxEvent) event.Subscription {
	return p.scope.Track(p.txFeed.Subscribe(ch))
}

func (p *TxPool) validateTx(trx *tx.Transaction) error {
	data, err := rlp.EncodeToBytes(trx)
	if err != nil {
		return txRejectedError{err.Error()}
	}
	if len(data) > MaxTxSize {
		return errTooLarge
	}
	if _, err := runtime.ResolveTransaction(trx, p.builtins); err != nil {
		return txRejectedError{err.Error()}
	}
	return nil
}

// Add adds new tx into pool.
// Txs that can never be executed are rejected.
func (p *TxPool) Add(newTx *tx.Transaction) (err error) {
	defer func() {
		if err != nil {
			reason := "invalid"
			switch {
			case IsErrKnownTx(err):
				reason = "known"
			case IsErrPoolFull(err):
				reason = "full"
			}
			metricBadTxCount().AddWithLabel(1, map[string]string{"reason": reason})
		}
	}()

	if err := p.validateTx(newTx); err != nil {
		return err
	}
	if _, err := p.repo.GetTransactionMeta(newTx.ID()); err == nil {
		return errKnownTx
	} else if !p.repo.IsNotFound(err) {
		return err
	}

	p.mu.Lock()
	if p.options.Limit > 0 && p.all.Len() >= p.options.Limit {
		p.mu.Unlock()
		return errPoolFull
	}
	added := p.all.Add(newTx, time.Now().UnixNano())
	p.mu.Unlock()

	if !added {
		return errKnownTx
	}
	metricTxPoolGauge().Add(1)
	logger.Debug("tx added", "id", newTx.ID())
	p.goes.Go(func() {
		p.txFeed.Send(&TxEvent{newTx})
	})
	return nil
}

// Get get pooled tx by id.
func (p *TxPool) Get(id tfnet.Bytes32) *tx.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	if obj := p.all.Get(id); obj != nil {
		return obj.Transaction
	}
	return nil
}

// Remove removes tx from pool by its ID.
func (p *TxPool) Remove(id tfnet.Bytes32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.all.Remove(id) {
		metricTxPoolGauge().Add(-1)
		logger.Debug("tx removed", "id", id)
		return true
	}
	return false
}

// Executables returns txs to be packed into the next block, in arrival order.
func (p *TxPool) Executables() tx.Transactions {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.all.ToTxs(tfnet.MaxBlockTxs)
}

// Fill fills txs into pool, ignoring invalid ones.
func (p *TxPool) Fill(txs tx.Transactions) {
	now := time.Now().UnixNano()
	for _, trx := range txs {
		if err := p.validateTx(trx); err != nil {
			continue
		}
		p.mu.Lock()
		if p.all.Add(trx, now) {
			metricTxPoolGauge().Add(1)
		}
		p.mu.Unlock()
	}
}

// Dump dumps all txs in the pool.
func (p *TxPool) Dump() tx.Transactions {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.all.ToTxs(0)
}

// Len returns count of pooled txs.
func (p *TxPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.all.Len()
}

// wash evicts txs already mined or out of lifetime.
func (p *TxPool) wash(now time.Time) (removed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, obj := range p.all.Objects() {
		expired := p.options.MaxLifetime > 0 && now.UnixNano()-obj.timeAdded > int64(p.options.MaxLifetime)
		if !expired {
			if _, err := p.repo.GetTransactionMeta(obj.ID()); err != nil {
				continue
			}
		}
		p.all.Remove(obj.ID())
		removed++
	}
	if removed > 0 {
		metricTxPoolGauge().Add(int64(-removed))
	}
	return
}
