// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"

	"github.com/vechain/tfnet/api/blocks"
	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/co"
	"github.com/vechain/tfnet/log"
	"github.com/vechain/tfnet/simnet"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/txpool"
)

var logger = log.WithContext("pkg", "solo")

type Options struct {
	// OnDemand mines a block as soon as a tx arrives.
	OnDemand bool
	// BlockInterval is the mining period when not on demand. Zero disables interval mining.
	BlockInterval time.Duration
}

// TxPool is the subset of the tx pool the miner drains.
type TxPool interface {
	Executables() tx.Transactions
	Remove(txID tfnet.Bytes32) bool
	SubscribeTxEvent(chan *txpool.TxEvent) event.Subscription
}

// Solo mines blocks of a standalone simnet.
type Solo struct {
	sn      *simnet.Simnet
	txPool  TxPool
	options Options

	mu sync.Mutex
}

var _ blocks.Miner = (*Solo)(nil)

// New returns Solo instance
func New(sn *simnet.Simnet, txPool TxPool, options Options) *Solo {
	return &Solo{
		sn:      sn,
		txPool:  txPool,
		options: options,
	}
}

// MinePending mines a block with the executable txs of the pool.
// Mined and rejected txs leave the pool.
func (s *Solo) MinePending() (*block.Block, tx.Receipts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blk, receipts, rejected, err := s.sn.MineAdoptable(s.txPool.Executables())
	if err != nil {
		return nil, nil, err
	}
	for _, trx := range blk.Transactions() {
		s.txPool.Remove(trx.ID())
	}
	for id, err := range rejected {
		logger.Debug("tx rejected", "id", id, "err", err)
		s.txPool.Remove(id)
	}
	logger.Info("📦 new block mined",
		"txs", len(receipts),
		"rejected", len(rejected),
		"id", blk.Header().ID().AbbrevString(),
		"number", blk.Header().Number(),
	)
	return blk, receipts, nil
}

// Mine mines exactly txs, bypassing the pool.
func (s *Solo) Mine(txs tx.Transactions) (*block.Block, tx.Receipts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blk, receipts, err := s.sn.MineBlock(txs...)
	if err != nil {
		return nil, nil, err
	}
	for _, trx := range txs {
		s.txPool.Remove(trx.ID())
	}
	logger.Info("📦 new block mined", "txs", len(receipts), "id", blk.Header().ID().AbbrevString(), "number", blk.Header().Number())
	return blk, receipts, nil
}

// Run runs the miner until ctx is done.
func (s *Solo) Run(ctx context.Context) error {
	goes := &co.Goes{}

	defer func() {
		<-ctx.Done()
		goes.Wait()
	}()

	logger.Info("prepared to mine blocks", "onDemand", s.options.OnDemand, "interval", s.options.BlockInterval)

	if s.options.OnDemand {
		goes.Go(func() { s.onDemandLoop(ctx) })
	} else if s.options.BlockInterval > 0 {
		goes.Go(func() { s.intervalLoop(ctx) })
	}
	return nil
}

func (s *Solo) intervalLoop(ctx context.Context) {
	ticker := time.NewTicker(s.options.BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval mining service......")
			return
		case <-ticker.C:
			if _, _, err := s.MinePending(); err != nil {
				logger.Error("failed to mine block", "err", err)
			}
		}
	}
}

func (s *Solo) onDemandLoop(ctx context.Context) {
	txEvCh := make(chan *txpool.TxEvent, 16)
	sub := s.txPool.SubscribeTxEvent(txEvCh)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping on-demand mining service......")
			return
		case <-sub.Err():
			return
		case <-txEvCh:
			// drain events that piled up while mining, one block takes them all
		drain:
			for {
				select {
				case <-txEvCh:
				default:
					break drain
				}
			}
			if _, _, err := s.MinePending(); err != nil {
				logger.Error("failed to mine block", "err", err)
			}
		}
	}
}
