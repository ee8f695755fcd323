// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"sync"
	"time"

	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/tfnet"
)

type BlockIngestion struct {
	BestBlock                   tfnet.Bytes32 `json:"bestBlock"`
	BestBlockNumber             uint32        `json:"bestBlockNumber"`
	BestBlockIngestionTimestamp *time.Time    `json:"bestBlockIngestionTimestamp"`
}

type Status struct {
	Healthy        bool            `json:"healthy"`
	BlockIngestion *BlockIngestion `json:"blockIngestion"`
	PendingTxs     int             `json:"pendingTxs"`
}

// PoolSizer reports the number of pending txs.
type PoolSizer interface {
	Len() int
}

// Health tracks when the best block last changed.
type Health struct {
	repo *chain.Repository
	pool PoolSizer
	// pending txs older than this without a new block mark the node unhealthy, 0 disables the check
	stallTimeout time.Duration

	lock         sync.RWMutex
	newBestBlock time.Time
}

func New(repo *chain.Repository, pool PoolSizer, stallTimeout time.Duration) *Health {
	return &Health{
		repo:         repo,
		pool:         pool,
		stallTimeout: stallTimeout,
		newBestBlock: time.Now(),
	}
}

// Run records best block changes until ctx is done.
func (h *Health) Run(ctx context.Context) {
	ticker := h.repo.NewTicker()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			h.NewBestBlock()
		}
	}
}

func (h *Health) NewBestBlock() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.newBestBlock = time.Now()
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	ingested := h.newBestBlock
	h.lock.RUnlock()

	best := h.repo.BestBlockSummary().Header
	pending := 0
	if h.pool != nil {
		pending = h.pool.Len()
	}

	// blocks are mined on demand, so an idle chain is healthy as long as nothing waits
	healthy := pending == 0 || h.stallTimeout == 0 || time.Since(ingested) < h.stallTimeout

	return &Status{
		Healthy: healthy,
		BlockIngestion: &BlockIngestion{
			BestBlock:                   best.ID(),
			BestBlockNumber:             best.Number(),
			BestBlockIngestionTimestamp: &ingested,
		},
		PendingTxs: pending,
	}
}
