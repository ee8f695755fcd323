// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/cache"
	"github.com/vechain/tfnet/co"
	"github.com/vechain/tfnet/kv"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
)

const (
	hdrStoreName     kv.Bucket = "chain.hdr"   // for block summaries
	bodyStoreName    kv.Bucket = "chain.body"  // for txs and receipts
	numStoreName     kv.Bucket = "chain.num"   // for number => block id
	propStoreName    kv.Bucket = "chain.props" // for property-named blocks such as best block
	txIndexStoreName kv.Bucket = "chain.txi"   // for tx metadata
)

var bestBlockIDKey = []byte("best-block-id")

// Repository stores block headers, txs and receipts of a linear chain.
//
// It's thread-safe.
type Repository struct {
	db kv.Store

	hdrStore  kv.Getter
	bodyStore kv.Getter
	numStore  kv.Getter
	propStore kv.Getter
	txIndexer kv.Getter

	genesis     *block.Block
	bestSummary atomic.Pointer[BlockSummary]
	tick        co.Signal

	caches struct {
		summaries *cache.LRU
		txs       *cache.LRU
		receipts  *cache.LRU
	}
}

// NewRepository create an instance of repository.
// An empty db is initialized with the genesis block, otherwise the stored genesis must match.
func NewRepository(db kv.Store, genesis *block.Block, genesisReceipts tx.Receipts) (*Repository, error) {
	if genesis.Header().Number() != 0 {
		return nil, errors.New("genesis number != 0")
	}

	repo := &Repository{
		db:        db,
		hdrStore:  hdrStoreName.NewGetter(db),
		bodyStore: bodyStoreName.NewGetter(db),
		numStore:  numStoreName.NewGetter(db),
		propStore: propStoreName.NewGetter(db),
		txIndexer: txIndexStoreName.NewGetter(db),
		genesis:   genesis,
	}
	repo.caches.summaries = cache.MustNewLRU(512)
	repo.caches.txs = cache.MustNewLRU(2048)
	repo.caches.receipts = cache.MustNewLRU(2048)

	val, err := repo.propStore.Get(bestBlockIDKey)
	if err != nil {
		if !repo.propStore.IsNotFound(err) {
			return nil, err
		}
		if err := repo.saveBlock(genesis, genesisReceipts); err != nil {
			return nil, err
		}
		return repo, nil
	}

	existingGenesisID, err := repo.GetBlockIDByNumber(0)
	if err != nil {
		return nil, errors.Wrap(err, "get existing genesis id")
	}
	if existingGenesisID != genesis.Header().ID() {
		return nil, errors.New("genesis mismatch")
	}
	summary, err := repo.GetBlockSummary(tfnet.BytesToBytes32(val))
	if err != nil {
		return nil, errors.Wrap(err, "get best block")
	}
	repo.bestSummary.Store(summary)
	return repo, nil
}

// GenesisBlock returns genesis block.
func (r *Repository) GenesisBlock() *block.Block {
	return r.genesis
}

// BestBlockSummary returns the summary of the best block.
func (r *Repository) BestBlockSummary() *BlockSummary {
	return r.bestSummary.Load()
}

func (r *Repository) saveBlock(blk *block.Block, receipts tx.Receipts) error {
	var (
		header        = blk.Header()
		id            = header.ID()
		txs           = blk.Transactions()
		txIDs         = make([]tfnet.Bytes32, 0, len(txs))
		bulk          = r.db.Bulk()
		hdrPutter     = hdrStoreName.NewPutter(bulk)
		bodyPutter    = bodyStoreName.NewPutter(bulk)
		numPutter     = numStoreName.NewPutter(bulk)
		propPutter    = propStoreName.NewPutter(bulk)
		txIndexPutter = txIndexStoreName.NewPutter(bulk)
		keyBuf        []byte
	)
	if len(txs) != len(receipts) {
		return errors.New("txs and receipts count mismatch")
	}

	for i, trx := range txs {
		txid := trx.ID()
		txIDs = append(txIDs, txid)

		if err := saveRLP(txIndexPutter, txid[:], &TxMeta{
			BlockID:   id,
			Index:     uint64(i),
			Committed: receipts[i].Committed,
		}); err != nil {
			return err
		}

		keyBuf = appendTxKey(keyBuf[:0], id, uint64(i), txFlag)
		if err := saveRLP(bodyPutter, keyBuf, trx); err != nil {
			return err
		}
		r.caches.txs.Add(string(keyBuf), trx)

		keyBuf = appendTxKey(keyBuf[:0], id, uint64(i), receiptFlag)
		if err := saveRLP(bodyPutter, keyBuf, receipts[i]); err != nil {
			return err
		}
		r.caches.receipts.Add(string(keyBuf), receipts[i])
	}

	summary := BlockSummary{header, txIDs}
	if err := saveRLP(hdrPutter, id[:], &summary); err != nil {
		return err
	}
	if err := numPutter.Put(numberKey(header.Number()), id[:]); err != nil {
		return err
	}
	if err := propPutter.Put(bestBlockIDKey, id[:]); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return err
	}

	r.caches.summaries.Add(id, &summary)
	r.bestSummary.Store(&summary)
	metricBestBlock().Set(int64(header.Number()))
	r.tick.Broadcast()
	return nil
}

// AddBlock appends a new block with its receipts on top of the best block.
func (r *Repository) AddBlock(newBlock *block.Block, receipts tx.Receipts) error {
	best := r.BestBlockSummary()
	if newBlock.Header().ParentID() != best.Header.ID() {
		return errors.New("parent is not the best block")
	}
	return r.saveBlock(newBlock, receipts)
}

// GetBlockSummary get block summary by block id.
func (r *Repository) GetBlockSummary(id tfnet.Bytes32) (*BlockSummary, error) {
	summary, cached, err := r.caches.summaries.GetOrLoad(id, func() (any, error) {
		return loadBlockSummary(r.hdrStore, id)
	})
	if err != nil {
		return nil, err
	}
	r.reportCacheStats("block-summary", r.caches.summaries, cached)
	return summary.(*BlockSummary), nil
}

// GetBlockIDByNumber returns the id of the block at num.
func (r *Repository) GetBlockIDByNumber(num uint32) (tfnet.Bytes32, error) {
	val, err := r.numStore.Get(numberKey(num))
	if err != nil {
		return tfnet.Bytes32{}, err
	}
	return tfnet.BytesToBytes32(val), nil
}

// GetBlockSummaryByNumber get block summary by block number.
func (r *Repository) GetBlockSummaryByNumber(num uint32) (*BlockSummary, error) {
	id, err := r.GetBlockIDByNumber(num)
	if err != nil {
		return nil, err
	}
	return r.GetBlockSummary(id)
}

func (r *Repository) getTransaction(key []byte) (*tx.Transaction, error) {
	trx, cached, err := r.caches.txs.GetOrLoad(string(key), func() (any, error) {
		return loadTransaction(r.bodyStore, key)
	})
	if err != nil {
		return nil, err
	}
	r.reportCacheStats("transaction", r.caches.txs, cached)
	return trx.(*tx.Transaction), nil
}

func (r *Repository) getReceipt(key []byte) (*tx.Receipt, error) {
	receipt, cached, err := r.caches.receipts.GetOrLoad(string(key), func() (any, error) {
		return loadReceipt(r.bodyStore, key)
	})
	if err != nil {
		return nil, err
	}
	r.reportCacheStats("receipt", r.caches.receipts, cached)
	return receipt.(*tx.Receipt), nil
}

func (r *Repository) reportCacheStats(typ string, c *cache.LRU, cached bool) {
	if !cached {
		return
	}
	if s, changed := c.Stats().Snapshot(); changed {
		metricCacheHitMiss().SetWithLabel(s.Hit, map[string]string{"type": typ, "event": "hit"})
		metricCacheHitMiss().SetWithLabel(s.Miss, map[string]string{"type": typ, "event": "miss"})
	}
}

// GetBlockTransactions get all transactions of the block for given block id.
func (r *Repository) GetBlockTransactions(id tfnet.Bytes32) (tx.Transactions, error) {
	summary, err := r.GetBlockSummary(id)
	if err != nil {
		return nil, err
	}
	if len(summary.Txs) == 0 {
		return nil, nil
	}
	txs := make(tx.Transactions, len(summary.Txs))
	var key []byte
	for i := range summary.Txs {
		key = appendTxKey(key[:0], id, uint64(i), txFlag)
		if txs[i], err = r.getTransaction(key); err != nil {
			return nil, err
		}
	}
	return txs, nil
}

// GetBlockReceipts get all tx receipts of the block for given block id.
func (r *Repository) GetBlockReceipts(id tfnet.Bytes32) (tx.Receipts, error) {
	summary, err := r.GetBlockSummary(id)
	if err != nil {
		return nil, err
	}
	if len(summary.Txs) == 0 {
		return nil, nil
	}
	receipts := make(tx.Receipts, len(summary.Txs))
	var key []byte
	for i := range summary.Txs {
		key = appendTxKey(key[:0], id, uint64(i), receiptFlag)
		if receipts[i], err = r.getReceipt(key); err != nil {
			return nil, err
		}
	}
	return receipts, nil
}

// GetBlock get block by id.
func (r *Repository) GetBlock(id tfnet.Bytes32) (*block.Block, error) {
	summary, err := r.GetBlockSummary(id)
	if err != nil {
		return nil, err
	}
	txs, err := r.GetBlockTransactions(id)
	if err != nil {
		return nil, err
	}
	return block.New(summary.Header, txs), nil
}

// GetTransactionMeta returns where the tx was included.
func (r *Repository) GetTransactionMeta(txID tfnet.Bytes32) (*TxMeta, error) {
	return loadTxMeta(r.txIndexer, txID)
}

// GetTransaction returns the tx and its meta by tx id.
func (r *Repository) GetTransaction(txID tfnet.Bytes32) (*tx.Transaction, *TxMeta, error) {
	meta, err := r.GetTransactionMeta(txID)
	if err != nil {
		return nil, nil, err
	}
	trx, err := r.getTransaction(appendTxKey(nil, meta.BlockID, meta.Index, txFlag))
	if err != nil {
		return nil, nil, err
	}
	return trx, meta, nil
}

// GetTransactionReceipt returns the receipt of a tx by tx id.
func (r *Repository) GetTransactionReceipt(txID tfnet.Bytes32) (*tx.Receipt, *TxMeta, error) {
	meta, err := r.GetTransactionMeta(txID)
	if err != nil {
		return nil, nil, err
	}
	receipt, err := r.getReceipt(appendTxKey(nil, meta.BlockID, meta.Index, receiptFlag))
	if err != nil {
		return nil, nil, err
	}
	return receipt, meta, nil
}

// IsNotFound returns if the given error means not found.
func (r *Repository) IsNotFound(err error) bool {
	return r.db.IsNotFound(err)
}

// NewTicker create a signal Waiter to receive event that the best block changed.
func (r *Repository) NewTicker() co.Waiter {
	return r.tick.NewWaiter()
}
