// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package simnet is a simulated trade-finance ledger that mines blocks on demand.
package simnet

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/genesis"
	"github.com/vechain/tfnet/kv"
	"github.com/vechain/tfnet/log"
	"github.com/vechain/tfnet/lvldb"
	"github.com/vechain/tfnet/runtime"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

var logger = log.WithContext("pkg", "simnet")

// blockTimeStep is the timestamp increment between mined blocks, in seconds.
const blockTimeStep = uint64(tfnet.BlockInterval / 1e9)

// Simnet mines blocks of contract calls synchronously.
// It's safe for concurrent use, mining is serialized.
type Simnet struct {
	mu       sync.RWMutex
	db       kv.Store
	closer   func() error
	genesis  *genesis.Genesis
	repo     *chain.Repository
	builtins *builtin.Builtins

	nonceMu sync.Mutex
	nonces  map[tfnet.Principal]uint64
}

// New creates a simnet on db, building the genesis block if db is empty.
func New(gen *genesis.Genesis, db kv.Store) (*Simnet, error) {
	// genesis is built against empty storage
	mem, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	defer mem.Close()
	genesisBlock, genesisReceipts, genesisStage, err := gen.Build(mem)
	if err != nil {
		return nil, errors.Wrap(err, "build genesis")
	}

	repo, err := chain.NewRepository(db, genesisBlock, genesisReceipts)
	if err != nil {
		return nil, err
	}
	// genesis storage is written only while the chain has no other block
	if repo.BestBlockSummary().Header.Number() == 0 {
		if err := commitStage(db, genesisStage); err != nil {
			return nil, err
		}
	}

	return &Simnet{
		db:       db,
		genesis:  gen,
		repo:     repo,
		builtins: builtin.New(gen.Deployer()),
		nonces:   make(map[tfnet.Principal]uint64),
	}, nil
}

// NewDefault creates an in-memory devnet.
func NewDefault() (*Simnet, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	sn, err := New(genesis.NewDevnet(), db)
	if err != nil {
		db.Close()
		return nil, err
	}
	sn.closer = db.Close
	return sn, nil
}

// Close releases the in-memory db created by NewDefault.
func (s *Simnet) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

func commitStage(db kv.Store, stage *state.Stage) error {
	bulk := db.Bulk()
	if err := stage.Commit(bulk); err != nil {
		return errors.Wrap(err, "commit state")
	}
	return bulk.Write()
}

func (s *Simnet) Genesis() *genesis.Genesis      { return s.genesis }
func (s *Simnet) Repo() *chain.Repository        { return s.repo }
func (s *Simnet) Builtins() *builtin.Builtins    { return s.builtins }
func (s *Simnet) Deployer() tfnet.Principal      { return s.genesis.Deployer() }
func (s *Simnet) Accounts() []genesis.Account    { return s.genesis.Accounts() }
func (s *Simnet) BestBlock() *chain.BlockSummary { return s.repo.BestBlockSummary() }

// BlockHeight returns the number of the best block.
func (s *Simnet) BlockHeight() uint32 {
	return s.repo.BestBlockSummary().Header.Number()
}

// Account returns the principal of a named account, e.g. "wallet_1".
func (s *Simnet) Account(name string) (tfnet.Principal, bool) {
	for _, acc := range s.genesis.Accounts() {
		if acc.Name == name {
			return acc.Principal, true
		}
	}
	return tfnet.Principal{}, false
}

// ContractCall builds a call sent by sender, stamped with the sender's next nonce.
// Nonces already taken by a mined tx with the same call are skipped, so a call
// that once returned an error can be sent again.
func (s *Simnet) ContractCall(contract, fn string, args []value.Value, sender tfnet.Principal) *tx.Transaction {
	s.nonceMu.Lock()
	defer s.nonceMu.Unlock()

	nonce := s.nonces[sender]
	for {
		trx := new(tx.Builder).
			Sender(sender).
			Contract(contract).
			Function(fn).
			Args(args...).
			Nonce(nonce).
			Build()
		if _, err := s.repo.GetTransactionMeta(trx.ID()); err == nil {
			nonce++
			continue
		}
		s.nonces[sender] = nonce + 1
		return trx
	}
}

// MineBlock packs txs into a new block on top of the best block.
// If any tx is invalid, nothing is mined and an error returned.
func (s *Simnet) MineBlock(txs ...*tx.Transaction) (*block.Block, tx.Receipts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := s.repo.BestBlockSummary()
	f := s.schedule(best.Header)
	for i, trx := range txs {
		if err := f.Adopt(trx); err != nil {
			return nil, nil, errors.WithMessagef(err, "tx #%d %v", i, trx.ID())
		}
	}
	return s.commit(f)
}

// MineAdoptable packs whatever txs can be adopted, returning the rejected ones.
// It mines an empty block when no tx is given.
func (s *Simnet) MineAdoptable(txs tx.Transactions) (*block.Block, tx.Receipts, map[tfnet.Bytes32]error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := s.repo.BestBlockSummary()
	f := s.schedule(best.Header)
	rejected := make(map[tfnet.Bytes32]error)
	for _, trx := range txs {
		if err := f.Adopt(trx); err != nil {
			if err == errTxsFull {
				break
			}
			rejected[trx.ID()] = err
		}
	}
	blk, receipts, err := s.commit(f)
	return blk, receipts, rejected, err
}

func (s *Simnet) schedule(parent *block.Header) *flow {
	rt := runtime.New(s.builtins, state.New(s.db), parent.Number()+1, parent.Timestamp()+blockTimeStep)
	return newFlow(s.repo, parent, rt)
}

func (s *Simnet) commit(f *flow) (*block.Block, tx.Receipts, error) {
	blk, stage, receipts := f.Pack()

	if err := commitStage(s.db, stage); err != nil {
		return nil, nil, err
	}
	if err := s.repo.AddBlock(blk, receipts); err != nil {
		return nil, nil, errors.Wrap(err, "add block")
	}

	metricBlocksMined().Add(1)
	metricBlockTxs().Observe(int64(len(receipts)))
	for _, r := range receipts {
		metricTxResults().AddWithLabel(1, map[string]string{"result": txResult(r)})
	}
	logger.Debug("block mined", "number", blk.Header().Number(), "id", blk.Header().ID(), "txs", len(receipts))
	return blk, receipts, nil
}

// CallReadOnlyFn calls a read-only function against the best state.
// The call reads a db snapshot, so it never blocks mining.
func (s *Simnet) CallReadOnlyFn(contract, fn string, args []value.Value, sender tfnet.Principal) (value.Value, error) {
	s.mu.RLock()
	best := s.repo.BestBlockSummary().Header
	snap := s.db.Snapshot()
	s.mu.RUnlock()
	defer snap.Release()

	rt := runtime.New(s.builtins, state.New(snap), best.Number(), best.Timestamp())
	return rt.Call(contract, fn, args, sender)
}
