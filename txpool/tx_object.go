// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"github.com/tidwall/btree"

	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
)

// txObject wraps a pooled tx with its arrival order.
type txObject struct {
	*tx.Transaction
	seq       uint64
	timeAdded int64
}

func byArrival(a, b interface{}) bool {
	return a.(*txObject).seq < b.(*txObject).seq
}

// txObjectMap indexes pooled txs by id and keeps them in arrival order.
type txObjectMap struct {
	byID    map[tfnet.Bytes32]*txObject
	ordered *btree.BTree
	nextSeq uint64
}

func newTxObjectMap() *txObjectMap {
	return &txObjectMap{
		byID:    make(map[tfnet.Bytes32]*txObject),
		ordered: btree.NewNonConcurrent(byArrival),
	}
}

func (m *txObjectMap) Contains(id tfnet.Bytes32) bool {
	_, ok := m.byID[id]
	return ok
}

func (m *txObjectMap) Add(trx *tx.Transaction, now int64) bool {
	id := trx.ID()
	if _, ok := m.byID[id]; ok {
		return false
	}
	obj := &txObject{Transaction: trx, seq: m.nextSeq, timeAdded: now}
	m.nextSeq++
	m.byID[id] = obj
	m.ordered.Set(obj)
	return true
}

func (m *txObjectMap) Get(id tfnet.Bytes32) *txObject {
	return m.byID[id]
}

func (m *txObjectMap) Remove(id tfnet.Bytes32) bool {
	obj, ok := m.byID[id]
	if !ok {
		return false
	}
	delete(m.byID, id)
	m.ordered.Delete(obj)
	return true
}

func (m *txObjectMap) Len() int {
	return len(m.byID)
}

// Objects returns pooled objects in arrival order.
func (m *txObjectMap) Objects() []*txObject {
	objs := make([]*txObject, 0, m.ordered.Len())
	m.ordered.Ascend(nil, func(i interface{}) bool {
		objs = append(objs, i.(*txObject))
		return true
	})
	return objs
}

// ToTxs returns pooled txs in arrival order, at most limit if limit > 0.
func (m *txObjectMap) ToTxs(limit int) tx.Transactions {
	txs := make(tx.Transactions, 0, m.ordered.Len())
	m.ordered.Ascend(nil, func(i interface{}) bool {
		if limit > 0 && len(txs) >= limit {
			return false
		}
		txs = append(txs, i.(*txObject).Transaction)
		return true
	})
	return txs
}
