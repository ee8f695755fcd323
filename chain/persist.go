// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/kv"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
)

const (
	txFlag      = byte(0) // flag byte of the key for saving tx blob
	receiptFlag = byte(1) // flag byte of the key for saving receipt blob
)

// BlockSummary presents block summary.
type BlockSummary struct {
	Header *block.Header
	Txs    []tfnet.Bytes32
}

// TxMeta locates a tx in the chain.
type TxMeta struct {
	BlockID tfnet.Bytes32
	Index   uint64
	// true if the tx returned (ok ...)
	Committed bool
}

// appendTxKey composes the key to access tx or receipt.
func appendTxKey(buf []byte, blockID tfnet.Bytes32, index uint64, flag byte) []byte {
	buf = append(buf, blockID[:]...)
	buf = binary.BigEndian.AppendUint64(buf, index)
	return append(buf, flag)
}

func numberKey(num uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, num)
}

func saveRLP(w kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func loadBlockSummary(r kv.Getter, id tfnet.Bytes32) (*BlockSummary, error) {
	var summary BlockSummary
	if err := loadRLP(r, id[:], &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func loadTransaction(r kv.Getter, key []byte) (*tx.Transaction, error) {
	var trx tx.Transaction
	if err := loadRLP(r, key, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

func loadReceipt(r kv.Getter, key []byte) (*tx.Receipt, error) {
	var receipt tx.Receipt
	if err := loadRLP(r, key, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func loadTxMeta(r kv.Getter, id tfnet.Bytes32) (*TxMeta, error) {
	var meta TxMeta
	if err := loadRLP(r, id[:], &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
