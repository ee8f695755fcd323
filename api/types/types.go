// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package types holds JSON forms shared by the api endpoints.
package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

// JSONBlockSummary block header in JSON.
type JSONBlockSummary struct {
	Number       uint32        `json:"number"`
	ID           tfnet.Bytes32 `json:"id"`
	ParentID     tfnet.Bytes32 `json:"parentID"`
	Timestamp    uint64        `json:"timestamp"`
	TxsRoot      tfnet.Bytes32 `json:"txsRoot"`
	StateHash    tfnet.Bytes32 `json:"stateHash"`
	ReceiptsRoot tfnet.Bytes32 `json:"receiptsRoot"`
	TxsCount     uint64        `json:"txsCount"`
}

// NewJSONBlockSummary converts a header.
func NewJSONBlockSummary(header *block.Header) *JSONBlockSummary {
	return &JSONBlockSummary{
		Number:       header.Number(),
		ID:           header.ID(),
		ParentID:     header.ParentID(),
		Timestamp:    header.Timestamp(),
		TxsRoot:      header.TxsRoot(),
		StateHash:    header.StateHash(),
		ReceiptsRoot: header.ReceiptsRoot(),
		TxsCount:     header.TxsCount(),
	}
}

// TxMeta locates a mined tx.
type TxMeta struct {
	BlockID        tfnet.Bytes32 `json:"blockID"`
	BlockNumber    uint32        `json:"blockNumber"`
	BlockTimestamp uint64        `json:"blockTimestamp"`
}

// NewTxMeta builds the meta of a tx in the given block.
func NewTxMeta(header *block.Header) *TxMeta {
	return &TxMeta{
		BlockID:        header.ID(),
		BlockNumber:    header.Number(),
		BlockTimestamp: header.Timestamp(),
	}
}

// JSONTransaction a contract call in JSON.
type JSONTransaction struct {
	ID       tfnet.Bytes32   `json:"id"`
	Sender   tfnet.Principal `json:"sender"`
	Contract string          `json:"contract"`
	Function string          `json:"function"`
	Args     []string        `json:"args"`
	Nonce    uint64          `json:"nonce"`
	Meta     *TxMeta         `json:"meta"`
}

// NewJSONTransaction converts a tx, meta is nil for pending txs.
func NewJSONTransaction(trx *tx.Transaction, meta *TxMeta) *JSONTransaction {
	args := trx.Args()
	literals := make([]string, 0, len(args))
	for _, a := range args {
		literals = append(literals, a.String())
	}
	return &JSONTransaction{
		ID:       trx.ID(),
		Sender:   trx.Sender(),
		Contract: trx.Contract(),
		Function: trx.Function(),
		Args:     literals,
		Nonce:    trx.Nonce(),
		Meta:     meta,
	}
}

// JSONEvent an event printed by a contract.
type JSONEvent struct {
	Contract tfnet.Principal `json:"contract"`
	Topic    string          `json:"topic"`
	Value    value.Value     `json:"value"`
}

// JSONReceipt a tx receipt in JSON.
type JSONReceipt struct {
	TxID      tfnet.Bytes32   `json:"txID"`
	Contract  tfnet.Principal `json:"contract"`
	Function  string          `json:"function"`
	Committed bool            `json:"committed"`
	Result    value.Value     `json:"result"`
	Repr      string          `json:"repr"`
	Error     string          `json:"error,omitempty"`
	Events    []*JSONEvent    `json:"events"`
	Meta      *TxMeta         `json:"meta,omitempty"`
}

// NewJSONReceipt converts a receipt.
func NewJSONReceipt(r *tx.Receipt, meta *TxMeta) *JSONReceipt {
	jr := &JSONReceipt{
		TxID:      r.TxID,
		Contract:  r.Contract,
		Function:  r.Function,
		Committed: r.Committed,
		Result:    r.Result,
		Error:     r.Error,
		Events:    make([]*JSONEvent, 0, len(r.Events)),
		Meta:      meta,
	}
	if r.Result != nil {
		jr.Repr = r.Result.String()
	}
	for _, ev := range r.Events {
		jr.Events = append(jr.Events, &JSONEvent{ev.Contract, ev.Topic, ev.Value})
	}
	return jr
}

// JSONExpandedBlock block with its txs and receipts.
type JSONExpandedBlock struct {
	*JSONBlockSummary
	Transactions []*JSONEmbeddedTx `json:"transactions"`
}

// JSONEmbeddedTx a tx with its receipt, inside an expanded block.
type JSONEmbeddedTx struct {
	*JSONTransaction
	Receipt *JSONReceipt `json:"receipt"`
}

// NewJSONExpandedBlock converts a block with receipts.
func NewJSONExpandedBlock(blk *block.Block, receipts tx.Receipts) *JSONExpandedBlock {
	txs := blk.Transactions()
	embedded := make([]*JSONEmbeddedTx, 0, len(txs))
	for i, trx := range txs {
		jtx := NewJSONTransaction(trx, nil)
		var jr *JSONReceipt
		if i < len(receipts) {
			jr = NewJSONReceipt(receipts[i], nil)
		}
		embedded = append(embedded, &JSONEmbeddedTx{jtx, jr})
	}
	return &JSONExpandedBlock{
		JSONBlockSummary: NewJSONBlockSummary(blk.Header()),
		Transactions:     embedded,
	}
}

// JSONCollapsedBlock block with only tx ids.
type JSONCollapsedBlock struct {
	*JSONBlockSummary
	Transactions []tfnet.Bytes32 `json:"transactions"`
}

// NewJSONCollapsedBlock converts a block summary.
func NewJSONCollapsedBlock(summary *chain.BlockSummary) *JSONCollapsedBlock {
	txs := summary.Txs
	if txs == nil {
		txs = []tfnet.Bytes32{}
	}
	return &JSONCollapsedBlock{NewJSONBlockSummary(summary.Header), txs}
}

// SendTx describes a tx to submit, either as fields or as raw RLP.
type SendTx struct {
	Sender   *tfnet.Principal `json:"sender,omitempty"`
	Contract string           `json:"contract,omitempty"`
	Function string           `json:"function,omitempty"`
	Args     []string         `json:"args,omitempty"`
	Nonce    *uint64          `json:"nonce,omitempty"`
	Raw      hexutil.Bytes    `json:"raw,omitempty"`
}

// Transaction builds the tx. Without a nonce, defaultNonce is used.
func (s *SendTx) Transaction(defaultNonce uint64) (*tx.Transaction, error) {
	if len(s.Raw) > 0 {
		if s.Sender != nil || s.Contract != "" || s.Function != "" || len(s.Args) > 0 || s.Nonce != nil {
			return nil, errors.New("raw can not be combined with other fields")
		}
		var trx tx.Transaction
		if err := rlp.DecodeBytes(s.Raw, &trx); err != nil {
			return nil, errors.WithMessage(err, "raw")
		}
		return &trx, nil
	}
	if s.Sender == nil {
		return nil, errors.New("sender: required")
	}
	if s.Contract == "" || s.Function == "" {
		return nil, errors.New("contract and function: required")
	}
	args, err := value.ParseAll(s.Args)
	if err != nil {
		return nil, errors.WithMessage(err, "args")
	}
	nonce := defaultNonce
	if s.Nonce != nil {
		nonce = *s.Nonce
	}
	return new(tx.Builder).
		Sender(*s.Sender).
		Contract(s.Contract).
		Function(s.Function).
		Args(args...).
		Nonce(nonce).
		Build(), nil
}

// RawTx RLP of a tx, in hex.
type RawTx struct {
	Raw hexutil.Bytes `json:"raw"`
}

// TxID response of a submitted tx.
type TxID struct {
	ID tfnet.Bytes32 `json:"id"`
}
