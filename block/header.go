// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tfnet/tfnet"
)

// Header contains almost all information about a block, except block body.
// It's immutable.
type Header struct {
	body headerBody

	cache struct {
		id atomic.Pointer[tfnet.Bytes32]
	}
}

// headerBody body of header
type headerBody struct {
	ParentID  tfnet.Bytes32
	Timestamp uint64
	TxsCount  uint64

	TxsRoot      tfnet.Bytes32
	StateHash    tfnet.Bytes32
	ReceiptsRoot tfnet.Bytes32
}

// ParentID returns id of parent block.
func (h *Header) ParentID() tfnet.Bytes32 {
	return h.body.ParentID
}

// Number returns sequential number of this block.
func (h *Header) Number() uint32 {
	// inferred from parent id
	return Number(h.body.ParentID) + 1
}

// Timestamp returns timestamp of this block.
func (h *Header) Timestamp() uint64 {
	return h.body.Timestamp
}

// TxsCount returns count of txs contained in this block.
func (h *Header) TxsCount() uint64 {
	return h.body.TxsCount
}

// TxsRoot returns merkle root of txs contained in this block.
func (h *Header) TxsRoot() tfnet.Bytes32 {
	return h.body.TxsRoot
}

// StateHash returns digest of the storage changes made by this block.
func (h *Header) StateHash() tfnet.Bytes32 {
	return h.body.StateHash
}

// ReceiptsRoot returns merkle root of tx receipts.
func (h *Header) ReceiptsRoot() tfnet.Bytes32 {
	return h.body.ReceiptsRoot
}

// ID computes id of block.
// The block ID is defined as: blockNumber + hash(header)[4:].
func (h *Header) ID() (id tfnet.Bytes32) {
	if cached := h.cache.id.Load(); cached != nil {
		return *cached
	}
	id = tfnet.Blake2bFn(func(w io.Writer) {
		if err := rlp.Encode(w, &h.body); err != nil {
			panic(err)
		}
	})
	// overwrite first 4 bytes of block hash to block number.
	binary.BigEndian.PutUint32(id[:], h.Number())
	h.cache.id.Store(&id)
	return
}

// EncodeRLP implements rlp.Encoder
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.body)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var body headerBody

	if err := s.Decode(&body); err != nil {
		return err
	}
	*h = Header{body: body}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf(`Header(%v):
	Number:			%v
	ParentID:		%v
	Timestamp:		%v
	TxsCount:		%v
	TxsRoot:		%v
	StateHash:		%v
	ReceiptsRoot:	%v`, h.ID(), h.Number(), h.body.ParentID, h.body.Timestamp, h.body.TxsCount,
		h.body.TxsRoot, h.body.StateHash, h.body.ReceiptsRoot)
}

// Number extract block number from block id.
func Number(blockID tfnet.Bytes32) uint32 {
	// first 4 bytes are over written by block number (big endian).
	return binary.BigEndian.Uint32(blockID[:])
}
