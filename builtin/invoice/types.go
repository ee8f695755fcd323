// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package invoice

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/vechain/tfnet/tfnet"
)

// Status of a financing request.
type Status uint8

const (
	StatusPending Status = iota + 1
	StatusApproved
	StatusSettled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusSettled:
		return "settled"
	}
	return "unknown"
}

// Entry contains all data of an invoice financing request.
type Entry struct {
	Supplier       tfnet.Principal
	Buyer          tfnet.Principal
	Financier      tfnet.Principal
	Manager        tfnet.Principal
	Amount         *uint256.Int
	DiscountRate   *uint256.Int
	FinancedAmount *uint256.Int
	Status         Status

	// block numbers
	CreatedAt  uint64
	ApprovedAt uint64
	SettledAt  uint64
}

// Encode encodes the entry.
func (e *Entry) Encode() ([]byte, error) {
	if e.Status == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(e)
}

// Decode decodes data into the entry.
func (e *Entry) Decode(data []byte) error {
	if len(data) == 0 {
		*e = Entry{}
		return nil
	}
	return rlp.DecodeBytes(data, e)
}
