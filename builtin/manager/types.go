// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package manager

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Entry contains all data of a trade-finance manager.
type Entry struct {
	Name       string
	ID         string
	Level      *uint256.Int
	Active     bool
	VerifiedAt uint64 // block number
}

// Encode encodes the entry, an empty entry encodes to nothing.
func (e *Entry) Encode() ([]byte, error) {
	if e.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(e)
}

// Decode decodes data into the entry, empty data means an empty entry.
func (e *Entry) Decode(data []byte) error {
	if len(data) == 0 {
		*e = Entry{}
		return nil
	}
	return rlp.DecodeBytes(data, e)
}

// IsEmpty returns whether the entry can be treated as empty.
func (e *Entry) IsEmpty() bool {
	return e.Name == "" &&
		e.ID == "" &&
		(e.Level == nil || e.Level.IsZero()) &&
		!e.Active &&
		e.VerifiedAt == 0
}
