// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lettercredit

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/vechain/tfnet/tfnet"
)

// Status of a letter of credit.
type Status uint8

const (
	StatusCreated Status = iota + 1
	StatusIssued
	StatusDocumentsPresented
	StatusDocumentsAccepted
	StatusDocumentsRejected
	StatusSettled
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusIssued:
		return "issued"
	case StatusDocumentsPresented:
		return "documents-presented"
	case StatusDocumentsAccepted:
		return "documents-accepted"
	case StatusDocumentsRejected:
		return "documents-rejected"
	case StatusSettled:
		return "settled"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Entry contains all data of a letter of credit.
type Entry struct {
	Issuer      tfnet.Principal
	Beneficiary tfnet.Principal
	Applicant   tfnet.Principal
	Amount      *uint256.Int
	Currency    string
	FeeBps      *uint256.Int
	Manager     tfnet.Principal
	Status      Status
	Documents   string

	// block numbers
	CreatedAt   uint64
	IssuedAt    uint64
	PresentedAt uint64
	SettledAt   uint64
}

// Encode encodes the entry.
func (e *Entry) Encode() ([]byte, error) {
	if e.Status == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(e)
}

// Decode decodes data into the entry, empty data leaves a zero status.
func (e *Entry) Decode(data []byte) error {
	if len(data) == 0 {
		*e = Entry{}
		return nil
	}
	return rlp.DecodeBytes(data, e)
}

// CreateParams are the terms of a new letter of credit.
type CreateParams struct {
	Beneficiary tfnet.Principal
	Applicant   tfnet.Principal
	Amount      *uint256.Int
	Currency    string
	FeeBps      *uint256.Int
	Manager     tfnet.Principal
}
