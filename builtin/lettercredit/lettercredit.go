// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lettercredit implements the letter-of-credit lifecycle.
package lettercredit

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/vechain/tfnet/bps"
	"github.com/vechain/tfnet/builtin/reverts"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
)

const (
	CurrencyLength     = 3
	MaxDocumentsLength = 256

	lettersMap = "letters-of-credit"
	countMap   = "lc-count"
)

// Error codes.
const (
	ErrUnauthorized  = reverts.Code(200)
	ErrNotVerified   = reverts.Code(201)
	ErrInvalidAmount = reverts.Code(202)
	ErrInvalidFee    = reverts.Code(203)
	ErrInvalidCurr   = reverts.Code(204)
	ErrSameParty     = reverts.Code(205)
	ErrInvalidStatus = reverts.Code(206)
	ErrNotFound      = reverts.Code(207)
	ErrEmptyDocs     = reverts.Code(208)
)

// ManagerRegistry tells whether a principal is a verified manager.
type ManagerRegistry interface {
	IsVerified(p tfnet.Principal) (bool, error)
}

// LetterOfCredit implements native methods of the `letter-of-credit` contract.
type LetterOfCredit struct {
	addr     tfnet.Principal
	state    *state.State
	managers ManagerRegistry
}

// New create a new instance.
func New(addr tfnet.Principal, state *state.State, managers ManagerRegistry) *LetterOfCredit {
	return &LetterOfCredit{addr, state, managers}
}

func idKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, id)
}

func (l *LetterOfCredit) getEntry(id uint64) (*Entry, error) {
	var entry Entry
	if err := l.state.DecodeStorage(l.addr, lettersMap, idKey(id), entry.Decode); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (l *LetterOfCredit) setEntry(id uint64, entry *Entry) error {
	return l.state.EncodeStorage(l.addr, lettersMap, idKey(id), entry.Encode)
}

// mustGet loads an existing entry or fails with ErrNotFound.
func (l *LetterOfCredit) mustGet(id uint64) (*Entry, error) {
	entry, err := l.getEntry(id)
	if err != nil {
		return nil, err
	}
	if entry.Status == 0 {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Count returns the number of letters of credit created so far.
func (l *LetterOfCredit) Count() (count uint64, err error) {
	err = l.state.DecodeStorage(l.addr, countMap, nil, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &count)
	})
	return
}

func (l *LetterOfCredit) setCount(count uint64) error {
	return l.state.EncodeStorage(l.addr, countMap, nil, func() ([]byte, error) {
		return rlp.EncodeToBytes(count)
	})
}

// Get returns the letter of credit, nil if absent.
func (l *LetterOfCredit) Get(id uint64) (*Entry, error) {
	entry, err := l.getEntry(id)
	if err != nil {
		return nil, err
	}
	if entry.Status == 0 {
		return nil, nil
	}
	return entry, nil
}

// CalculateFee returns amount*feeBps/10000.
func CalculateFee(amount, feeBps *uint256.Int) (*uint256.Int, error) {
	fee, err := bps.Apply(amount, feeBps)
	if err != nil {
		return nil, ErrInvalidFee
	}
	return fee, nil
}

// Create opens a new letter of credit issued by issuer and returns its id.
// Ids start at 1.
func (l *LetterOfCredit) Create(issuer tfnet.Principal, p *CreateParams, blockNum uint32) (uint64, error) {
	verified, err := l.managers.IsVerified(p.Manager)
	if err != nil {
		return 0, err
	}
	switch {
	case !verified:
		return 0, ErrNotVerified
	case p.Amount.IsZero():
		return 0, ErrInvalidAmount
	case p.FeeBps.GtUint64(tfnet.BasisPointsDenominator):
		return 0, ErrInvalidFee
	case len(p.Currency) != CurrencyLength:
		return 0, ErrInvalidCurr
	case p.Beneficiary == p.Applicant:
		return 0, ErrSameParty
	}

	count, err := l.Count()
	if err != nil {
		return 0, err
	}
	id := count + 1
	if err := l.setEntry(id, &Entry{
		Issuer:      issuer,
		Beneficiary: p.Beneficiary,
		Applicant:   p.Applicant,
		Amount:      new(uint256.Int).Set(p.Amount),
		Currency:    p.Currency,
		FeeBps:      new(uint256.Int).Set(p.FeeBps),
		Manager:     p.Manager,
		Status:      StatusCreated,
		CreatedAt:   uint64(blockNum),
	}); err != nil {
		return 0, err
	}
	if err := l.setCount(id); err != nil {
		return 0, err
	}
	return id, nil
}

// transition loads id, checks the caller and current status, then applies update.
func (l *LetterOfCredit) transition(id uint64, caller func(*Entry) tfnet.Principal, by tfnet.Principal, from []Status, update func(*Entry)) (*Entry, error) {
	entry, err := l.mustGet(id)
	if err != nil {
		return nil, err
	}
	if caller(entry) != by {
		return nil, ErrUnauthorized
	}
	allowed := false
	for _, s := range from {
		if entry.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidStatus
	}
	update(entry)
	if err := l.setEntry(id, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func issuerOf(e *Entry) tfnet.Principal      { return e.Issuer }
func beneficiaryOf(e *Entry) tfnet.Principal { return e.Beneficiary }
func managerOf(e *Entry) tfnet.Principal     { return e.Manager }

// Issue moves a created letter of credit to issued. Only the issuer may call it.
func (l *LetterOfCredit) Issue(caller tfnet.Principal, id uint64, blockNum uint32) error {
	_, err := l.transition(id, issuerOf, caller, []Status{StatusCreated}, func(e *Entry) {
		e.Status = StatusIssued
		e.IssuedAt = uint64(blockNum)
	})
	return err
}

// PresentDocuments records the beneficiary's document references.
// Rejected documents may be presented again.
func (l *LetterOfCredit) PresentDocuments(caller tfnet.Principal, id uint64, docs string, blockNum uint32) error {
	entry, err := l.mustGet(id)
	if err != nil {
		return err
	}
	if entry.Beneficiary != caller {
		return ErrUnauthorized
	}
	if docs == "" {
		return ErrEmptyDocs
	}
	_, err = l.transition(id, beneficiaryOf, caller, []Status{StatusIssued, StatusDocumentsRejected}, func(e *Entry) {
		e.Status = StatusDocumentsPresented
		e.Documents = docs
		e.PresentedAt = uint64(blockNum)
	})
	return err
}

// AcceptDocuments is called by the assigned manager to accept presented documents.
func (l *LetterOfCredit) AcceptDocuments(caller tfnet.Principal, id uint64) error {
	_, err := l.transition(id, managerOf, caller, []Status{StatusDocumentsPresented}, func(e *Entry) {
		e.Status = StatusDocumentsAccepted
	})
	return err
}

// RejectDocuments is called by the assigned manager to reject presented documents.
func (l *LetterOfCredit) RejectDocuments(caller tfnet.Principal, id uint64) error {
	_, err := l.transition(id, managerOf, caller, []Status{StatusDocumentsPresented}, func(e *Entry) {
		e.Status = StatusDocumentsRejected
	})
	return err
}

// Settle closes a letter of credit with accepted documents and returns the
// payout, which is the amount minus the fee.
func (l *LetterOfCredit) Settle(caller tfnet.Principal, id uint64, blockNum uint32) (*uint256.Int, error) {
	entry, err := l.transition(id, issuerOf, caller, []Status{StatusDocumentsAccepted}, func(e *Entry) {
		e.Status = StatusSettled
		e.SettledAt = uint64(blockNum)
	})
	if err != nil {
		return nil, err
	}
	return bps.Discount(entry.Amount, entry.FeeBps)
}

// Cancel cancels a letter of credit that has not been presented yet.
func (l *LetterOfCredit) Cancel(caller tfnet.Principal, id uint64) error {
	_, err := l.transition(id, issuerOf, caller, []Status{StatusCreated, StatusIssued}, func(e *Entry) {
		e.Status = StatusCancelled
	})
	return err
}
