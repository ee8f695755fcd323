// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package invoice implements invoice discounting requests.
package invoice

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
	invoicesMap = "invoices"
	countMap    = "invoice-count"
)

// Error codes.
const (
	ErrUnauthorized  = reverts.Code(300)
	ErrNotVerified   = reverts.Code(301)
	ErrInvalidAmount = reverts.Code(302)
	ErrInvalidRate   = reverts.Code(303)
	ErrInvalidStatus = reverts.Code(304)
	ErrNotFound      = reverts.Code(305)
)

// ManagerRegistry tells whether a principal is a verified manager.
type ManagerRegistry interface {
	IsVerified(p tfnet.Principal) (bool, error)
}

// Invoice implements native methods of the `invoice-financing` contract.
type Invoice struct {
	addr     tfnet.Principal
	state    *state.State
	managers ManagerRegistry
}

// New create a new instance.
func New(addr tfnet.Principal, state *state.State, managers ManagerRegistry) *Invoice {
	return &Invoice{addr, state, managers}
}

func idKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, id)
}

func (inv *Invoice) getEntry(id uint64) (*Entry, error) {
	var entry Entry
	if err := inv.state.DecodeStorage(inv.addr, invoicesMap, idKey(id), entry.Decode); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (inv *Invoice) setEntry(id uint64, entry *Entry) error {
	return inv.state.EncodeStorage(inv.addr, invoicesMap, idKey(id), entry.Encode)
}

// Count returns the number of requests created so far.
func (inv *Invoice) Count() (count uint64, err error) {
	err = inv.state.DecodeStorage(inv.addr, countMap, nil, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &count)
	})
	return
}

// Get returns the request, nil if absent.
func (inv *Invoice) Get(id uint64) (*Entry, error) {
	entry, err := inv.getEntry(id)
	if err != nil {
		return nil, err
	}
	if entry.Status == 0 {
		return nil, nil
	}
	return entry, nil
}

// CalculateFinancingAmount returns amount - amount*rate/10000.
func CalculateFinancingAmount(amount, rate *uint256.Int) (*uint256.Int, error) {
	financed, err := bps.Discount(amount, rate)
	if err != nil {
		return nil, ErrInvalidRate
	}
	return financed, nil
}

// Create opens a financing request with supplier as the caller and returns its id.
func (inv *Invoice) Create(supplier, buyer, financier tfnet.Principal, amount, rate *uint256.Int, manager tfnet.Principal, blockNum uint32) (uint64, error) {
	verified, err := inv.managers.IsVerified(manager)
	if err != nil {
		return 0, err
	}
	switch {
	case !verified:
		return 0, ErrNotVerified
	case amount.IsZero():
		return 0, ErrInvalidAmount
	case rate.GtUint64(tfnet.BasisPointsDenominator):
		return 0, ErrInvalidRate
	}

	count, err := inv.Count()
	if err != nil {
		return 0, err
	}
	id := count + 1
	if err := inv.setEntry(id, &Entry{
		Supplier:       supplier,
		Buyer:          buyer,
		Financier:      financier,
		Manager:        manager,
		Amount:         new(uint256.Int).Set(amount),
		DiscountRate:   new(uint256.Int).Set(rate),
		FinancedAmount: new(uint256.Int),
		Status:         StatusPending,
		CreatedAt:      uint64(blockNum),
	}); err != nil {
		return 0, err
	}
	if err := inv.state.EncodeStorage(inv.addr, countMap, nil, func() ([]byte, error) {
		return rlp.EncodeToBytes(id)
	}); err != nil {
		return 0, err
	}
	return id, nil
}

func (inv *Invoice) load(id uint64) (*Entry, error) {
	entry, err := inv.getEntry(id)
	if err != nil {
		return nil, err
	}
	if entry.Status == 0 {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Approve is called by the financier and fixes the financed amount.
func (inv *Invoice) Approve(caller tfnet.Principal, id uint64, blockNum uint32) (*uint256.Int, error) {
	entry, err := inv.load(id)
	if err != nil {
		return nil, err
	}
	if caller != entry.Financier {
		return nil, ErrUnauthorized
	}
	if entry.Status != StatusPending {
		return nil, ErrInvalidStatus
	}
	financed, err := CalculateFinancingAmount(entry.Amount, entry.DiscountRate)
	if err != nil {
		return nil, err
	}
	entry.FinancedAmount = financed
	entry.Status = StatusApproved
	entry.ApprovedAt = uint64(blockNum)
	if err := inv.setEntry(id, entry); err != nil {
		return nil, err
	}
	return financed, nil
}

// Settle is called by the buyer once the invoice is paid.
func (inv *Invoice) Settle(caller tfnet.Principal, id uint64, blockNum uint32) error {
	entry, err := inv.load(id)
	if err != nil {
		return err
	}
	if caller != entry.Buyer {
		return ErrUnauthorized
	}
	if entry.Status != StatusApproved {
		return ErrInvalidStatus
	}
	entry.Status = StatusSettled
	entry.SettledAt = uint64(blockNum)
	return inv.setEntry(id, entry)
}
