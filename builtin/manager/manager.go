// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package manager implements the registry of verified trade-finance managers.
package manager

import (
	"github.com/holiman/uint256"

	"github.com/vechain/tfnet/builtin/reverts"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
)

const (
	MaxNameLength = 50
	MaxIDLength   = 20

	managersMap = "managers"
)

// Error codes.
const (
	ErrNotOwner     = reverts.Code(100)
	ErrInvalidInput = reverts.Code(101)
	ErrNotFound     = reverts.Code(102)
)

// Manager implements native methods of the `trade-finance-manager` contract.
type Manager struct {
	addr  tfnet.Principal
	state *state.State
}

// New create a new instance.
func New(addr tfnet.Principal, state *state.State) *Manager {
	return &Manager{addr, state}
}

// Owner returns the principal allowed to verify managers, which is the deployer.
func (m *Manager) Owner() tfnet.Principal {
	return m.addr.Standard()
}

func (m *Manager) getEntry(p tfnet.Principal) (*Entry, error) {
	var entry Entry
	if err := m.state.DecodeStorage(m.addr, managersMap, p.Bytes(), entry.Decode); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (m *Manager) setEntry(p tfnet.Principal, entry *Entry) error {
	return m.state.EncodeStorage(m.addr, managersMap, p.Bytes(), entry.Encode)
}

// Get returns the entry of p, nil if never verified.
func (m *Manager) Get(p tfnet.Principal) (*Entry, error) {
	entry, err := m.getEntry(p)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() {
		return nil, nil
	}
	return entry, nil
}

// IsVerified returns whether p is a verified and active manager.
func (m *Manager) IsVerified(p tfnet.Principal) (bool, error) {
	entry, err := m.getEntry(p)
	if err != nil {
		return false, err
	}
	return entry.Active, nil
}

// Verify registers or refreshes a manager. Only the owner may call it.
func (m *Manager) Verify(caller, p tfnet.Principal, name, id string, level *uint256.Int, blockNum uint32) error {
	if caller != m.Owner() {
		return ErrNotOwner
	}
	if name == "" || id == "" || level.IsZero() {
		return ErrInvalidInput
	}
	return m.setEntry(p, &Entry{
		Name:       name,
		ID:         id,
		Level:      new(uint256.Int).Set(level),
		Active:     true,
		VerifiedAt: uint64(blockNum),
	})
}

// Revoke deactivates a manager, keeping its record. Only the owner may call it.
func (m *Manager) Revoke(caller, p tfnet.Principal) error {
	if caller != m.Owner() {
		return ErrNotOwner
	}
	entry, err := m.getEntry(p)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return ErrNotFound
	}
	entry.Active = false
	return m.setEntry(p, entry)
}
