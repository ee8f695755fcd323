// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tfnet/kv"
	"github.com/vechain/tfnet/stackedmap"
	"github.com/vechain/tfnet/tfnet"
)

// StorageBucket is the kv bucket holding contract storage.
const StorageBucket kv.Bucket = "s"

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Cause returns the underlying error.
func (e *Error) Cause() error {
	return e.cause
}

// State manages contract storage.
// Changes are kept in memory until staged and committed.
type State struct {
	db kv.Getter
	sm *stackedmap.StackedMap[tfnet.Bytes32, []byte]
}

// New create state object on top of db.
func New(db kv.Getter) *State {
	s := &State{db: StorageBucket.NewGetter(db)}
	s.sm = stackedmap.New(s.load)
	return s
}

func (s *State) load(key tfnet.Bytes32) ([]byte, bool, error) {
	val, err := s.db.Get(key[:])
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// StorageKey derives the storage key of an entry in a contract map.
func StorageKey(contract tfnet.Principal, mapName string, key []byte) tfnet.Bytes32 {
	return tfnet.Blake2bFn(func(w io.Writer) {
		w.Write(contract.Bytes())
		w.Write([]byte{0})
		w.Write([]byte(mapName))
		w.Write([]byte{0})
		w.Write(key)
	})
}

// GetRawStorage returns the raw value of an entry, nil if absent.
func (s *State) GetRawStorage(contract tfnet.Principal, mapName string, key []byte) ([]byte, error) {
	val, _, err := s.sm.Get(StorageKey(contract, mapName, key))
	if err != nil {
		return nil, &Error{err}
	}
	return val, nil
}

// SetRawStorage sets the raw value of an entry. Empty value deletes the entry.
func (s *State) SetRawStorage(contract tfnet.Principal, mapName string, key []byte, raw []byte) {
	s.sm.Put(StorageKey(contract, mapName, key), raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(contract tfnet.Principal, mapName string, key []byte, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(contract, mapName, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// dec is called with empty raw if the entry is absent.
func (s *State) DecodeStorage(contract tfnet.Principal, mapName string, key []byte, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(contract, mapName, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetStruct decodes an rlp encoded entry into obj.
// It returns false if the entry is absent.
func (s *State) GetStruct(contract tfnet.Principal, mapName string, key []byte, obj any) (found bool, err error) {
	err = s.DecodeStorage(contract, mapName, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		found = true
		return rlp.DecodeBytes(raw, obj)
	})
	return
}

// SetStruct stores obj rlp encoded. A nil obj deletes the entry.
func (s *State) SetStruct(contract tfnet.Principal, mapName string, key []byte, obj any) error {
	return s.EncodeStorage(contract, mapName, key, func() ([]byte, error) {
		if obj == nil {
			return nil, nil
		}
		return rlp.EncodeToBytes(obj)
	})
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object of the changes made so far.
func (s *State) Stage() *Stage {
	changes := make(map[tfnet.Bytes32][]byte)
	for _, je := range s.sm.Journal() {
		changes[je.Key] = je.Value
	}
	return newStage(changes)
}
