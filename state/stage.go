// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/vechain/tfnet/kv"
	"github.com/vechain/tfnet/tfnet"
)

type change struct {
	key tfnet.Bytes32
	val []byte
}

// Stage abstracts the final changes of a state.
type Stage struct {
	changes []change
}

func newStage(m map[tfnet.Bytes32][]byte) *Stage {
	changes := make([]change, 0, len(m))
	for k, v := range m {
		changes = append(changes, change{k, v})
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].key[:], changes[j].key[:]) < 0
	})
	return &Stage{changes}
}

// Len returns the count of changed entries.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of all changes.
// It's zero if nothing changed.
func (s *Stage) Hash() tfnet.Bytes32 {
	if len(s.changes) == 0 {
		return tfnet.Bytes32{}
	}
	return tfnet.Blake2bFn(func(w io.Writer) {
		for _, c := range s.changes {
			w.Write(c.key[:])
			w.Write(tfnet.Blake2b(c.val).Bytes())
		}
	})
}

// Commit writes all changes into putter.
func (s *Stage) Commit(putter kv.Putter) error {
	p := StorageBucket.NewPutter(putter)
	for _, c := range s.changes {
		if len(c.val) == 0 {
			if err := p.Delete(c.key[:]); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := p.Put(c.key[:], c.val); err != nil {
			return &Error{err}
		}
	}
	return nil
}
