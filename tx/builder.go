// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/value"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// Sender set tx-sender.
func (b *Builder) Sender(p tfnet.Principal) *Builder {
	b.body.Sender = p
	return b
}

// Contract set target contract.
func (b *Builder) Contract(name string) *Builder {
	b.body.Contract = name
	return b
}

// Function set called function.
func (b *Builder) Function(fn string) *Builder {
	b.body.Function = fn
	return b
}

// Args append call arguments.
func (b *Builder) Args(args ...value.Value) *Builder {
	b.body.Args = append(b.body.Args, args...)
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	tx.body.Args = append([]value.Value(nil), b.body.Args...)
	return &tx
}
