// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the genesis block of a simnet.
package genesis

import (
	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/kv"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
)

// Account is a named principal known to a network.
type Account struct {
	Name      string          `yaml:"name" json:"name"`
	Principal tfnet.Principal `yaml:"principal" json:"principal"`
}

// Genesis to build genesis block.
type Genesis struct {
	builder  *Builder
	id       tfnet.Bytes32
	name     string
	deployer tfnet.Principal
	accounts []Account
}

// Build build the genesis block.
func (g *Genesis) Build(db kv.Getter) (blk *block.Block, receipts tx.Receipts, stage *state.Stage, err error) {
	return g.builder.Build(db)
}

// ID returns genesis block ID.
func (g *Genesis) ID() tfnet.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Deployer returns the principal owning the builtin contracts.
func (g *Genesis) Deployer() tfnet.Principal {
	return g.deployer
}

// Accounts returns the well-known accounts of the network.
func (g *Genesis) Accounts() []Account {
	return append([]Account(nil), g.accounts...)
}
