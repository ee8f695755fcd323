// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/tfnet/api/utils"
	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/genesis"
	"github.com/vechain/tfnet/tfnet"
)

// Contract a deployed contract and its functions.
type Contract struct {
	Name      string          `json:"name"`
	Principal tfnet.Principal `json:"principal"`
	Functions []string        `json:"functions"`
}

// Network the accounts and contracts of the network.
type Network struct {
	Name      string            `json:"name"`
	GenesisID tfnet.Bytes32     `json:"genesisID"`
	Deployer  tfnet.Principal   `json:"deployer"`
	Accounts  []genesis.Account `json:"accounts"`
	Contracts []*Contract       `json:"contracts"`
}

type Accounts struct {
	network *Network
}

func New(gen *genesis.Genesis, b *builtin.Builtins) *Accounts {
	network := &Network{
		Name:      gen.Name(),
		GenesisID: gen.ID(),
		Deployer:  gen.Deployer(),
		Accounts:  gen.Accounts(),
	}
	for _, c := range b.Contracts() {
		jc := &Contract{Name: c.Name, Principal: c.Principal}
		for _, m := range c.Methods() {
			jc.Functions = append(jc.Functions, m.Signature())
		}
		network.Contracts = append(network.Contracts, jc)
	}
	return &Accounts{network}
}

func (a *Accounts) handleGetAccounts(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, a.network)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /accounts").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccounts))
}
