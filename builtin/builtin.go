// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native trade-finance contracts to their principals
// and exposes their callable methods.
package builtin

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/builtin/invoice"
	"github.com/vechain/tfnet/builtin/lettercredit"
	"github.com/vechain/tfnet/builtin/manager"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
)

// Contract names.
const (
	ManagerName        = "trade-finance-manager"
	LetterOfCreditName = "letter-of-credit"
	InvoiceName        = "invoice-financing"
)

var errContractNotFound = errors.New("contract not found")

// Builtins is the set of native contracts deployed by one principal.
type Builtins struct {
	Deployer       tfnet.Principal
	Manager        *managerContract
	LetterOfCredit *letterOfCreditContract
	Invoice        *invoiceContract

	contracts []*Contract
}

type (
	managerContract        struct{ *Contract }
	letterOfCreditContract struct{ *Contract }
	invoiceContract        struct{ *Contract }
)

// New deploys the builtin contracts under deployer.
func New(deployer tfnet.Principal) *Builtins {
	b := &Builtins{Deployer: deployer.Standard()}

	b.Manager = &managerContract{b.newContract(ManagerName, managerMethods())}
	b.LetterOfCredit = &letterOfCreditContract{b.newContract(LetterOfCreditName, letterOfCreditMethods())}
	b.Invoice = &invoiceContract{b.newContract(InvoiceName, invoiceMethods())}
	return b
}

func (b *Builtins) newContract(name string, methods []*NativeMethod) *Contract {
	addr, err := b.Deployer.Contract(name)
	if err != nil {
		panic(errors.Wrapf(err, "deploy %s", name))
	}
	c := newContract(name, addr, methods)
	b.contracts = append(b.contracts, c)
	return c
}

// WithState returns the typed manager contract bound to state.
func (c *managerContract) WithState(st *state.State) *manager.Manager {
	return manager.New(c.Principal, st)
}

// WithState returns the typed letter-of-credit contract bound to state.
func (c *letterOfCreditContract) WithState(st *state.State, managers lettercredit.ManagerRegistry) *lettercredit.LetterOfCredit {
	return lettercredit.New(c.Principal, st, managers)
}

// WithState returns the typed invoice-financing contract bound to state.
func (c *invoiceContract) WithState(st *state.State, managers invoice.ManagerRegistry) *invoice.Invoice {
	return invoice.New(c.Principal, st, managers)
}

// Contracts returns all deployed contracts in deployment order.
func (b *Builtins) Contracts() []*Contract {
	return append([]*Contract(nil), b.contracts...)
}

// Resolve finds a contract by its short name or its fully qualified principal.
func (b *Builtins) Resolve(name string) (*Contract, error) {
	if !strings.Contains(name, ".") {
		for _, c := range b.contracts {
			if c.Name == name {
				return c, nil
			}
		}
		return nil, errors.Wrap(errContractNotFound, name)
	}
	p, err := tfnet.ParsePrincipal(name)
	if err != nil {
		return nil, err
	}
	for _, c := range b.contracts {
		if c.Principal == p {
			return c, nil
		}
	}
	return nil, errors.Wrap(errContractNotFound, name)
}

// IsContractNotFound returns whether err is caused by an unknown contract.
func IsContractNotFound(err error) bool {
	return errors.Cause(err) == errContractNotFound
}
