// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/tfnet/tfnet"
)

// Contract is a deployed native contract.
type Contract struct {
	Name      string
	Principal tfnet.Principal

	methods []*NativeMethod
	byName  map[string]*NativeMethod
}

func newContract(name string, addr tfnet.Principal, methods []*NativeMethod) *Contract {
	c := &Contract{
		Name:      name,
		Principal: addr,
		methods:   methods,
		byName:    make(map[string]*NativeMethod, len(methods)),
	}
	for _, m := range methods {
		if _, dup := c.byName[m.Name]; dup {
			panic("duplicated method " + m.Name)
		}
		c.byName[m.Name] = m
	}
	return c
}

// Method returns the method by name.
func (c *Contract) Method(name string) (*NativeMethod, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Methods returns all methods in definition order.
func (c *Contract) Methods() []*NativeMethod {
	return append([]*NativeMethod(nil), c.methods...)
}
