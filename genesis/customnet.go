// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

// CustomGenesis is the yaml form of a custom network.
type CustomGenesis struct {
	Name       string          `yaml:"name"`
	LaunchTime uint64          `yaml:"launchTime"`
	ExtraData  string          `yaml:"extraData"`
	Deployer   tfnet.Principal `yaml:"deployer"`
	Accounts   []Account       `yaml:"accounts"`
	Managers   []Manager       `yaml:"managers"`
}

// Manager is a trade-finance manager verified in the genesis block.
type Manager struct {
	Principal tfnet.Principal `yaml:"principal"`
	Name      string          `yaml:"name"`
	ID        string          `yaml:"id"`
	Level     uint64          `yaml:"level"`
}

// LoadCustomGenesis reads a custom genesis yaml file.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen == nil {
		return nil, errors.New("custom genesis is nil")
	}
	if gen.LaunchTime == 0 {
		return nil, errors.New("launchTime must be set")
	}
	if gen.Deployer.IsZero() || gen.Deployer.IsContract() {
		return nil, errors.New("deployer must be a standard principal")
	}

	var extra [28]byte
	if len(gen.ExtraData) > len(extra) {
		return nil, errors.New("extraData too long")
	}
	copy(extra[:], gen.ExtraData)

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		Deployer(gen.Deployer).
		ExtraData(extra)

	for i, m := range gen.Managers {
		builder.Call(new(tx.Builder).
			Sender(gen.Deployer).
			Contract(builtin.ManagerName).
			Function("verify-manager").
			Args(value.Principal(m.Principal), value.ASCII(m.Name), value.ASCII(m.ID), value.Uint(m.Level)).
			Nonce(uint64(i)).
			Build())
	}

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	accounts := gen.Accounts
	if len(accounts) == 0 {
		accounts = []Account{{"deployer", gen.Deployer}}
	}
	return &Genesis{
		builder:  builder,
		id:       id,
		name:     name,
		deployer: gen.Deployer,
		accounts: accounts,
	}, nil
}
