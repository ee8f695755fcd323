// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/vechain/tfnet/tfnet"
)

// devnet launch time, 'Wed Nov 01 2023 00:00:00 GMT+0000'
const devnetLaunchTime = uint64(1698796800)

var devAccounts = []Account{
	{"deployer", tfnet.MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")},
	{"wallet_1", tfnet.MustParsePrincipal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG")},
	{"wallet_2", tfnet.MustParsePrincipal("ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC")},
	{"wallet_3", tfnet.MustParsePrincipal("ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND")},
}

// DevAccounts returns the pre-defined accounts of the devnet, the first one
// is the deployer.
func DevAccounts() []Account {
	return append([]Account(nil), devAccounts...)
}

// NewDevnet create genesis for the simulated devnet. No manager is verified.
func NewDevnet() *Genesis {
	deployer := devAccounts[0].Principal
	builder := new(Builder).
		Timestamp(devnetLaunchTime).
		Deployer(deployer)

	id, err := builder.ComputeID()
	if err != nil {
		panic(err)
	}
	return &Genesis{
		builder:  builder,
		id:       id,
		name:     "devnet",
		deployer: deployer,
		accounts: DevAccounts(),
	}
}
