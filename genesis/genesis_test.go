// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/genesis"
	"github.com/vechain/tfnet/lvldb"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
)

const customYAML = `
name: tradenet
launchTime: 1700000000
extraData: tfnet
deployer: ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM
accounts:
  - name: bank
    principal: ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM
  - name: manager
    principal: ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND
managers:
  - principal: ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND
    name: Manager One
    id: MGR001
    level: 2000
`

func TestDevnet(t *testing.T) {
	gen := genesis.NewDevnet()
	assert.Equal(t, "devnet", gen.Name())
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", gen.Deployer().String())
	require.Len(t, gen.Accounts(), 4)
	assert.Equal(t, "wallet_3", gen.Accounts()[3].Name)

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	blk, receipts, stage, err := gen.Build(db)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), blk.Header().Number())
	assert.Equal(t, gen.ID(), blk.Header().ID())
	assert.Empty(t, receipts)
	assert.Zero(t, stage.Len())

	// deterministic
	assert.Equal(t, gen.ID(), genesis.NewDevnet().ID())
}

func TestCustomNet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customYAML), 0o600))

	custom, err := genesis.LoadCustomGenesis(path)
	require.NoError(t, err)
	require.Len(t, custom.Managers, 1)
	assert.Equal(t, uint64(2000), custom.Managers[0].Level)

	gen, err := genesis.NewCustomNet(custom)
	require.NoError(t, err)
	assert.Equal(t, "tradenet", gen.Name())
	assert.NotEqual(t, genesis.NewDevnet().ID(), gen.ID())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	blk, receipts, stage, err := gen.Build(db)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.True(t, receipts[0].Committed)
	assert.Len(t, blk.Transactions(), 1)
	require.NoError(t, stage.Commit(db))

	b := builtin.New(gen.Deployer())
	ok, err := b.Manager.WithState(state.New(db)).IsVerified(tfnet.MustParsePrincipal("ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCustomNetInvalid(t *testing.T) {
	_, err := genesis.NewCustomNet(&genesis.CustomGenesis{Deployer: tfnet.MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")})
	assert.Error(t, err, "missing launch time")

	_, err = genesis.NewCustomNet(&genesis.CustomGenesis{LaunchTime: 1})
	assert.Error(t, err, "missing deployer")

	_, err = genesis.NewCustomNet(&genesis.CustomGenesis{
		LaunchTime: 1,
		Deployer:   tfnet.MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"),
		Managers:   []genesis.Manager{{Principal: tfnet.MustParsePrincipal("ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND"), ID: "MGR001", Level: 1}},
	})
	assert.Error(t, err, "empty manager name")
}
