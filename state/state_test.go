// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/lvldb"
	"github.com/vechain/tfnet/tfnet"
)

var contract = tfnet.MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.letter-of-credit")

type record struct {
	Name   string
	Amount uint64
}

func TestStateCheckpoint(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()
	st := New(db)

	st.SetRawStorage(contract, "m", []byte("k"), []byte("v1"))

	cp := st.NewCheckpoint()
	st.SetRawStorage(contract, "m", []byte("k"), []byte("v2"))
	st.SetRawStorage(contract, "m", []byte("k2"), []byte("x"))

	v, err := st.GetRawStorage(contract, "m", []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)

	st.RevertTo(cp)

	v, err = st.GetRawStorage(contract, "m", []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	v, err = st.GetRawStorage(contract, "m", []byte("k2"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStateStruct(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()
	st := New(db)

	var r record
	found, err := st.GetStruct(contract, "records", []byte{1}, &r)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, st.SetStruct(contract, "records", []byte{1}, &record{"lc", 100000}))
	found, err = st.GetStruct(contract, "records", []byte{1}, &r)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, record{"lc", 100000}, r)

	require.NoError(t, st.SetStruct(contract, "records", []byte{1}, nil))
	found, err = st.GetStruct(contract, "records", []byte{1}, &r)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStageCommit(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	st := New(db)
	assert.True(t, st.Stage().Hash().IsZero())

	st.SetRawStorage(contract, "m", []byte("a"), []byte("1"))
	st.SetRawStorage(contract, "m", []byte("b"), []byte("2"))
	st.SetRawStorage(contract, "m", []byte("a"), []byte("3"))

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	hash := stage.Hash()
	assert.False(t, hash.IsZero())

	bulk := db.Bulk()
	require.NoError(t, stage.Commit(bulk))
	require.NoError(t, bulk.Write())

	// a fresh state sees committed values
	st2 := New(db)
	v, err := st2.GetRawStorage(contract, "m", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)

	// same change set, same hash
	st3 := New(db)
	st3.SetRawStorage(contract, "m", []byte("b"), []byte("2"))
	st3.SetRawStorage(contract, "m", []byte("a"), []byte("3"))
	assert.Equal(t, hash, st3.Stage().Hash())

	// deletion
	st2.SetRawStorage(contract, "m", []byte("a"), nil)
	require.NoError(t, st2.Stage().Commit(db))
	v, err = New(db).GetRawStorage(contract, "m", []byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStorageKeyIsolation(t *testing.T) {
	other, _ := contract.Standard().Contract("invoice-financing")
	assert.NotEqual(t, StorageKey(contract, "m", []byte("k")), StorageKey(other, "m", []byte("k")))
	assert.NotEqual(t, StorageKey(contract, "m", []byte("k")), StorageKey(contract, "n", []byte("k")))
}
