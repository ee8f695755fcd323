// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	disk, err := New(filepath.Join(t.TempDir(), "db"), Options{16, 16})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, ldb := range []*LevelDB{disk, mem} {
		assert.NoError(t, ldb.Put(key, value))

		ret1, err := ldb.Get(key)
		assert.NoError(t, err)
		ret2, err := ldb.Has(key)
		assert.NoError(t, err)
		ret3, err := ldb.Has(inValidKey)
		assert.NoError(t, err)

		assert.NoError(t, ldb.Delete(key))
		_, ret4 := ldb.Get(key)

		tests := []struct {
			ret      any
			expected any
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{ldb.IsNotFound(ret4), true},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	ldb, err := New(dir, Options{})
	require.NoError(t, err)
	require.NoError(t, ldb.Put([]byte("k"), []byte("v")))

	_, err = New(dir, Options{})
	assert.Error(t, err, "dir must stay locked while open")

	require.NoError(t, ldb.Close())

	ldb, err = New(dir, Options{})
	require.NoError(t, err)
	defer ldb.Close()
	v, err := ldb.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestBulkAndSnapshot(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	b := ldb.Bulk()
	assert.NoError(t, b.Put([]byte("a"), []byte("1")))
	assert.NoError(t, b.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, b.Len())

	_, err = ldb.Get([]byte("a"))
	assert.True(t, ldb.IsNotFound(err), "bulk must not be visible before write")

	require.NoError(t, b.Write())

	snap := ldb.Snapshot()
	defer snap.Release()
	assert.NoError(t, ldb.Put([]byte("a"), []byte("changed")))

	v, err := snap.Get([]byte("a"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestBuckets(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	b1 := kv.Bucket("x")
	b2 := kv.Bucket("y")

	assert.NoError(t, b1.NewPutter(ldb).Put([]byte("1"), []byte("a")))
	assert.NoError(t, b2.NewPutter(ldb).Put([]byte("1"), []byte("c")))

	v, err := b1.NewGetter(ldb).Get([]byte("1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("a"), v)

	v, err = b2.NewGetter(ldb).Get([]byte("1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("c"), v)

	raw, err := ldb.Get([]byte("x1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("a"), raw)

	assert.NoError(t, b1.NewPutter(ldb).Delete([]byte("1")))
	has, err := b1.NewGetter(ldb).Has([]byte("1"))
	assert.NoError(t, err)
	assert.False(t, has)
}
