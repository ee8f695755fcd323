// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetOrLoad(t *testing.T) {
	c := MustNewLRU(2)

	loads := 0
	load := func() (any, error) {
		loads++
		return "v", nil
	}

	v, cached, err := c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.False(t, cached)

	v, cached, err = c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.True(t, cached)
	assert.Equal(t, 1, loads)

	s, _ := c.Stats().Snapshot()
	assert.Equal(t, Snapshot{Hit: 1, Miss: 1}, s)

	_, _, err = c.GetOrLoad("bad", func() (any, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	assert.False(t, c.Contains("bad"))
}

func TestLRUInvalidSize(t *testing.T) {
	_, err := NewLRU(0)
	assert.Error(t, err)
}
