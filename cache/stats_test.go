// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsSnapshot(t *testing.T) {
	cs := &Stats{}

	s, changed := cs.Snapshot()
	assert.Equal(t, Snapshot{}, s)
	assert.False(t, changed)
	assert.Zero(t, s.HitRate())

	cs.Hit()
	cs.Miss()
	s, changed = cs.Snapshot()
	assert.Equal(t, Snapshot{Hit: 1, Miss: 1}, s)
	assert.True(t, changed)
	assert.Equal(t, 0.5, s.HitRate())

	// same rate, more lookups
	cs.Hit()
	cs.Miss()
	_, changed = cs.Snapshot()
	assert.False(t, changed)

	assert.Equal(t, int64(3), cs.Hit())
	s, changed = cs.Snapshot()
	assert.Equal(t, Snapshot{Hit: 3, Miss: 2}, s)
	assert.True(t, changed)
}
