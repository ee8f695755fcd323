// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups.
type Stats struct {
	hit, miss atomic.Int64
	// hit rate in per mille at the last snapshot
	lastRate atomic.Int32
}

// Snapshot is a point-in-time view of Stats.
type Snapshot struct {
	Hit, Miss int64
}

// HitRate returns hits over lookups, 0 without lookups.
func (s Snapshot) HitRate() float64 {
	if lookups := s.Hit + s.Miss; lookups > 0 {
		return float64(s.Hit) / float64(lookups)
	}
	return 0
}

func (cs *Stats) Hit() int64  { return cs.hit.Add(1) }
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Snapshot returns the counters. The bool reports whether the hit rate moved
// by at least one per mille since the previous snapshot.
func (cs *Stats) Snapshot() (Snapshot, bool) {
	s := Snapshot{Hit: cs.hit.Load(), Miss: cs.miss.Load()}
	rate := int32(s.HitRate() * 1000)
	return s, cs.lastRate.Swap(rate) != rate
}
