// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU a LRU cache extends golang-lru with loading and hit statistics.
type LRU struct {
	*lru.Cache
	stats Stats
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU(maxSize int) (*LRU, error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{Cache: c}, nil
}

// MustNewLRU is NewLRU, panic on error.
func MustNewLRU(maxSize int) *LRU {
	c, err := NewLRU(maxSize)
	if err != nil {
		panic(err)
	}
	return c
}

// GetOrLoad first try to get from cache, do load if missed.
// The returned bool reports whether the value came from the cache.
func (l *LRU) GetOrLoad(key any, load func() (any, error)) (any, bool, error) {
	if v, ok := l.Get(key); ok {
		l.stats.Hit()
		return v, true, nil
	}
	l.stats.Miss()
	v, err := load()
	if err != nil {
		return nil, false, err
	}
	l.Add(key, v)
	return v, false, nil
}

// Stats returns the hit statistics of the cache.
func (l *LRU) Stats() *Stats {
	return &l.stats
}
