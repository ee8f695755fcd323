// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Goes tracks background loops so their owner can wait for them on shutdown.
// The zero value is ready to use.
type Goes struct {
	wg sync.WaitGroup
}

// Go starts f in a new goroutine tracked by g.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go g.run(f)
}

func (g *Goes) run(f func()) {
	defer g.wg.Done()
	f()
}

// Wait blocks until every goroutine started with Go has returned.
func (g *Goes) Wait() { g.wg.Wait() }
