// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/api/types"
	"github.com/vechain/tfnet/simnet"
)

func initSubscriptionsServer(t *testing.T) (*simnet.Simnet, *Subscriptions, *httptest.Server) {
	sn, err := simnet.NewDefault()
	require.NoError(t, err)

	subs := New(sn.Repo(), []string{"*"})
	router := mux.NewRouter()
	subs.Mount(router, "/subscriptions")
	ts := httptest.NewServer(router)

	t.Cleanup(func() {
		ts.Close()
		subs.Close()
		sn.Close()
	})
	return sn, subs, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	u := url.URL{Scheme: "ws", Host: ts.Listener.Addr().String(), Path: "/subscriptions/block", RawQuery: query}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readBlock(t *testing.T, conn *websocket.Conn) *types.JSONCollapsedBlock {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var blk types.JSONCollapsedBlock
	require.NoError(t, conn.ReadJSON(&blk))
	return &blk
}

func TestSubscribeNewBlocks(t *testing.T) {
	sn, _, ts := initSubscriptionsServer(t)
	conn := dial(t, ts, "")

	// wait for the handler to start piping before mining
	time.Sleep(50 * time.Millisecond)
	blk, _, err := sn.MineBlock()
	require.NoError(t, err)

	got := readBlock(t, conn)
	assert.Equal(t, blk.Header().ID(), got.ID)
	assert.Equal(t, uint32(1), got.Number)
	assert.Empty(t, got.Transactions)
}

func TestSubscribeFromPosition(t *testing.T) {
	sn, _, ts := initSubscriptionsServer(t)
	for i := 0; i < 3; i++ {
		_, _, err := sn.MineBlock()
		require.NoError(t, err)
	}

	conn := dial(t, ts, "pos=1")
	for n := uint32(1); n <= 3; n++ {
		assert.Equal(t, n, readBlock(t, conn).Number)
	}
}

func TestSubscribeBadPosition(t *testing.T) {
	_, _, ts := initSubscriptionsServer(t)

	for _, pos := range []string{"abc", "100"} {
		resp, err := http.Get(ts.URL + "/subscriptions/block?pos=" + pos)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, pos)
	}
}

func TestBlockReaderPaging(t *testing.T) {
	sn, err := simnet.NewDefault()
	require.NoError(t, err)
	defer sn.Close()

	for i := 0; i < maxReadBlocks+5; i++ {
		_, _, err := sn.MineBlock()
		require.NoError(t, err)
	}

	br := newBlockReader(sn.Repo(), 0)
	msgs, hasMore, err := br.Read()
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Len(t, msgs, maxReadBlocks)

	msgs, hasMore, err = br.Read()
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Len(t, msgs, 6)

	msgs, _, err = br.Read()
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
