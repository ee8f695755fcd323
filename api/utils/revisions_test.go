// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tfnet/simnet"
	"github.com/vechain/tfnet/tfnet"
)

func TestParseRevision(t *testing.T) {
	testCases := []struct {
		revision string
		err      bool
		expected *Revision
	}{
		{"", false, &Revision{revBest}},
		{"best", false, &Revision{revBest}},
		{"1234", false, &Revision{uint32(1234)}},
		{"0x10", false, &Revision{uint32(16)}},
		{"0x" + "00000001" + "aabbccddeeff00112233445566778899aabbccddeeff001122334455", false,
			&Revision{tfnet.MustParseBytes32("0x00000001aabbccddeeff00112233445566778899aabbccddeeff001122334455")}},
		{"4294967296", true, nil},
		{"next", true, nil},
		{"-1", true, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.revision, func(t *testing.T) {
			result, err := ParseRevision(tc.revision)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestGetSummary(t *testing.T) {
	sn, err := simnet.NewDefault()
	require.NoError(t, err)
	defer sn.Close()

	_, _, err = sn.MineBlock()
	require.NoError(t, err)

	best, err := GetSummary(&Revision{revBest}, sn.Repo())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), best.Header.Number())

	genesis, err := GetSummary(&Revision{uint32(0)}, sn.Repo())
	require.NoError(t, err)
	assert.Equal(t, sn.Genesis().ID(), genesis.Header.ID())

	byID, err := GetSummary(&Revision{best.Header.ID()}, sn.Repo())
	require.NoError(t, err)
	assert.Equal(t, best.Header.ID(), byID.Header.ID())

	_, err = GetSummary(&Revision{uint32(9)}, sn.Repo())
	assert.True(t, sn.Repo().IsNotFound(err))
}
