// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tfnet

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrincipal(t *testing.T) {
	tests := []struct {
		addr string
		hash string
	}{
		{"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", "6d78de7b0625dfbfc16c3a8a5735f6dc3dc3f2ce"},
		{"ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG", "99e2ec69ac5b6e67b4e26edd0e2c1c1a6b9bbd23"},
		{"ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC", "a5180cc1ff6050df53f0ab766d76b630e14feb0c"},
		{"ST2NEB84ASENDXKYGJPQW86YXQCEFEX2ZQPG87ND", "05572d04565d56f67e84ad7e20deedd8e7bba2fd"},
	}

	for _, tt := range tests {
		p, err := ParsePrincipal(tt.addr)
		require.NoError(t, err, tt.addr)

		hash := p.Hash160()
		assert.Equal(t, tt.hash, hex.EncodeToString(hash[:]))
		assert.Equal(t, TestnetSingleSig, p.Version())
		assert.Equal(t, tt.addr, p.String())
		assert.False(t, p.IsContract())
	}
}

func TestParsePrincipalLowerCase(t *testing.T) {
	p, err := ParsePrincipal("st1pqhqkv0rjxzfy1dgx8mnsnyve3vgzjsrtpgzgm")
	require.NoError(t, err)
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", p.String())
}

func TestParsePrincipalInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"ST",
		"XT1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM",  // prefix
		"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGN",  // checksum
		"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZG",   // length
		"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZG!",  // alphabet
		"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.", // empty contract name
		"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.1abc",
		"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.a b",
	} {
		_, err := ParsePrincipal(s)
		assert.Error(t, err, s)
	}
}

func TestContractPrincipal(t *testing.T) {
	deployer := MustParsePrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	c, err := deployer.Contract("letter-of-credit")
	require.NoError(t, err)

	assert.True(t, c.IsContract())
	assert.Equal(t, "letter-of-credit", c.ContractName())
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.letter-of-credit", c.String())
	assert.Equal(t, deployer, c.Standard())
	assert.NotEqual(t, deployer, c)

	parsed, err := ParsePrincipal(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestPrincipalCodec(t *testing.T) {
	p := MustParsePrincipal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG.trade-finance-manager")

	data, err := rlp.EncodeToBytes(p)
	require.NoError(t, err)
	var decoded Principal
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, p, decoded)

	js, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG.trade-finance-manager"`, string(js))

	var fromJSON Principal
	require.NoError(t, json.Unmarshal(js, &fromJSON))
	assert.Equal(t, p, fromJSON)
}

func TestC32RoundTrip(t *testing.T) {
	for _, data := range [][]byte{
		{0x00, 0x00, 0x01},
		{0xff},
		{0x00},
		{0x05, 0x57, 0x2d},
	} {
		enc := c32Encode(data)
		assert.Equal(t, data, c32Decode(enc), enc)
	}
}
