// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tfnet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes32MarshalUnmarshal(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	assert.NoError(t, json.Unmarshal([]byte(originalHex), &b))

	out, err := json.Marshal(b)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(out))

	out, err = json.Marshal(&b)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(out))
}

func TestParseBytes32(t *testing.T) {
	_, err := ParseBytes32("0x1234")
	assert.Error(t, err)

	_, err = ParseBytes32("1x00000000000000000000000000000000000000000000000000006d6173746572")
	assert.Error(t, err)

	_, err = ParseBytes32("0x00000000000000000000000000000000000000000000000000006d61737465zz")
	assert.Error(t, err)

	b, err := ParseBytes32("00000000000000000000000000000000000000000000000000006d6173746572")
	assert.NoError(t, err)
	assert.Equal(t, BytesToBytes32([]byte("master")), b)

	upper, err := ParseBytes32("0X00000000000000000000000000000000000000000000000000006D6173746572")
	assert.NoError(t, err)
	assert.Equal(t, b, upper)
	assert.Equal(t, "0x00000000…73746572", upper.AbbrevString())
}

func TestBytes32MapKey(t *testing.T) {
	id := BytesToBytes32([]byte("master"))
	out, err := json.Marshal(map[Bytes32]int{id: 1})
	assert.NoError(t, err)
	assert.Equal(t, `{"`+id.String()+`":1}`, string(out))
}

func TestBlake2b(t *testing.T) {
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
}
