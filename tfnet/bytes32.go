// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tfnet

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	_ encoding.TextMarshaler   = Bytes32{}
	_ encoding.TextUnmarshaler = (*Bytes32)(nil)
)

// Bytes32 is a 32-byte identifier: block ids, tx ids and state roots.
// Its text form is 0x-prefixed lowercase hex.
type Bytes32 [32]byte

func (b Bytes32) String() string { return "0x" + hex.EncodeToString(b[:]) }

// AbbrevString renders the first and last 4 bytes, for logs.
func (b Bytes32) AbbrevString() string { return fmt.Sprintf("0x%x…%x", b[:4], b[28:]) }

func (b Bytes32) Bytes() []byte { return b[:] }

func (b Bytes32) IsZero() bool { return b == Bytes32{} }

// MarshalText implements encoding.TextMarshaler.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes32) UnmarshalText(text []byte) error {
	parsed, err := ParseBytes32(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 parses 64 hex digits, optionally 0x-prefixed.
func ParseBytes32(s string) (Bytes32, error) {
	digits := s
	if len(s) == 2+2*len(Bytes32{}) {
		if !strings.EqualFold(s[:2], "0x") {
			return Bytes32{}, errors.Errorf("bytes32 %q: invalid prefix", s)
		}
		digits = s[2:]
	}
	if len(digits) != 2*len(Bytes32{}) {
		return Bytes32{}, errors.Errorf("bytes32 %q: invalid length", s)
	}

	var b Bytes32
	if _, err := hex.Decode(b[:], []byte(digits)); err != nil {
		return Bytes32{}, errors.WithMessagef(err, "bytes32 %q", s)
	}
	return b, nil
}

// MustParseBytes32 is ParseBytes32 that panics on malformed input.
func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 left-pads b to 32 bytes, keeping the rightmost 32 if b is longer.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
