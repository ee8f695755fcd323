// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tfnet

import (
	"bytes"
	"crypto/sha256"
	"encoding"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Principal versions of the c32check address space.
const (
	MainnetSingleSig byte = 22
	MainnetMultiSig  byte = 20
	TestnetSingleSig byte = 26
	TestnetMultiSig  byte = 21
)

const (
	c32Alphabet    = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	hashLength     = 20
	checksumLength = 4
)

var (
	errInvalidPrincipal = errors.New("invalid principal")

	_ encoding.TextMarshaler   = Principal{}
	_ encoding.TextUnmarshaler = (*Principal)(nil)
	_ rlp.Encoder              = Principal{}
	_ rlp.Decoder              = (*Principal)(nil)
)

// Principal identifies an account or a contract on the ledger.
// A standard principal is a version byte plus a 20-byte hash160, rendered with c32check.
// A contract principal is a standard principal qualified by a contract name.
type Principal struct {
	version byte
	hash    [hashLength]byte
	name    string
}

// NewPrincipal creates a standard principal.
func NewPrincipal(version byte, hash [hashLength]byte) Principal {
	return Principal{version: version & 0x1f, hash: hash}
}

// ParsePrincipal parses the textual form of a principal, e.g.
// "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM" or "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.letter-of-credit".
func ParsePrincipal(s string) (Principal, error) {
	addr, name, qualified := strings.Cut(s, ".")

	p, err := parseStandard(addr)
	if err != nil {
		return Principal{}, errors.WithMessage(err, s)
	}
	if qualified {
		return p.Contract(name)
	}
	return p, nil
}

// MustParsePrincipal parses principal, panic on error.
func MustParsePrincipal(s string) Principal {
	p, err := ParsePrincipal(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseStandard(s string) (Principal, error) {
	if len(s) < 3 || (s[0] != 'S' && s[0] != 's') {
		return Principal{}, errors.Wrap(errInvalidPrincipal, "missing 'S' prefix")
	}
	normalized, err := normalizeC32(s[1:])
	if err != nil {
		return Principal{}, err
	}
	version := byte(strings.IndexByte(c32Alphabet, normalized[0]))

	payload := c32Decode(normalized[1:])
	if len(payload) != hashLength+checksumLength {
		return Principal{}, errors.Wrap(errInvalidPrincipal, "bad payload length")
	}
	var hash [hashLength]byte
	copy(hash[:], payload[:hashLength])

	if !bytes.Equal(c32Checksum(version, hash[:]), payload[hashLength:]) {
		return Principal{}, errors.Wrap(errInvalidPrincipal, "checksum mismatch")
	}

	p := NewPrincipal(version, hash)
	// reject non-canonical spellings that happen to decode
	if p.standardString()[1:] != normalized {
		return Principal{}, errors.Wrap(errInvalidPrincipal, "non-canonical encoding")
	}
	return p, nil
}

// Contract returns the contract principal deployed by p under name.
func (p Principal) Contract(name string) (Principal, error) {
	if !validContractName(name) {
		return Principal{}, errors.Wrapf(errInvalidPrincipal, "bad contract name %q", name)
	}
	c := p
	c.name = name
	return c, nil
}

// Version returns the version byte.
func (p Principal) Version() byte { return p.version }

// Hash160 returns the hash part of the principal.
func (p Principal) Hash160() [hashLength]byte { return p.hash }

// IsZero returns whether p is the zero principal.
func (p Principal) IsZero() bool { return p == Principal{} }

// IsContract returns whether p names a contract.
func (p Principal) IsContract() bool { return p.name != "" }

// ContractName returns the contract name, empty for standard principals.
func (p Principal) ContractName() string { return p.name }

// Standard strips the contract name.
func (p Principal) Standard() Principal {
	return Principal{version: p.version, hash: p.hash}
}

// String implements the stringer interface.
func (p Principal) String() string {
	if p.name != "" {
		return p.standardString() + "." + p.name
	}
	return p.standardString()
}

func (p Principal) standardString() string {
	checksum := c32Checksum(p.version, p.hash[:])
	return "S" + string(c32Alphabet[p.version]) + c32Encode(append(p.hash[:], checksum...))
}

// Bytes returns the canonical binary form, used in storage keys.
func (p Principal) Bytes() []byte {
	b := make([]byte, 0, 1+hashLength+len(p.name))
	b = append(b, p.version)
	b = append(b, p.hash[:]...)
	return append(b, p.name...)
}

// MarshalText implements encoding.TextMarshaler.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Principal) UnmarshalText(text []byte) error {
	parsed, err := ParsePrincipal(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

type principalRLP struct {
	Version byte
	Hash    []byte
	Name    string
}

// EncodeRLP implements rlp.Encoder.
func (p Principal) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &principalRLP{p.version, p.hash[:], p.name})
}

// DecodeRLP implements rlp.Decoder.
func (p *Principal) DecodeRLP(s *rlp.Stream) error {
	var obj principalRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	if len(obj.Hash) != hashLength || obj.Version >= 32 {
		return errInvalidPrincipal
	}
	if obj.Name != "" && !validContractName(obj.Name) {
		return errInvalidPrincipal
	}
	var decoded Principal
	decoded.version = obj.Version
	copy(decoded.hash[:], obj.Hash)
	decoded.name = obj.Name
	*p = decoded
	return nil
}

func validContractName(name string) bool {
	if len(name) == 0 || len(name) > MaxContractNameLength {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '_'):
		default:
			return false
		}
	}
	return true
}

func c32Checksum(version byte, data []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, data...))
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}

// normalizeC32 upper-cases s and maps the ambiguous letters O, L and I.
func normalizeC32(s string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		switch c {
		case 'O':
			c = '0'
		case 'L', 'I':
			c = '1'
		}
		if strings.IndexByte(c32Alphabet, c) < 0 {
			return "", errors.Wrapf(errInvalidPrincipal, "invalid character %q", s[i])
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

// c32Encode encodes data as a big-endian base32 number, keeping one '0' per leading zero byte.
func c32Encode(data []byte) string {
	n := new(big.Int).SetBytes(data)
	base := big.NewInt(32)
	mod := new(big.Int)

	var out []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		out = append(out, c32Alphabet[mod.Int64()])
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		out = append(out, '0')
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// c32Decode is the inverse of c32Encode. s must be normalized.
func c32Decode(s string) []byte {
	n := new(big.Int)
	base := big.NewInt(32)
	for i := 0; i < len(s); i++ {
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(strings.IndexByte(c32Alphabet, s[i]))))
	}
	zeros := 0
	for zeros < len(s) && s[zeros] == '0' {
		zeros++
	}
	return append(make([]byte, zeros), n.Bytes()...)
}
