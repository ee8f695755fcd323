// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package value implements the typed values exchanged with contracts:
// call arguments, call results and the records contracts expose.
package value

import (
	"encoding/json"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/tfnet"
)

// Kind is the kind of value.
type Kind uint8

// value kinds
const (
	KindUint Kind = iota + 1
	KindBool
	KindASCII
	KindPrincipal
	KindOptional
	KindResponse
	KindTuple
)

var kindNames = map[Kind]string{
	KindUint:      "uint",
	KindBool:      "bool",
	KindASCII:     "string-ascii",
	KindPrincipal: "principal",
	KindOptional:  "optional",
	KindResponse:  "response",
	KindTuple:     "tuple",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ErrUintOverflow is returned when a number does not fit in 128 bits.
var ErrUintOverflow = errors.New("uint overflows 128 bits")

// Value is a contract value.
type Value interface {
	Kind() Kind
	String() string
	json.Marshaler
}

// UintValue is an unsigned 128-bit integer.
type UintValue struct {
	v uint256.Int
}

// Uint creates an uint value.
func Uint(x uint64) UintValue {
	var u UintValue
	u.v.SetUint64(x)
	return u
}

// UintFromUint256 creates an uint value, failing if x exceeds 128 bits.
func UintFromUint256(x *uint256.Int) (UintValue, error) {
	if x.BitLen() > 128 {
		return UintValue{}, ErrUintOverflow
	}
	var u UintValue
	u.v.Set(x)
	return u, nil
}

// UintFromBig creates an uint value from big.Int.
func UintFromBig(x *big.Int) (UintValue, error) {
	if x.Sign() < 0 {
		return UintValue{}, errors.New("negative uint")
	}
	u, overflow := uint256.FromBig(x)
	if overflow {
		return UintValue{}, ErrUintOverflow
	}
	return UintFromUint256(u)
}

func (u UintValue) Kind() Kind { return KindUint }

// Uint256 returns a copy of the number.
func (u UintValue) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&u.v)
}

// Uint64 returns the number if it fits in 64 bits.
func (u UintValue) Uint64() (uint64, bool) {
	return u.v.Uint64(), u.v.IsUint64()
}

// IsZero returns whether the number is zero.
func (u UintValue) IsZero() bool { return u.v.IsZero() }

func (u UintValue) String() string { return "u" + u.v.Dec() }

// BoolValue is a boolean.
type BoolValue bool

// Bool creates a bool value.
func Bool(b bool) BoolValue { return BoolValue(b) }

func (b BoolValue) Kind() Kind { return KindBool }

func (b BoolValue) String() string { return strconv.FormatBool(bool(b)) }

// ASCIIValue is a printable ASCII string.
type ASCIIValue string

// ASCII creates an ascii string value.
func ASCII(s string) ASCIIValue { return ASCIIValue(s) }

func (s ASCIIValue) Kind() Kind { return KindASCII }

// Validate checks all bytes are printable ASCII.
func (s ASCIIValue) Validate() error {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c > 0x7e {
			if c != '\n' && c != '\t' {
				return errors.Errorf("non-ascii byte 0x%02x at %d", c, i)
			}
		}
	}
	return nil
}

func (s ASCIIValue) String() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// PrincipalValue wraps a principal.
type PrincipalValue struct {
	p tfnet.Principal
}

// Principal creates a principal value.
func Principal(p tfnet.Principal) PrincipalValue { return PrincipalValue{p} }

func (p PrincipalValue) Kind() Kind { return KindPrincipal }

// Principal returns the wrapped principal.
func (p PrincipalValue) Principal() tfnet.Principal { return p.p }

func (p PrincipalValue) String() string { return "'" + p.p.String() }

// OptionalValue is either (some v) or none.
type OptionalValue struct {
	inner Value
}

// Some wraps v into an optional.
func Some(v Value) OptionalValue { return OptionalValue{v} }

// None returns the empty optional.
func None() OptionalValue { return OptionalValue{} }

func (o OptionalValue) Kind() Kind { return KindOptional }

// IsSome returns whether the optional holds a value.
func (o OptionalValue) IsSome() bool { return o.inner != nil }

// Inner returns the held value, nil for none.
func (o OptionalValue) Inner() Value { return o.inner }

func (o OptionalValue) String() string {
	if o.inner == nil {
		return "none"
	}
	return "(some " + o.inner.String() + ")"
}

// ResponseValue is either (ok v) or (err v).
type ResponseValue struct {
	ok    bool
	inner Value
}

// OK creates a successful response.
func OK(v Value) ResponseValue { return ResponseValue{true, v} }

// Err creates an error response.
func Err(v Value) ResponseValue { return ResponseValue{false, v} }

// ErrCode is shorthand for (err uN).
func ErrCode(code uint64) ResponseValue { return Err(Uint(code)) }

func (r ResponseValue) Kind() Kind { return KindResponse }

// IsOK returns whether the response is successful.
func (r ResponseValue) IsOK() bool { return r.ok }

// Inner returns the wrapped value.
func (r ResponseValue) Inner() Value { return r.inner }

func (r ResponseValue) String() string {
	if r.ok {
		return "(ok " + r.inner.String() + ")"
	}
	return "(err " + r.inner.String() + ")"
}

// TupleValue is a record of named values, kept sorted by name.
type TupleValue struct {
	names  []string
	values []Value
}

// Tuple creates a tuple from fields.
func Tuple(fields map[string]Value) TupleValue {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)

	t := TupleValue{names: names, values: make([]Value, len(names))}
	for i, n := range names {
		t.values[i] = fields[n]
	}
	return t
}

func (t TupleValue) Kind() Kind { return KindTuple }

// Get returns the field by name.
func (t TupleValue) Get(name string) (Value, bool) {
	i := sort.SearchStrings(t.names, name)
	if i < len(t.names) && t.names[i] == name {
		return t.values[i], true
	}
	return nil, false
}

// Names returns field names in order.
func (t TupleValue) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of fields.
func (t TupleValue) Len() int { return len(t.names) }

func (t TupleValue) String() string {
	var sb strings.Builder
	sb.WriteString("(tuple")
	for i, n := range t.names {
		sb.WriteString(" (")
		sb.WriteString(n)
		sb.WriteByte(' ')
		sb.WriteString(t.values[i].String())
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}
