// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package value

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/tfnet"
)

// encoded is the rlp layout of a value.
type encoded struct {
	Kind  Kind
	Data  []byte
	Names []string
	Items []rlp.RawValue
}

// Encode encodes v into rlp bytes.
func Encode(v Value) ([]byte, error) {
	e, err := toEncoded(v)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(e)
}

// MustEncode encodes v, panic on error.
func MustEncode(v Value) []byte {
	data, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return data
}

// Decode decodes rlp bytes produced by Encode.
func Decode(data []byte) (Value, error) {
	var e encoded
	if err := rlp.DecodeBytes(data, &e); err != nil {
		return nil, err
	}
	return fromEncoded(&e)
}

func toEncoded(v Value) (*encoded, error) {
	if v == nil {
		return nil, errors.New("encode nil value")
	}
	e := &encoded{Kind: v.Kind()}

	encodeItem := func(v Value) error {
		item, err := toEncoded(v)
		if err != nil {
			return err
		}
		raw, err := rlp.EncodeToBytes(item)
		if err != nil {
			return err
		}
		e.Items = append(e.Items, raw)
		return nil
	}

	switch tv := v.(type) {
	case UintValue:
		e.Data = tv.v.Bytes()
	case BoolValue:
		if tv {
			e.Data = []byte{1}
		}
	case ASCIIValue:
		e.Data = []byte(tv)
	case PrincipalValue:
		data, err := rlp.EncodeToBytes(tv.p)
		if err != nil {
			return nil, err
		}
		e.Data = data
	case OptionalValue:
		if tv.inner != nil {
			if err := encodeItem(tv.inner); err != nil {
				return nil, err
			}
		}
	case ResponseValue:
		if tv.ok {
			e.Data = []byte{1}
		}
		if err := encodeItem(tv.inner); err != nil {
			return nil, err
		}
	case TupleValue:
		e.Names = tv.names
		for _, item := range tv.values {
			if err := encodeItem(item); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.Errorf("encode unsupported value %T", v)
	}
	return e, nil
}

func fromEncoded(e *encoded) (Value, error) {
	decodeItem := func(i int) (Value, error) {
		var item encoded
		if err := rlp.DecodeBytes(e.Items[i], &item); err != nil {
			return nil, err
		}
		return fromEncoded(&item)
	}

	switch e.Kind {
	case KindUint:
		if len(e.Data) > 16 {
			return nil, ErrUintOverflow
		}
		var u UintValue
		u.v.SetBytes(e.Data)
		return u, nil
	case KindBool:
		return Bool(len(e.Data) == 1 && e.Data[0] == 1), nil
	case KindASCII:
		return ASCII(string(e.Data)), nil
	case KindPrincipal:
		var p tfnet.Principal
		if err := rlp.DecodeBytes(e.Data, &p); err != nil {
			return nil, err
		}
		return Principal(p), nil
	case KindOptional:
		switch len(e.Items) {
		case 0:
			return None(), nil
		case 1:
			inner, err := decodeItem(0)
			if err != nil {
				return nil, err
			}
			return Some(inner), nil
		}
		return nil, errors.New("optional with multiple items")
	case KindResponse:
		if len(e.Items) != 1 {
			return nil, errors.New("response must have exactly one item")
		}
		inner, err := decodeItem(0)
		if err != nil {
			return nil, err
		}
		if len(e.Data) == 1 && e.Data[0] == 1 {
			return OK(inner), nil
		}
		return Err(inner), nil
	case KindTuple:
		if len(e.Names) != len(e.Items) {
			return nil, errors.New("tuple names and items mismatch")
		}
		fields := make(map[string]Value, len(e.Names))
		for i, n := range e.Names {
			item, err := decodeItem(i)
			if err != nil {
				return nil, err
			}
			fields[n] = item
		}
		return Tuple(fields), nil
	}
	return nil, errors.Errorf("decode unknown kind %d", e.Kind)
}
