// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/value"
)

// Transaction is an immutable contract call.
type Transaction struct {
	body body

	cache struct {
		id atomic.Pointer[tfnet.Bytes32]
	}
}

// body describes details of a tx.
type body struct {
	Sender   tfnet.Principal
	Contract string
	Function string
	Args     []value.Value
	Nonce    uint64
}

type bodyRLP struct {
	Sender   tfnet.Principal
	Contract string
	Function string
	Args     []rlp.RawValue
	Nonce    uint64
}

// ID returns the id of tx, which is the blake2b hash of its rlp encoding.
func (t *Transaction) ID() tfnet.Bytes32 {
	if cached := t.cache.id.Load(); cached != nil {
		return *cached
	}
	id := tfnet.Blake2bFn(func(w io.Writer) {
		if err := rlp.Encode(w, t); err != nil {
			panic(err)
		}
	})
	t.cache.id.Store(&id)
	return id
}

// Sender returns the principal asserted as tx-sender.
func (t *Transaction) Sender() tfnet.Principal {
	return t.body.Sender
}

// Contract returns the contract name as given, either short or fully qualified.
func (t *Transaction) Contract() string {
	return t.body.Contract
}

// Function returns the called function name.
func (t *Transaction) Function() string {
	return t.body.Function
}

// Args returns a copy of call arguments.
func (t *Transaction) Args() []value.Value {
	return append([]value.Value(nil), t.body.Args...)
}

// Nonce returns the nonce.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	args := make([]rlp.RawValue, 0, len(t.body.Args))
	for _, arg := range t.body.Args {
		data, err := value.Encode(arg)
		if err != nil {
			return err
		}
		args = append(args, data)
	}
	return rlp.Encode(w, &bodyRLP{
		Sender:   t.body.Sender,
		Contract: t.body.Contract,
		Function: t.body.Function,
		Args:     args,
		Nonce:    t.body.Nonce,
	})
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var b bodyRLP
	if err := s.Decode(&b); err != nil {
		return err
	}
	args := make([]value.Value, 0, len(b.Args))
	for i, raw := range b.Args {
		v, err := value.Decode(raw)
		if err != nil {
			return errors.WithMessagef(err, "decode arg %d", i)
		}
		args = append(args, v)
	}
	*t = Transaction{body: body{
		Sender:   b.Sender,
		Contract: b.Contract,
		Function: b.Function,
		Args:     args,
		Nonce:    b.Nonce,
	}}
	return nil
}

func (t *Transaction) String() string {
	args := make([]string, 0, len(t.body.Args))
	for _, arg := range t.body.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf(`
	Tx(%v)
	Sender:   %v
	Call:     (contract-call? .%v %v %v)
	Nonce:    %v`, t.ID(), t.body.Sender, t.body.Contract, t.body.Function, strings.Join(args, " "), t.body.Nonce)
}

// ContractCall builds a tx calling fn on contract with args, sent by sender.
func ContractCall(contract, fn string, args []value.Value, sender tfnet.Principal) *Transaction {
	return new(Builder).
		Sender(sender).
		Contract(contract).
		Function(fn).
		Args(args...).
		Build()
}
