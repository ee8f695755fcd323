// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/value"
)

// Event is printed by a contract during a call.
type Event struct {
	// the contract printing the event
	Contract tfnet.Principal
	Topic    string
	Value    value.Value
}

// Events slice of event logs.
type Events []*Event

type eventRLP struct {
	Contract tfnet.Principal
	Topic    string
	Value    rlp.RawValue
}

// EncodeRLP implements rlp.Encoder
func (e *Event) EncodeRLP(w io.Writer) error {
	data, err := value.Encode(e.Value)
	if err != nil {
		return err
	}
	return rlp.Encode(w, &eventRLP{e.Contract, e.Topic, data})
}

// DecodeRLP implements rlp.Decoder
func (e *Event) DecodeRLP(s *rlp.Stream) error {
	var obj eventRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	v, err := value.Decode(obj.Value)
	if err != nil {
		return err
	}
	*e = Event{obj.Contract, obj.Topic, v}
	return nil
}
