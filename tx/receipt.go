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

// Receipt represents the results of a transaction.
type Receipt struct {
	TxID tfnet.Bytes32
	// the resolved contract principal, zero if resolution failed
	Contract tfnet.Principal
	Function string
	// true if the call returned (ok ...) and its writes were kept
	Committed bool
	// nil if the call faulted
	Result value.Value
	// runtime fault message
	Error  string
	Events Events
}

// Failed returns true if the call faulted before producing a result.
func (r *Receipt) Failed() bool {
	return r.Result == nil
}

type receiptRLP struct {
	TxID      tfnet.Bytes32
	Contract  tfnet.Principal
	Function  string
	Committed bool
	Result    []byte
	Error     string
	Events    Events
}

// EncodeRLP implements rlp.Encoder
func (r *Receipt) EncodeRLP(w io.Writer) error {
	var result []byte
	if r.Result != nil {
		data, err := value.Encode(r.Result)
		if err != nil {
			return err
		}
		result = data
	}
	return rlp.Encode(w, &receiptRLP{
		TxID:      r.TxID,
		Contract:  r.Contract,
		Function:  r.Function,
		Committed: r.Committed,
		Result:    result,
		Error:     r.Error,
		Events:    r.Events,
	})
}

// DecodeRLP implements rlp.Decoder
func (r *Receipt) DecodeRLP(s *rlp.Stream) error {
	var obj receiptRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	var result value.Value
	if len(obj.Result) > 0 {
		v, err := value.Decode(obj.Result)
		if err != nil {
			return err
		}
		result = v
	}
	*r = Receipt{
		TxID:      obj.TxID,
		Contract:  obj.Contract,
		Function:  obj.Function,
		Committed: obj.Committed,
		Result:    result,
		Error:     obj.Error,
		Events:    obj.Events,
	}
	return nil
}
