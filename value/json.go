// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package value

import (
	"encoding/json"
)

type jsonValue struct {
	Type    string `json:"type"`
	Success *bool  `json:"success,omitempty"`
	Value   any    `json:"value"`
}

func (u UintValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonValue{Type: KindUint.String(), Value: u.v.Dec()})
}

func (b BoolValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonValue{Type: KindBool.String(), Value: bool(b)})
}

func (s ASCIIValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonValue{Type: KindASCII.String(), Value: string(s)})
}

func (p PrincipalValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonValue{Type: KindPrincipal.String(), Value: p.p.String()})
}

func (o OptionalValue) MarshalJSON() ([]byte, error) {
	var inner any
	if o.inner != nil {
		inner = o.inner
	}
	return json.Marshal(&jsonValue{Type: KindOptional.String(), Value: inner})
}

func (r ResponseValue) MarshalJSON() ([]byte, error) {
	ok := r.ok
	return json.Marshal(&jsonValue{Type: KindResponse.String(), Success: &ok, Value: r.inner})
}

func (t TupleValue) MarshalJSON() ([]byte, error) {
	fields := make(map[string]Value, len(t.names))
	for i, n := range t.names {
		fields[n] = t.values[i]
	}
	return json.Marshal(&jsonValue{Type: KindTuple.String(), Value: fields})
}
