// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package value

import (
	"fmt"

	"github.com/pkg/errors"
)

// Type describes the accepted shape of a function argument.
type Type struct {
	kind   Kind
	maxLen int
}

// argument types
var (
	TypeUint      = Type{kind: KindUint}
	TypeBool      = Type{kind: KindBool}
	TypePrincipal = Type{kind: KindPrincipal}
)

// TypeASCII is a string-ascii type with the given maximum length.
func TypeASCII(maxLen int) Type {
	return Type{kind: KindASCII, maxLen: maxLen}
}

// Kind returns the kind of value accepted.
func (t Type) Kind() Kind { return t.kind }

func (t Type) String() string {
	if t.kind == KindASCII {
		return fmt.Sprintf("(string-ascii %d)", t.maxLen)
	}
	return t.kind.String()
}

// Check checks whether v conforms to t.
func (t Type) Check(v Value) error {
	if v == nil {
		return errors.Errorf("expected %v, got nothing", t)
	}
	if v.Kind() != t.kind {
		return errors.Errorf("expected %v, got %v", t, v.Kind())
	}
	if t.kind == KindASCII {
		s := v.(ASCIIValue)
		if len(s) > t.maxLen {
			return errors.Errorf("expected %v, got string of length %d", t, len(s))
		}
		return s.Validate()
	}
	return nil
}
