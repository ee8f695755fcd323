// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package value

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/tfnet"
)

// Parse parses an argument literal:
//
//	u100000                                      uint
//	true, false                                  bool
//	"Invoice-001,BOL-002"                        string-ascii
//	'ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM   principal
func Parse(literal string) (Value, error) {
	s := strings.TrimSpace(literal)
	switch {
	case s == "":
		return nil, errors.New("empty literal")
	case s == "true":
		return Bool(true), nil
	case s == "false":
		return Bool(false), nil
	case s[0] == 'u':
		n, ok := new(big.Int).SetString(s[1:], 10)
		if !ok {
			return nil, errors.Errorf("invalid uint literal %q", s)
		}
		return UintFromBig(n)
	case s[0] == '\'':
		p, err := tfnet.ParsePrincipal(s[1:])
		if err != nil {
			return nil, err
		}
		return Principal(p), nil
	case s[0] == '"':
		return parseASCII(s)
	}
	return nil, errors.Errorf("unsupported literal %q", s)
}

// ParseAll parses a list of literals.
func ParseAll(literals []string) ([]Value, error) {
	values := make([]Value, 0, len(literals))
	for i, l := range literals {
		v, err := Parse(l)
		if err != nil {
			return nil, errors.WithMessagef(err, "arg #%d", i)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseASCII(s string) (Value, error) {
	if len(s) < 2 || s[len(s)-1] != '"' {
		return nil, errors.New("unterminated string literal")
	}
	body := s[1 : len(s)-1]

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '"' {
			return nil, errors.New("unescaped quote in string literal")
		}
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return nil, errors.New("dangling escape in string literal")
		}
		switch body[i] {
		case '"', '\\':
			sb.WriteByte(body[i])
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			return nil, errors.Errorf("unknown escape \\%c", body[i])
		}
	}
	v := ASCII(sb.String())
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}
