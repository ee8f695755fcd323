// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the error codes native contracts answer with.
package reverts

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/value"
)

// Code is a contract error code, surfaced to callers as (err uN).
type Code uint64

func (c Code) Error() string {
	return fmt.Sprintf("(err u%d)", uint64(c))
}

// Value returns the response value carrying the code.
func (c Code) Value() value.ResponseValue {
	return value.ErrCode(uint64(c))
}

// AsCode extracts a Code from err, if any.
func AsCode(err error) (Code, bool) {
	var code Code
	if errors.As(err, &code) {
		return code, true
	}
	return 0, false
}
