// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bps implements basis-point arithmetic with floor division.
package bps

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/tfnet"
)

// ErrRateOutOfRange is returned when a rate exceeds the basis-point denominator.
var ErrRateOutOfRange = errors.New("bps: rate out of range")

var denominator = uint256.NewInt(tfnet.BasisPointsDenominator)

// Apply returns amount*rate/10000, rounded down.
func Apply(amount, rate *uint256.Int) (*uint256.Int, error) {
	if rate.Gt(denominator) {
		return nil, ErrRateOutOfRange
	}
	// 128-bit operands, the product never overflows 256 bits
	z := new(uint256.Int).Mul(amount, rate)
	return z.Div(z, denominator), nil
}

// Discount returns amount - amount*rate/10000.
func Discount(amount, rate *uint256.Int) (*uint256.Int, error) {
	cut, err := Apply(amount, rate)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Sub(amount, cut), nil
}
