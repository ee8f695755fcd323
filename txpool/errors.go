// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import "github.com/pkg/errors"

var (
	errKnownTx  = errors.New("known transaction")
	errTooLarge = errors.New("tx too large")
	errPoolFull = errors.New("tx pool is full")
)

type txRejectedError struct {
	msg string
}

func (e txRejectedError) Error() string {
	return e.msg
}

func IsErrKnownTx(err error) bool {
	return err == errKnownTx
}

func IsErrTooLarge(err error) bool {
	return err == errTooLarge
}

func IsErrPoolFull(err error) bool {
	return err == errPoolFull
}

// IsTxRejected returns whether err is caused by an invalid tx.
func IsTxRejected(err error) bool {
	_, ok := err.(txRejectedError)
	return ok
}
