// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/api/types"
	"github.com/vechain/tfnet/api/utils"
	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/txpool"
)

// Pool is the part of the tx pool used here.
type Pool interface {
	Add(newTx *tx.Transaction) error
	Get(id tfnet.Bytes32) *tx.Transaction
}

type Transactions struct {
	repo *chain.Repository
	pool Pool
}

func New(repo *chain.Repository, pool Pool) *Transactions {
	return &Transactions{repo, pool}
}

func (t *Transactions) getTransactionByID(txID tfnet.Bytes32, allowPending bool) (*types.JSONTransaction, error) {
	trx, meta, err := t.repo.GetTransaction(txID)
	if err != nil {
		if t.repo.IsNotFound(err) {
			if allowPending {
				if pending := t.pool.Get(txID); pending != nil {
					return types.NewJSONTransaction(pending, nil), nil
				}
			}
			return nil, nil
		}
		return nil, err
	}
	summary, err := t.repo.GetBlockSummary(meta.BlockID)
	if err != nil {
		return nil, err
	}
	return types.NewJSONTransaction(trx, types.NewTxMeta(summary.Header)), nil
}

func (t *Transactions) getTransactionReceiptByID(txID tfnet.Bytes32) (*types.JSONReceipt, error) {
	receipt, meta, err := t.repo.GetTransactionReceipt(txID)
	if err != nil {
		if t.repo.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	summary, err := t.repo.GetBlockSummary(meta.BlockID)
	if err != nil {
		return nil, err
	}
	return types.NewJSONReceipt(receipt, types.NewTxMeta(summary.Header)), nil
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var body types.SendTx
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	trx, err := body.Transaction(uint64(time.Now().UnixNano()))
	if err != nil {
		return utils.BadRequest(err)
	}

	if err := t.pool.Add(trx); err != nil {
		if txpool.IsTxRejected(err) || txpool.IsErrTooLarge(err) {
			return utils.BadRequest(err)
		}
		if txpool.IsErrKnownTx(err) {
			return utils.Conflict(err)
		}
		if txpool.IsErrPoolFull(err) {
			return utils.HTTPError(err, http.StatusServiceUnavailable)
		}
		return err
	}
	return utils.WriteJSON(w, &types.TxID{ID: trx.ID()})
}

func (t *Transactions) handleGetTransactionByID(w http.ResponseWriter, req *http.Request) error {
	id, err := tfnet.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	pending := req.URL.Query().Get("pending")
	if pending != "" && pending != "false" && pending != "true" {
		return utils.BadRequest(errors.WithMessage(errors.New("should be boolean"), "pending"))
	}
	trx, err := t.getTransactionByID(id, pending == "true")
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, trx)
}

func (t *Transactions) handleGetTransactionReceiptByID(w http.ResponseWriter, req *http.Request) error {
	id, err := tfnet.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := t.getTransactionReceiptByID(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, receipt)
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /transactions").
		HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /transactions/{id}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTransactionByID))
	sub.Path("/{id}/receipt").
		Methods(http.MethodGet).
		Name("GET /transactions/{id}/receipt").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTransactionReceiptByID))
}
