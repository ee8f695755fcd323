// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/api/types"
	"github.com/vechain/tfnet/api/utils"
	"github.com/vechain/tfnet/block"
	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/tx"
)

// Miner mines blocks on request.
type Miner interface {
	// MinePending mines the pending txs of the pool.
	MinePending() (*block.Block, tx.Receipts, error)
	// Mine mines exactly txs, failing if any of them is invalid.
	Mine(txs tx.Transactions) (*block.Block, tx.Receipts, error)
}

type Blocks struct {
	repo  *chain.Repository
	miner Miner
}

func New(repo *chain.Repository, miner Miner) *Blocks {
	return &Blocks{repo, miner}
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	revision, err := utils.ParseRevision(mux.Vars(req)["revision"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "revision"))
	}
	expanded := req.URL.Query().Get("expanded")
	if expanded != "" && expanded != "false" && expanded != "true" {
		return utils.BadRequest(errors.WithMessage(errors.New("should be boolean"), "expanded"))
	}

	summary, err := utils.GetSummary(revision, b.repo)
	if err != nil {
		if b.repo.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}

	if expanded != "true" {
		return utils.WriteJSON(w, types.NewJSONCollapsedBlock(summary))
	}

	id := summary.Header.ID()
	blk, err := b.repo.GetBlock(id)
	if err != nil {
		return err
	}
	receipts, err := b.repo.GetBlockReceipts(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.NewJSONExpandedBlock(blk, receipts))
}

// MineRequest optional body of a mine request.
type MineRequest struct {
	Transactions []*types.SendTx `json:"transactions"`
}

func (b *Blocks) handleMine(w http.ResponseWriter, req *http.Request) error {
	if b.miner == nil {
		return utils.Forbidden(errors.New("mining disabled"))
	}

	var body MineRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil && err != io.EOF {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	var (
		blk      *block.Block
		receipts tx.Receipts
		err      error
	)
	if len(body.Transactions) == 0 {
		blk, receipts, err = b.miner.MinePending()
	} else {
		// same default as POST /transactions, so resending a call is not a replay
		base := uint64(time.Now().UnixNano())
		txs := make(tx.Transactions, 0, len(body.Transactions))
		for i, s := range body.Transactions {
			trx, err := s.Transaction(base + uint64(i))
			if err != nil {
				return utils.BadRequest(errors.WithMessagef(err, "transactions[%d]", i))
			}
			txs = append(txs, trx)
		}
		blk, receipts, err = b.miner.Mine(txs)
		if err != nil {
			return utils.BadRequest(err)
		}
	}
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.NewJSONExpandedBlock(blk, receipts))
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /blocks").
		HandlerFunc(utils.WrapHandlerFunc(b.handleMine))
	sub.Path("/{revision}").
		Methods(http.MethodGet).
		Name("GET /blocks/{revision}").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
