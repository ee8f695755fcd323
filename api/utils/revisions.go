// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/tfnet/chain"
	"github.com/vechain/tfnet/tfnet"
)

const revBest int64 = -1

type Revision struct {
	val any
}

// ParseRevision parses a query parameter into a block number or block ID.
func ParseRevision(revision string) (*Revision, error) {
	if revision == "" || revision == "best" {
		return &Revision{revBest}, nil
	}

	if len(revision) == 66 || len(revision) == 64 {
		blockID, err := tfnet.ParseBytes32(revision)
		if err != nil {
			return nil, err
		}
		return &Revision{blockID}, nil
	}
	n, err := strconv.ParseUint(revision, 0, 0)
	if err != nil {
		return nil, err
	}
	if n > math.MaxUint32 {
		return nil, errors.New("block number out of max uint32")
	}
	return &Revision{uint32(n)}, err
}

// GetSummary returns the block summary for the given revision.
func GetSummary(rev *Revision, repo *chain.Repository) (*chain.BlockSummary, error) {
	switch rev := rev.val.(type) {
	case tfnet.Bytes32:
		return repo.GetBlockSummary(rev)
	case uint32:
		return repo.GetBlockSummaryByNumber(rev)
	case int64:
		return repo.BestBlockSummary(), nil
	default:
		return nil, errors.New("invalid revision")
	}
}
