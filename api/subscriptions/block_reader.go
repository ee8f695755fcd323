// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/vechain/tfnet/api/types"
	"github.com/vechain/tfnet/chain"
)

// maxReadBlocks caps the number of blocks returned by one read.
const maxReadBlocks = 100

type blockReader struct {
	repo *chain.Repository
	// number of the next block to read
	next uint32
}

func newBlockReader(repo *chain.Repository, position uint32) *blockReader {
	return &blockReader{repo, position}
}

// Read returns summaries of blocks mined since the last read.
func (br *blockReader) Read() ([]any, bool, error) {
	best := br.repo.BestBlockSummary().Header.Number()
	var result []any
	for br.next <= best {
		if len(result) >= maxReadBlocks {
			return result, true, nil
		}
		summary, err := br.repo.GetBlockSummaryByNumber(br.next)
		if err != nil {
			return nil, false, err
		}
		result = append(result, types.NewJSONCollapsedBlock(summary))
		br.next++
	}
	return result, false, nil
}
