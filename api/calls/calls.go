// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/api/utils"
	"github.com/vechain/tfnet/builtin"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/value"
)

// Caller runs read-only functions.
type Caller interface {
	CallReadOnlyFn(contract, fn string, args []value.Value, sender tfnet.Principal) (value.Value, error)
	Deployer() tfnet.Principal
}

// CallRequest body of a read-only call.
type CallRequest struct {
	Sender *tfnet.Principal `json:"sender"`
	Args   []string         `json:"args"`
}

// CallResult result of a read-only call.
type CallResult struct {
	Result value.Value `json:"result"`
	Repr   string      `json:"repr"`
}

type Calls struct {
	caller Caller
}

func New(caller Caller) *Calls {
	return &Calls{caller}
}

func (c *Calls) handleCall(w http.ResponseWriter, req *http.Request) error {
	var body CallRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	args, err := value.ParseAll(body.Args)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "args"))
	}
	sender := c.caller.Deployer()
	if body.Sender != nil {
		sender = *body.Sender
	}

	vars := mux.Vars(req)
	result, err := c.caller.CallReadOnlyFn(vars["contract"], vars["function"], args, sender)
	if err != nil {
		if builtin.IsContractNotFound(err) {
			return utils.NotFound(err)
		}
		return utils.BadRequest(err)
	}
	return utils.WriteJSON(w, &CallResult{result, result.String()})
}

func (c *Calls) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{contract}/{function}").
		Methods(http.MethodPost).
		Name("POST /calls/{contract}/{function}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleCall))
}
