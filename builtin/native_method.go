// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/tfnet/builtin/lettercredit"
	"github.com/vechain/tfnet/builtin/reverts"
	"github.com/vechain/tfnet/state"
	"github.com/vechain/tfnet/tfnet"
	"github.com/vechain/tfnet/tx"
	"github.com/vechain/tfnet/value"
)

// Param is a named, typed method parameter.
type Param struct {
	Name string
	Type value.Type
}

// NativeMethod describes a native contract function.
type NativeMethod struct {
	Name     string
	Params   []Param
	ReadOnly bool

	run func(env *Env) (value.Value, error)
}

// Signature renders the method declaration.
func (m *NativeMethod) Signature() string {
	var sb strings.Builder
	if m.ReadOnly {
		sb.WriteString("(define-read-only (")
	} else {
		sb.WriteString("(define-public (")
	}
	sb.WriteString(m.Name)
	for _, p := range m.Params {
		fmt.Fprintf(&sb, " (%s %v)", p.Name, p.Type)
	}
	sb.WriteString("))")
	return sb.String()
}

// CheckArgs validates args against the parameter list.
func (m *NativeMethod) CheckArgs(args []value.Value) error {
	if len(args) != len(m.Params) {
		return errors.Errorf("%s: expected %d arguments, got %d", m.Name, len(m.Params), len(args))
	}
	for i, p := range m.Params {
		if err := p.Type.Check(args[i]); err != nil {
			return errors.WithMessagef(err, "%s: argument %s", m.Name, p.Name)
		}
	}
	return nil
}

// Call runs the method in env. Contract error codes become (err uN) results,
// any other error is a runtime fault.
func (m *NativeMethod) Call(env *Env) (ret value.Value, err error) {
	defer func() {
		if e := recover(); e != nil {
			ret, err = nil, fmt.Errorf("native: %v", e)
		}
	}()

	ret, err = m.run(env)
	if err != nil {
		if code, ok := reverts.AsCode(err); ok {
			return code.Value(), nil
		}
		return nil, err
	}
	if ret == nil {
		return nil, errors.Errorf("%s: no result", m.Name)
	}
	if !m.ReadOnly && ret.Kind() != value.KindResponse {
		return nil, errors.Errorf("%s: public function must return a response", m.Name)
	}
	return ret, nil
}

// BlockContext is the block a call executes in.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// Env is the environment of a native call invocation.
type Env struct {
	State    *state.State
	Builtins *Builtins
	Block    BlockContext
	// tx-sender
	Sender tfnet.Principal
	// the called contract
	Contract *Contract

	args   []value.Value
	events tx.Events
}

// NewEnv creates a call environment.
func NewEnv(st *state.State, b *Builtins, blk BlockContext, sender tfnet.Principal, contract *Contract, args []value.Value) *Env {
	return &Env{
		State:    st,
		Builtins: b,
		Block:    blk,
		Sender:   sender,
		Contract: contract,
		args:     args,
	}
}

// Emit records an event printed by the called contract.
func (e *Env) Emit(topic string, v value.Value) {
	e.events = append(e.events, &tx.Event{Contract: e.Contract.Principal, Topic: topic, Value: v})
}

// Events returns events emitted so far.
func (e *Env) Events() tx.Events {
	return e.events
}

// Managers returns the manager registry as seen by other contracts.
func (e *Env) Managers() lettercredit.ManagerRegistry {
	return e.Builtins.Manager.WithState(e.State)
}

// args accessors, types are checked by CheckArgs before the call.

func (e *Env) uintArg(i int) *uint256.Int {
	return e.args[i].(value.UintValue).Uint256()
}

func (e *Env) principalArg(i int) tfnet.Principal {
	return e.args[i].(value.PrincipalValue).Principal()
}

func (e *Env) asciiArg(i int) string {
	return string(e.args[i].(value.ASCIIValue))
}

// idArg reads an id argument. Ids beyond uint64 never exist.
func (e *Env) idArg(i int, notFound reverts.Code) (uint64, error) {
	id, ok := e.args[i].(value.UintValue).Uint64()
	if !ok {
		return 0, notFound
	}
	return id, nil
}
