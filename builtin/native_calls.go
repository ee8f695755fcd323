// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/holiman/uint256"

	"github.com/vechain/tfnet/builtin/invoice"
	"github.com/vechain/tfnet/builtin/lettercredit"
	"github.com/vechain/tfnet/builtin/manager"
	"github.com/vechain/tfnet/value"
)

// event topics
const (
	TopicManagerVerified    = "manager-verified"
	TopicManagerRevoked     = "manager-revoked"
	TopicLCCreated          = "letter-of-credit-created"
	TopicLCIssued           = "letter-of-credit-issued"
	TopicDocumentsPresented = "documents-presented"
	TopicDocumentsAccepted  = "documents-accepted"
	TopicDocumentsRejected  = "documents-rejected"
	TopicLCSettled          = "letter-of-credit-settled"
	TopicLCCancelled        = "letter-of-credit-cancelled"
	TopicInvoiceCreated     = "invoice-financing-created"
	TopicInvoiceApproved    = "invoice-financing-approved"
	TopicInvoiceSettled     = "invoice-financing-settled"
)

var (
	okTrue = value.OK(value.Bool(true))

	paramManager = Param{"manager", value.TypePrincipal}
	paramID      = Param{"id", value.TypeUint}
	paramAmount  = Param{"amount", value.TypeUint}
)

type define struct {
	name     string
	params   []Param
	readOnly bool
	run      func(env *Env) (value.Value, error)
}

func buildMethods(defines []define) []*NativeMethod {
	methods := make([]*NativeMethod, 0, len(defines))
	for _, def := range defines {
		methods = append(methods, &NativeMethod{
			Name:     def.name,
			Params:   def.params,
			ReadOnly: def.readOnly,
			run:      def.run,
		})
	}
	return methods
}

func uintOf(x *uint256.Int) value.Value {
	v, err := value.UintFromUint256(x)
	if err != nil {
		panic(err)
	}
	return v
}

func managerMethods() []*NativeMethod {
	return buildMethods([]define{
		{"verify-manager", []Param{
			paramManager,
			{"name", value.TypeASCII(manager.MaxNameLength)},
			{"id", value.TypeASCII(manager.MaxIDLength)},
			{"level", value.TypeUint},
		}, false, func(env *Env) (value.Value, error) {
			p := env.principalArg(0)
			if err := env.Builtins.Manager.WithState(env.State).Verify(
				env.Sender, p, env.asciiArg(1), env.asciiArg(2), env.uintArg(3), env.Block.Number,
			); err != nil {
				return nil, err
			}
			env.Emit(TopicManagerVerified, value.Principal(p))
			return okTrue, nil
		}},
		{"revoke-manager", []Param{paramManager}, false, func(env *Env) (value.Value, error) {
			p := env.principalArg(0)
			if err := env.Builtins.Manager.WithState(env.State).Revoke(env.Sender, p); err != nil {
				return nil, err
			}
			env.Emit(TopicManagerRevoked, value.Principal(p))
			return okTrue, nil
		}},
		{"is-verified-manager", []Param{paramManager}, true, func(env *Env) (value.Value, error) {
			ok, err := env.Builtins.Manager.WithState(env.State).IsVerified(env.principalArg(0))
			if err != nil {
				return nil, err
			}
			return value.Bool(ok), nil
		}},
		{"get-manager", []Param{paramManager}, true, func(env *Env) (value.Value, error) {
			entry, err := env.Builtins.Manager.WithState(env.State).Get(env.principalArg(0))
			if err != nil {
				return nil, err
			}
			if entry == nil {
				return value.None(), nil
			}
			return value.Some(managerTuple(entry)), nil
		}},
	})
}

func managerTuple(e *manager.Entry) value.TupleValue {
	return value.Tuple(map[string]value.Value{
		"name":        value.ASCII(e.Name),
		"id":          value.ASCII(e.ID),
		"level":       uintOf(e.Level),
		"active":      value.Bool(e.Active),
		"verified-at": value.Uint(e.VerifiedAt),
	})
}

func letterOfCreditMethods() []*NativeMethod {
	lc := func(env *Env) *lettercredit.LetterOfCredit {
		return env.Builtins.LetterOfCredit.WithState(env.State, env.Managers())
	}
	// transition runs a status change on the LC given by the first argument.
	transition := func(topic string, fn func(l *lettercredit.LetterOfCredit, env *Env, id uint64) error) func(env *Env) (value.Value, error) {
		return func(env *Env) (value.Value, error) {
			id, err := env.idArg(0, lettercredit.ErrNotFound)
			if err != nil {
				return nil, err
			}
			if err := fn(lc(env), env, id); err != nil {
				return nil, err
			}
			env.Emit(topic, value.Uint(id))
			return okTrue, nil
		}
	}

	return buildMethods([]define{
		{"create-letter-of-credit", []Param{
			{"beneficiary", value.TypePrincipal},
			{"applicant", value.TypePrincipal},
			paramAmount,
			{"currency", value.TypeASCII(lettercredit.CurrencyLength)},
			{"fee-bps", value.TypeUint},
			paramManager,
		}, false, func(env *Env) (value.Value, error) {
			id, err := lc(env).Create(env.Sender, &lettercredit.CreateParams{
				Beneficiary: env.principalArg(0),
				Applicant:   env.principalArg(1),
				Amount:      env.uintArg(2),
				Currency:    env.asciiArg(3),
				FeeBps:      env.uintArg(4),
				Manager:     env.principalArg(5),
			}, env.Block.Number)
			if err != nil {
				return nil, err
			}
			env.Emit(TopicLCCreated, value.Uint(id))
			return value.OK(value.Uint(id)), nil
		}},
		{"issue-letter-of-credit", []Param{paramID}, false,
			transition(TopicLCIssued, func(l *lettercredit.LetterOfCredit, env *Env, id uint64) error {
				return l.Issue(env.Sender, id, env.Block.Number)
			})},
		{"present-documents", []Param{
			paramID,
			{"documents", value.TypeASCII(lettercredit.MaxDocumentsLength)},
		}, false, transition(TopicDocumentsPresented, func(l *lettercredit.LetterOfCredit, env *Env, id uint64) error {
			return l.PresentDocuments(env.Sender, id, env.asciiArg(1), env.Block.Number)
		})},
		{"accept-documents", []Param{paramID}, false,
			transition(TopicDocumentsAccepted, func(l *lettercredit.LetterOfCredit, env *Env, id uint64) error {
				return l.AcceptDocuments(env.Sender, id)
			})},
		{"reject-documents", []Param{paramID}, false,
			transition(TopicDocumentsRejected, func(l *lettercredit.LetterOfCredit, env *Env, id uint64) error {
				return l.RejectDocuments(env.Sender, id)
			})},
		{"settle-letter-of-credit", []Param{paramID}, false, func(env *Env) (value.Value, error) {
			id, err := env.idArg(0, lettercredit.ErrNotFound)
			if err != nil {
				return nil, err
			}
			payout, err := lc(env).Settle(env.Sender, id, env.Block.Number)
			if err != nil {
				return nil, err
			}
			env.Emit(TopicLCSettled, value.Tuple(map[string]value.Value{
				"id":     value.Uint(id),
				"payout": uintOf(payout),
			}))
			return value.OK(uintOf(payout)), nil
		}},
		{"cancel-letter-of-credit", []Param{paramID}, false,
			transition(TopicLCCancelled, func(l *lettercredit.LetterOfCredit, env *Env, id uint64) error {
				return l.Cancel(env.Sender, id)
			})},
		{"get-letter-of-credit", []Param{paramID}, true, func(env *Env) (value.Value, error) {
			id, ok := env.args[0].(value.UintValue).Uint64()
			if !ok {
				return value.None(), nil
			}
			entry, err := lc(env).Get(id)
			if err != nil {
				return nil, err
			}
			if entry == nil {
				return value.None(), nil
			}
			return value.Some(letterOfCreditTuple(entry)), nil
		}},
		{"get-letter-of-credit-count", nil, true, func(env *Env) (value.Value, error) {
			count, err := lc(env).Count()
			if err != nil {
				return nil, err
			}
			return value.Uint(count), nil
		}},
		{"calculate-fee", []Param{paramAmount, {"fee-bps", value.TypeUint}}, true, func(env *Env) (value.Value, error) {
			fee, err := lettercredit.CalculateFee(env.uintArg(0), env.uintArg(1))
			if err != nil {
				return nil, err
			}
			return value.OK(uintOf(fee)), nil
		}},
	})
}

func letterOfCreditTuple(e *lettercredit.Entry) value.TupleValue {
	return value.Tuple(map[string]value.Value{
		"issuer":       value.Principal(e.Issuer),
		"beneficiary":  value.Principal(e.Beneficiary),
		"applicant":    value.Principal(e.Applicant),
		"amount":       uintOf(e.Amount),
		"currency":     value.ASCII(e.Currency),
		"fee-bps":      uintOf(e.FeeBps),
		"manager":      value.Principal(e.Manager),
		"status":       value.ASCII(e.Status.String()),
		"documents":    value.ASCII(e.Documents),
		"created-at":   value.Uint(e.CreatedAt),
		"issued-at":    value.Uint(e.IssuedAt),
		"presented-at": value.Uint(e.PresentedAt),
		"settled-at":   value.Uint(e.SettledAt),
	})
}

func invoiceMethods() []*NativeMethod {
	inv := func(env *Env) *invoice.Invoice {
		return env.Builtins.Invoice.WithState(env.State, env.Managers())
	}

	return buildMethods([]define{
		{"create-invoice-financing", []Param{
			{"buyer", value.TypePrincipal},
			{"financier", value.TypePrincipal},
			paramAmount,
			{"discount-rate", value.TypeUint},
			paramManager,
		}, false, func(env *Env) (value.Value, error) {
			id, err := inv(env).Create(
				env.Sender, env.principalArg(0), env.principalArg(1),
				env.uintArg(2), env.uintArg(3), env.principalArg(4), env.Block.Number,
			)
			if err != nil {
				return nil, err
			}
			env.Emit(TopicInvoiceCreated, value.Uint(id))
			return value.OK(value.Uint(id)), nil
		}},
		{"approve-invoice-financing", []Param{paramID}, false, func(env *Env) (value.Value, error) {
			id, err := env.idArg(0, invoice.ErrNotFound)
			if err != nil {
				return nil, err
			}
			financed, err := inv(env).Approve(env.Sender, id, env.Block.Number)
			if err != nil {
				return nil, err
			}
			env.Emit(TopicInvoiceApproved, value.Tuple(map[string]value.Value{
				"id":              value.Uint(id),
				"financed-amount": uintOf(financed),
			}))
			return value.OK(uintOf(financed)), nil
		}},
		{"settle-invoice-financing", []Param{paramID}, false, func(env *Env) (value.Value, error) {
			id, err := env.idArg(0, invoice.ErrNotFound)
			if err != nil {
				return nil, err
			}
			if err := inv(env).Settle(env.Sender, id, env.Block.Number); err != nil {
				return nil, err
			}
			env.Emit(TopicInvoiceSettled, value.Uint(id))
			return okTrue, nil
		}},
		{"get-invoice-financing", []Param{paramID}, true, func(env *Env) (value.Value, error) {
			id, ok := env.args[0].(value.UintValue).Uint64()
			if !ok {
				return value.None(), nil
			}
			entry, err := inv(env).Get(id)
			if err != nil {
				return nil, err
			}
			if entry == nil {
				return value.None(), nil
			}
			return value.Some(invoiceTuple(entry)), nil
		}},
		{"get-invoice-financing-count", nil, true, func(env *Env) (value.Value, error) {
			count, err := inv(env).Count()
			if err != nil {
				return nil, err
			}
			return value.Uint(count), nil
		}},
		{"calculate-financing-amount", []Param{paramAmount, {"discount-rate", value.TypeUint}}, true, func(env *Env) (value.Value, error) {
			financed, err := invoice.CalculateFinancingAmount(env.uintArg(0), env.uintArg(1))
			if err != nil {
				return nil, err
			}
			return value.OK(uintOf(financed)), nil
		}},
	})
}

func invoiceTuple(e *invoice.Entry) value.TupleValue {
	financed := e.FinancedAmount
	if financed == nil {
		financed = new(uint256.Int)
	}
	return value.Tuple(map[string]value.Value{
		"supplier":        value.Principal(e.Supplier),
		"buyer":           value.Principal(e.Buyer),
		"financier":       value.Principal(e.Financier),
		"manager":         value.Principal(e.Manager),
		"amount":          uintOf(e.Amount),
		"discount-rate":   uintOf(e.DiscountRate),
		"financed-amount": uintOf(financed),
		"status":          value.ASCII(e.Status.String()),
		"created-at":      value.Uint(e.CreatedAt),
		"approved-at":     value.Uint(e.ApprovedAt),
		"settled-at":      value.Uint(e.SettledAt),
	})
}
