// Package memberapi exposes the member-facing surface of the portal: wallet
// overview, transaction history with derived views, withdrawals, loan
// repayment and payment-order creation.
//
// Withdrawal approval is the latency-sensitive action here and uses the
// optimistic protocol: the approved item leaves the pending list before the
// server confirms, the completed list refreshes on confirmation, and the
// pending list reconciles with the server at settle time either way.
package memberapi

import (
	"context"

	"github.com/goliatone/go-portal-client/classify"
	"github.com/goliatone/go-portal-client/portal"
	"github.com/goliatone/go-portal-client/query"
	"github.com/goliatone/go-portal-client/transport"
)

// Cache resource names for the member surface.
const (
	ResourceWalletOverview = "wallet_overview"
	ResourceTransactions   = "transactions"
	ResourceWithdrawals    = "withdrawals"
)

// Withdrawal list statuses.
const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
)

// WalletOverviewKey is the cache key for a member's wallet snapshot.
func WalletOverviewKey(memberID string) query.Key {
	return query.NewKey(ResourceWalletOverview, memberID)
}

// TransactionsKey is the cache key for a member's transaction history.
func TransactionsKey(memberID string) query.Key {
	return query.NewKey(ResourceTransactions, memberID)
}

// WithdrawalsKey is the cache key for the withdrawal list by status.
func WithdrawalsKey(status string) query.Key {
	return query.NewKey(ResourceWithdrawals, status)
}

// Service is the member API client.
type Service struct {
	api        *transport.Client
	cache      *query.Client
	classifier *classify.Classifier

	requestWithdraw    *query.Mutation[WithdrawInput, portal.Transaction]
	approveWithdrawal  *query.Mutation[ApproveWithdrawalInput, portal.Transaction]
	repayLoan          *query.Mutation[RepayLoanInput, portal.LoanRecord]
	createPaymentOrder *query.Mutation[PaymentOrderInput, portal.CheckoutSession]
}

// New wires the member service over the shared transport and query cache.
func New(api *transport.Client, cache *query.Client) *Service {
	s := &Service{
		api:        api,
		cache:      cache,
		classifier: classify.New(nil),
	}

	s.requestWithdraw = query.NewMutation(cache, "request_withdraw", s.doRequestWithdraw,
		query.WithInvalidateResources(ResourceWithdrawals, ResourceWalletOverview),
	)

	s.approveWithdrawal = query.NewMutation(cache, "approve_withdrawal", s.doApproveWithdrawal,
		query.WithInvalidateResources(ResourceWalletOverview),
	).WithOptimistic(func(in ApproveWithdrawalInput) query.Optimistic {
		return query.Optimistic{
			Source: WithdrawalsKey(WithdrawalStatusPending),
			Patch: query.TypedPatch(func(pending []portal.Transaction, ok bool) ([]portal.Transaction, bool) {
				if !ok {
					return nil, false
				}
				next := make([]portal.Transaction, 0, len(pending))
				for _, tx := range pending {
					if tx.ID != in.TransactionID {
						next = append(next, tx)
					}
				}
				return next, true
			}),
			OnSuccessInvalidate: []query.Key{WithdrawalsKey(WithdrawalStatusCompleted)},
		}
	})

	s.repayLoan = query.NewMutation(cache, "repay_loan", s.doRepayLoan,
		query.WithInvalidateResources(ResourceWalletOverview, ResourceTransactions),
	)

	s.createPaymentOrder = query.NewMutation(cache, "create_payment_order", s.doCreatePaymentOrder)

	return s
}

// WalletOverview fetches a member's wallet snapshot. Deferred until the
// member id is known.
func (s *Service) WalletOverview(ctx context.Context, memberID string) query.Result[portal.WalletOverview] {
	return query.Fetch(ctx, s.cache, WalletOverviewKey(memberID), func(ctx context.Context) (portal.WalletOverview, error) {
		var overview portal.WalletOverview
		err := s.api.Get(ctx, "/user/overview/"+memberID, nil, "data", &overview)
		return overview, err
	}, query.WithEnabled(memberID != ""))
}

// Transactions fetches a member's full transaction history. Pages derive
// their category views from this single collection; see TransactionViews.
func (s *Service) Transactions(ctx context.Context, memberID string) query.Result[[]portal.Transaction] {
	return query.Fetch(ctx, s.cache, TransactionsKey(memberID), func(ctx context.Context) ([]portal.Transaction, error) {
		var txs []portal.Transaction
		if err := s.api.Get(ctx, "/user/transactions/"+memberID, nil, "data", &txs); err != nil {
			return nil, err
		}
		return txs, nil
	}, query.WithEnabled(memberID != ""))
}

// TransactionViews splits one fetched history into the category views the
// pages render. Views can overlap; a record matching two predicates appears
// in both.
func (s *Service) TransactionViews(txs []portal.Transaction) map[classify.Category][]portal.Transaction {
	views := make(map[classify.Category][]portal.Transaction)
	for _, cat := range []classify.Category{
		classify.CategoryLoanRepayment,
		classify.CategoryLoanDisbursement,
		classify.CategoryWalletWithdrawal,
		classify.CategoryLevelBenefit,
		classify.CategoryPackagePurchase,
	} {
		views[cat] = s.classifier.View(txs, cat)
	}
	return views
}

// Withdrawals lists withdrawal requests by status.
func (s *Service) Withdrawals(ctx context.Context, status string) query.Result[[]portal.Transaction] {
	return query.Fetch(ctx, s.cache, WithdrawalsKey(status), func(ctx context.Context) ([]portal.Transaction, error) {
		var txs []portal.Transaction
		if err := s.api.Get(ctx, "/user/withdrawals/"+status, nil, "data", &txs); err != nil {
			return nil, err
		}
		return txs, nil
	})
}

// RequestWithdraw returns the withdrawal-request mutation.
func (s *Service) RequestWithdraw() *query.Mutation[WithdrawInput, portal.Transaction] {
	return s.requestWithdraw
}

func (s *Service) doRequestWithdraw(ctx context.Context, in WithdrawInput) (portal.Transaction, error) {
	var tx portal.Transaction
	err := s.api.Post(ctx, "/user/withdraw/"+in.MemberID, in, "data", &tx)
	return tx, err
}

// ApproveWithdrawal returns the optimistic approval mutation.
func (s *Service) ApproveWithdrawal() *query.Mutation[ApproveWithdrawalInput, portal.Transaction] {
	return s.approveWithdrawal
}

func (s *Service) doApproveWithdrawal(ctx context.Context, in ApproveWithdrawalInput) (portal.Transaction, error) {
	var tx portal.Transaction
	err := s.api.Put(ctx, "/user/approve-withdrawal/"+in.TransactionID, nil, "data", &tx)
	return tx, err
}

// RepayLoan returns the loan-repayment mutation.
func (s *Service) RepayLoan() *query.Mutation[RepayLoanInput, portal.LoanRecord] {
	return s.repayLoan
}

func (s *Service) doRepayLoan(ctx context.Context, in RepayLoanInput) (portal.LoanRecord, error) {
	var loan portal.LoanRecord
	err := s.api.Post(ctx, "/user/repayment-loan/"+in.MemberID, in, "data", &loan)
	return loan, err
}

// CreatePaymentOrder returns the payment-order mutation. The resulting
// checkout session carries the gateway session id the browser redirects
// with; nothing is cached.
func (s *Service) CreatePaymentOrder() *query.Mutation[PaymentOrderInput, portal.CheckoutSession] {
	return s.createPaymentOrder
}

func (s *Service) doCreatePaymentOrder(ctx context.Context, in PaymentOrderInput) (portal.CheckoutSession, error) {
	var session portal.CheckoutSession
	err := s.api.Post(ctx, "/payments/create-order", in, "data", &session)
	return session, err
}
