// Package classify routes transactions into business views.
//
// The backend emits no canonical category field, so categorization infers
// from free-text fields (transaction_type, description, benefit_type). All
// predicates live in one ordered rule table: Primary follows documented
// precedence and yields exactly one category, while Matches reports every
// category a record satisfies. The overlap is deliberate — a "loan
// withdrawal" row legitimately belongs to both the loan and the withdrawal
// views, and pages pick whichever inclusion rule fits their purpose.
package classify

import (
	"strings"

	"github.com/goliatone/go-portal-client/portal"
)

// Category is the closed set of transaction categories.
type Category string

// Categories, in rule-table precedence order.
const (
	CategoryLoanRepayment    Category = "loan_repayment"
	CategoryLoanDisbursement Category = "loan_disbursement"
	CategoryWalletWithdrawal Category = "wallet_withdrawal"
	CategoryLevelBenefit     Category = "level_benefit"
	CategoryPackagePurchase  Category = "package_purchase"
	CategoryOther            Category = "other"
)

// Rule pairs a category with its predicate.
type Rule struct {
	Category Category
	Match    func(tx portal.Transaction) bool
}

// fields folds the free-text fields once per record.
type fields struct {
	txType      string
	description string
	benefitType string
}

func fold(tx portal.Transaction) fields {
	return fields{
		txType:      strings.ToLower(tx.TransactionType),
		description: strings.ToLower(tx.Description),
		benefitType: strings.ToLower(tx.BenefitType),
	}
}

func (f fields) anyContains(substr string) bool {
	return strings.Contains(f.txType, substr) ||
		strings.Contains(f.description, substr) ||
		strings.Contains(f.benefitType, substr)
}

// DefaultRules returns the central rule table. Precedence is the slice
// order: repayment before disbursement (a "loan repayment" row mentions both
// words), loans before withdrawals, benefits before purchases.
func DefaultRules() []Rule {
	return []Rule{
		{CategoryLoanRepayment, func(tx portal.Transaction) bool {
			f := fold(tx)
			return f.anyContains("repayment") || (f.anyContains("loan") && tx.Debit > 0 && f.anyContains("repay"))
		}},
		{CategoryLoanDisbursement, func(tx portal.Transaction) bool {
			return fold(tx).anyContains("loan")
		}},
		{CategoryWalletWithdrawal, func(tx portal.Transaction) bool {
			f := fold(tx)
			return f.anyContains("withdraw") || f.anyContains("wallet")
		}},
		{CategoryLevelBenefit, func(tx portal.Transaction) bool {
			f := fold(tx)
			return tx.Level > 0 || f.anyContains("level") || strings.Contains(f.benefitType, "benefit")
		}},
		{CategoryPackagePurchase, func(tx portal.Transaction) bool {
			f := fold(tx)
			return f.anyContains("package") || f.anyContains("e-pin") || f.anyContains("epin")
		}},
	}
}

// Classifier evaluates an ordered rule table.
type Classifier struct {
	rules []Rule
}

// New builds a Classifier; a nil or empty rule set uses DefaultRules.
func New(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Primary returns the first matching rule's category, or CategoryOther.
func (c *Classifier) Primary(tx portal.Transaction) Category {
	for _, r := range c.rules {
		if r.Match(tx) {
			return r.Category
		}
	}
	return CategoryOther
}

// Matches returns every category the record satisfies, in precedence order.
// A record matching no rule reports CategoryOther.
func (c *Classifier) Matches(tx portal.Transaction) []Category {
	var out []Category
	for _, r := range c.rules {
		if r.Match(tx) {
			out = append(out, r.Category)
		}
	}
	if len(out) == 0 {
		out = append(out, CategoryOther)
	}
	return out
}

// View filters txs down to the records matching cat, preserving order. The
// same record may appear in several views; see the package comment.
func (c *Classifier) View(txs []portal.Transaction, cat Category) []portal.Transaction {
	out := make([]portal.Transaction, 0, len(txs))
	for _, tx := range txs {
		for _, m := range c.Matches(tx) {
			if m == cat {
				out = append(out, tx)
				break
			}
		}
	}
	return out
}

// ApprovedOnly narrows a view to approved records, a filter several pages
// stack on top of their category view.
func ApprovedOnly(txs []portal.Transaction) []portal.Transaction {
	out := make([]portal.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Status == portal.LoanStatusApproved {
			out = append(out, tx)
		}
	}
	return out
}
